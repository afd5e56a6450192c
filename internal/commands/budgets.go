package commands

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/derive"
	"github.com/tally-dev/tally/internal/model"
	"github.com/tally-dev/tally/internal/notify"
)

func newBudgetsCommand(load appLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budgets",
		Short: "Manage budgets",
	}
	cmd.AddCommand(newBudgetsListCommand(load))
	cmd.AddCommand(newBudgetsAddCommand(load))
	cmd.AddCommand(newBudgetsRemoveCommand(load))
	cmd.AddCommand(newBudgetsAlertsCommand(load))
	cmd.AddCommand(newBudgetsSummaryCommand(load))
	return cmd
}

func newBudgetsListCommand(load appLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List budgets with their progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load()
			if err != nil {
				return err
			}

			items, err := a.Budgets.Fetch(cmd.Context())
			if err != nil {
				flushNotifications(cmd.ErrOrStderr(), a)
				return err
			}
			cats, _ := a.Categories.Fetch(cmd.Context())

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCATEGORY\tSPENT\tAMOUNT\tUSED\tSTATUS\tPERIOD")
			for _, b := range items {
				p := derive.BudgetProgressOf(b)
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s%%\t%s\t%s - %s\n",
					b.ID, derive.CategoryName(cats, b.CategoryID),
					b.Spent.StringFixed(2), b.Amount.StringFixed(2),
					p.Percent.StringFixed(0), p.Severity,
					b.StartDate.Format("2006-01-02"), b.EndDate.Format("2006-01-02"))
			}
			return w.Flush()
		},
	}
}

func newBudgetsAddCommand(load appLoader) *cobra.Command {
	var categoryID int
	var amount string
	var from, to string
	var threshold float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a budget",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load()
			if err != nil {
				return err
			}

			draft := model.BudgetDraft{
				CategoryID:            categoryID,
				NotificationThreshold: decimalFromFloat(threshold),
			}
			if draft.Amount, err = parseAmountFlag("amount", amount); err != nil {
				return err
			}
			if draft.StartDate, err = parseDateFlag("from", from); err != nil {
				return err
			}
			if draft.EndDate, err = parseDateFlag("to", to); err != nil {
				return err
			}

			created, err := a.Budgets.Create(cmd.Context(), draft)
			if err != nil {
				flushNotifications(cmd.ErrOrStderr(), a)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created budget %d\n", created.ID)
			return nil
		},
	}

	cmd.Flags().IntVar(&categoryID, "category", 0, "category id (required)")
	_ = cmd.MarkFlagRequired("category")
	cmd.Flags().StringVar(&amount, "amount", "", "budget ceiling (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&from, "from", "", "period start YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("from")
	cmd.Flags().StringVar(&to, "to", "", "period end YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("to")
	cmd.Flags().Float64Var(&threshold, "threshold", 0.8, "alert threshold fraction (0,1]")

	return cmd
}

func newBudgetsRemoveCommand(load appLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("parsing budget id %q: %w", args[0], err)
			}
			a, err := load()
			if err != nil {
				return err
			}
			if err := a.Budgets.Delete(cmd.Context(), id); err != nil {
				flushNotifications(cmd.ErrOrStderr(), a)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted budget %d\n", id)
			return nil
		},
	}
}

func newBudgetsAlertsCommand(load appLoader) *cobra.Command {
	var watch bool
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Show budgets that crossed their notification threshold",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load()
			if err != nil {
				return err
			}

			if !watch {
				alerts, err := a.Budgets.Alerts(cmd.Context())
				if err != nil {
					flushNotifications(cmd.ErrOrStderr(), a)
					return err
				}
				if len(alerts) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No budget alerts")
					return nil
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "BUDGET\tCATEGORY\tSPENT\tAMOUNT\tUSED")
				for _, al := range alerts {
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s%%\n",
						al.BudgetID, al.CategoryName, al.Spent.StringFixed(2),
						al.Amount.StringFixed(2), al.Percentage.StringFixed(0))
				}
				return w.Flush()
			}

			watcher := notify.NewBudgetWatcher(a.Budgets, a.Notify, interval)
			if err := watcher.Start(cmd.Context()); err != nil {
				return err
			}
			defer watcher.Stop()
			fmt.Fprintf(cmd.OutOrStdout(), "Watching budget alerts every %s (Ctrl-C to stop)\n", interval)

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			tick := time.NewTicker(time.Second)
			defer tick.Stop()
			for {
				select {
				case <-sig:
					return nil
				case <-cmd.Context().Done():
					return nil
				case <-tick.C:
					flushNotifications(cmd.OutOrStdout(), a)
				}
			}
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "keep polling and print new alerts")
	cmd.Flags().DurationVar(&interval, "interval", notify.DefaultPollInterval, "polling interval with --watch")

	return cmd
}

func newBudgetsSummaryCommand(load appLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show spending progress for all active budgets",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load()
			if err != nil {
				return err
			}
			rows, err := a.Budgets.Summary(cmd.Context())
			if err != nil {
				flushNotifications(cmd.ErrOrStderr(), a)
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "BUDGET\tCATEGORY\tSPENT\tAMOUNT\tREMAINING\tUSED")
			for _, r := range rows {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s%%\n",
					r.BudgetID, r.CategoryName, r.Spent.StringFixed(2),
					r.Amount.StringFixed(2), r.Remaining.StringFixed(2), r.Percentage.StringFixed(0))
			}
			return w.Flush()
		},
	}
}
