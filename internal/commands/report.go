package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/derive"
	"github.com/tally-dev/tally/internal/model"
	"github.com/tally-dev/tally/internal/store"
)

func newReportCommand(load appLoader) *cobra.Command {
	var from, to string
	var accountIDs, categoryIDs []int
	var txType string
	var local bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a financial report",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load()
			if err != nil {
				return err
			}

			params := model.ReportParams{
				AccountIDs:  accountIDs,
				CategoryIDs: categoryIDs,
			}
			if params.StartDate, err = parseDateFlag("from", from); err != nil {
				return err
			}
			if params.EndDate, err = parseDateFlag("to", to); err != nil {
				return err
			}
			if txType != "" {
				t := model.TransactionType(txType)
				params.TransactionType = &t
			}

			var data *model.ReportData
			if local {
				// Aggregate client-side from the transaction snapshot.
				txs, err := a.Transactions.Fetch(cmd.Context(), store.TransactionFilter{})
				if err != nil {
					flushNotifications(cmd.ErrOrStderr(), a)
					return err
				}
				cats, _ := a.Categories.Fetch(cmd.Context())
				built := derive.BuildReport(txs, cats, params)
				data = &built
			} else {
				if data, err = a.Reports.Generate(cmd.Context(), params); err != nil {
					flushNotifications(cmd.ErrOrStderr(), a)
					return err
				}
			}

			return printReport(cmd, data)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "start date YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("from")
	cmd.Flags().StringVar(&to, "to", "", "end date YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("to")
	cmd.Flags().IntSliceVar(&accountIDs, "accounts", nil, "restrict to account ids")
	cmd.Flags().IntSliceVar(&categoryIDs, "categories", nil, "restrict to category ids")
	cmd.Flags().StringVar(&txType, "type", "", "income or expense only")
	cmd.Flags().BoolVar(&local, "local", false, "aggregate locally instead of asking the server")

	return cmd
}

func printReport(cmd *cobra.Command, data *model.ReportData) error {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Income:    %s\n", data.Summary.TotalIncome.StringFixed(2))
	fmt.Fprintf(out, "Expenses:  %s\n", data.Summary.TotalExpenses.StringFixed(2))
	fmt.Fprintf(out, "Net:       %s\n", data.Summary.NetSavings.StringFixed(2))
	fmt.Fprintf(out, "Savings:   %s%%\n", data.Summary.SavingsRate.Mul(decimalFromFloat(100)).StringFixed(1))

	if len(data.MonthlyTrends.Labels) > 0 {
		fmt.Fprintln(out, "\nMonthly trend:")
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "MONTH\tINCOME\tEXPENSES")
		for i, label := range data.MonthlyTrends.Labels {
			fmt.Fprintf(w, "%s\t%s\t%s\n", label,
				data.MonthlyTrends.Income[i].StringFixed(2),
				data.MonthlyTrends.Expenses[i].StringFixed(2))
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	if len(data.CategoryBreakdown.Labels) > 0 {
		fmt.Fprintln(out, "\nSpending by category:")
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		for i, label := range data.CategoryBreakdown.Labels {
			fmt.Fprintf(w, "%s\t%s\n", label, data.CategoryBreakdown.Data[i].StringFixed(2))
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func newDashboardCommand(load appLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the account overview",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load()
			if err != nil {
				return err
			}
			data, err := a.Dashboard.Fetch(cmd.Context())
			if err != nil {
				flushNotifications(cmd.ErrOrStderr(), a)
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total balance: %s\n", data.TotalBalance.StringFixed(2))
			fmt.Fprintf(out, "Income:        %s\n", data.Summary.TotalIncome.StringFixed(2))
			fmt.Fprintf(out, "Expenses:      %s\n", data.Summary.TotalExpenses.StringFixed(2))
			fmt.Fprintf(out, "Net savings:   %s\n", data.Summary.NetSavings.StringFixed(2))

			if len(data.RecentTransactions) > 0 {
				fmt.Fprintln(out, "\nRecent transactions:")
				w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "DATE\tTYPE\tAMOUNT\tDESCRIPTION")
				for _, t := range data.RecentTransactions {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
						t.Date.Format("2006-01-02"), t.Type, t.Amount.StringFixed(2), t.Description)
				}
				if err := w.Flush(); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
