package commands

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/derive"
	"github.com/tally-dev/tally/internal/importer"
	"github.com/tally-dev/tally/internal/model"
	"github.com/tally-dev/tally/internal/store"
)

func newTransactionsCommand(load appLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"tx"},
		Short:   "Manage transactions",
	}
	cmd.AddCommand(newTransactionsListCommand(load))
	cmd.AddCommand(newTransactionsAddCommand(load))
	cmd.AddCommand(newTransactionsEditCommand(load))
	cmd.AddCommand(newTransactionsRemoveCommand(load))
	cmd.AddCommand(newTransactionsImportCommand(load))
	return cmd
}

func newTransactionsListCommand(load appLoader) *cobra.Command {
	var from, to string
	var txType string
	var accountID, categoryID int
	var page, pageSize int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load()
			if err != nil {
				return err
			}

			filter := store.TransactionFilter{
				Type:       model.TransactionType(txType),
				AccountID:  accountID,
				CategoryID: categoryID,
			}
			if from != "" {
				if filter.StartDate, err = parseDateFlag("from", from); err != nil {
					return err
				}
			}
			if to != "" {
				if filter.EndDate, err = parseDateFlag("to", to); err != nil {
					return err
				}
			}

			items, err := a.Transactions.Fetch(cmd.Context(), filter)
			if err != nil {
				flushNotifications(cmd.ErrOrStderr(), a)
				return err
			}
			cats, _ := a.Categories.Fetch(cmd.Context())

			pager := derive.NewPager(len(items), pageSize)
			pager.SetPage(page)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tTYPE\tAMOUNT\tCATEGORY\tDESCRIPTION")
			for _, t := range derive.PageOf(items, pager) {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
					t.ID, t.Date.Format("2006-01-02"), t.Type, t.Amount.StringFixed(2),
					derive.CategoryName(cats, t.CategoryID), t.Description)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Page %d of %d (%d transactions)\n", pager.Page+1, pager.TotalPages(), len(items))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&txType, "type", "", "income or expense")
	cmd.Flags().IntVar(&accountID, "account", 0, "filter by account id")
	cmd.Flags().IntVar(&categoryID, "category", 0, "filter by category id")
	cmd.Flags().IntVar(&page, "page", 0, "page number (0-based)")
	cmd.Flags().IntVar(&pageSize, "page-size", derive.DefaultPageSize, "rows per page")

	return cmd
}

func newTransactionsAddCommand(load appLoader) *cobra.Command {
	var date string
	var txType string
	var amount string
	var description string
	var accountID, categoryID int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load()
			if err != nil {
				return err
			}

			draft := model.TransactionDraft{
				Type:        model.TransactionType(txType),
				Description: description,
				AccountID:   accountID,
				CategoryID:  categoryID,
			}
			if draft.Date, err = parseDateFlag("date", date); err != nil {
				return err
			}
			if draft.Amount, err = parseAmountFlag("amount", amount); err != nil {
				return err
			}

			// Load categories so the type-match check can run locally.
			if _, err := a.Categories.Fetch(cmd.Context()); err != nil {
				flushNotifications(cmd.ErrOrStderr(), a)
				return err
			}

			created, err := a.Transactions.Create(cmd.Context(), draft)
			if err != nil {
				flushNotifications(cmd.ErrOrStderr(), a)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s of %s (id %d)\n", created.Type, created.Amount.StringFixed(2), created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "transaction date YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("date")
	cmd.Flags().StringVar(&txType, "type", string(model.TransactionExpense), "income or expense")
	cmd.Flags().StringVar(&amount, "amount", "", "amount (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&description, "description", "", "description")
	cmd.Flags().IntVar(&accountID, "account", 0, "account id (required)")
	_ = cmd.MarkFlagRequired("account")
	cmd.Flags().IntVar(&categoryID, "category", 0, "category id (required)")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func newTransactionsEditCommand(load appLoader) *cobra.Command {
	var date string
	var txType string
	var amount string
	var description string
	var accountID, categoryID int

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("parsing transaction id %q: %w", args[0], err)
			}
			a, err := load()
			if err != nil {
				return err
			}

			// Start from the current record so unset flags keep their values.
			if _, err := a.Transactions.Fetch(cmd.Context(), store.TransactionFilter{}); err != nil {
				flushNotifications(cmd.ErrOrStderr(), a)
				return err
			}
			var current *model.Transaction
			for _, tx := range a.Transactions.Items() {
				if tx.ID == id {
					current = &tx
					break
				}
			}
			if current == nil {
				return fmt.Errorf("transaction %d not found", id)
			}

			draft := model.TransactionDraft{
				Date:        current.Date,
				Type:        current.Type,
				Amount:      current.Amount,
				Description: current.Description,
				AccountID:   current.AccountID,
				CategoryID:  current.CategoryID,
			}
			if cmd.Flags().Changed("date") {
				if draft.Date, err = parseDateFlag("date", date); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("type") {
				draft.Type = model.TransactionType(txType)
			}
			if cmd.Flags().Changed("amount") {
				if draft.Amount, err = parseAmountFlag("amount", amount); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("description") {
				draft.Description = description
			}
			if cmd.Flags().Changed("account") {
				draft.AccountID = accountID
			}
			if cmd.Flags().Changed("category") {
				draft.CategoryID = categoryID
			}

			if _, err := a.Categories.Fetch(cmd.Context()); err != nil {
				flushNotifications(cmd.ErrOrStderr(), a)
				return err
			}

			updated, err := a.Transactions.Update(cmd.Context(), id, draft)
			if err != nil {
				flushNotifications(cmd.ErrOrStderr(), a)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated transaction %d\n", updated.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "transaction date YYYY-MM-DD")
	cmd.Flags().StringVar(&txType, "type", "", "income or expense")
	cmd.Flags().StringVar(&amount, "amount", "", "amount")
	cmd.Flags().StringVar(&description, "description", "", "description")
	cmd.Flags().IntVar(&accountID, "account", 0, "account id")
	cmd.Flags().IntVar(&categoryID, "category", 0, "category id")

	return cmd
}

func newTransactionsRemoveCommand(load appLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("parsing transaction id %q: %w", args[0], err)
			}
			a, err := load()
			if err != nil {
				return err
			}
			if err := a.Transactions.Delete(cmd.Context(), id); err != nil {
				flushNotifications(cmd.ErrOrStderr(), a)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted transaction %d\n", id)
			return nil
		},
	}
}

func newTransactionsImportCommand(load appLoader) *cobra.Command {
	var file string
	var format string
	var accountID int
	var incomeCategory, expenseCategory int
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import transactions from a bank CSV export",
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := importer.DefaultRegistry().Get(format)
			if parser == nil {
				return fmt.Errorf("unknown format %q", format)
			}

			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("opening import file: %w", err)
			}
			defer f.Close()

			drafts, err := parser.Parse(f)
			if err != nil {
				return err
			}
			for i := range drafts {
				drafts[i].AccountID = accountID
				if drafts[i].Type == model.TransactionIncome {
					drafts[i].CategoryID = incomeCategory
				} else {
					drafts[i].CategoryID = expenseCategory
				}
			}

			if dryRun {
				for _, d := range drafts {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n",
						d.Date.Format("2006-01-02"), d.Type, d.Amount.StringFixed(2), d.Description)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Would import %d transactions\n", len(drafts))
				return nil
			}

			a, err := load()
			if err != nil {
				return err
			}
			if _, err := a.Categories.Fetch(cmd.Context()); err != nil {
				flushNotifications(cmd.ErrOrStderr(), a)
				return err
			}

			imported := 0
			for _, d := range drafts {
				if _, err := a.Transactions.Create(cmd.Context(), d); err != nil {
					flushNotifications(cmd.ErrOrStderr(), a)
					return fmt.Errorf("after %d imports: %w", imported, err)
				}
				imported++
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d transactions\n", imported)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "CSV file to import (required)")
	_ = cmd.MarkFlagRequired("file")
	cmd.Flags().StringVar(&format, "format", "chase", "bank export format")
	cmd.Flags().IntVar(&accountID, "account", 0, "target account id (required)")
	_ = cmd.MarkFlagRequired("account")
	cmd.Flags().IntVar(&incomeCategory, "income-category", 0, "category for income rows (required)")
	_ = cmd.MarkFlagRequired("income-category")
	cmd.Flags().IntVar(&expenseCategory, "expense-category", 0, "category for expense rows (required)")
	_ = cmd.MarkFlagRequired("expense-category")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse and print without importing")

	return cmd
}
