package commands

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/derive"
	"github.com/tally-dev/tally/internal/model"
	"github.com/tally-dev/tally/internal/store"
)

func newAccountsCommand(load appLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage accounts",
	}
	cmd.AddCommand(newAccountsListCommand(load))
	cmd.AddCommand(newAccountsAddCommand(load))
	cmd.AddCommand(newAccountsEditCommand(load))
	cmd.AddCommand(newAccountsRemoveCommand(load))
	return cmd
}

func newAccountsListCommand(load appLoader) *cobra.Command {
	var accType string
	var currency string
	var page int
	var pageSize int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load()
			if err != nil {
				return err
			}

			items, err := a.Accounts.Fetch(cmd.Context(), store.AccountFilter{
				Type:     model.AccountType(accType),
				Currency: model.Currency(currency),
			})
			if err != nil {
				flushNotifications(cmd.ErrOrStderr(), a)
				return err
			}

			pager := derive.NewPager(len(items), pageSize)
			pager.SetPage(page)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tTYPE\tCURRENCY\tBALANCE\tACTIVE")
			for _, acct := range derive.PageOf(items, pager) {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%t\n",
					acct.ID, acct.Name, acct.Type, acct.Currency, acct.Balance.StringFixed(2), acct.IsActive)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Page %d of %d (%d accounts)\n", pager.Page+1, pager.TotalPages(), len(items))
			return nil
		},
	}

	cmd.Flags().StringVar(&accType, "type", "", "filter by account type")
	cmd.Flags().StringVar(&currency, "currency", "", "filter by currency")
	cmd.Flags().IntVar(&page, "page", 0, "page number (0-based)")
	cmd.Flags().IntVar(&pageSize, "page-size", derive.DefaultPageSize, "rows per page")

	return cmd
}

func accountDraftFlags(cmd *cobra.Command, draft *model.AccountDraft, balance *string) {
	cmd.Flags().StringVar(&draft.Name, "name", "", "account name")
	cmd.Flags().StringVar((*string)(&draft.Type), "type", string(model.AccountTypeBank), "account type")
	cmd.Flags().StringVar((*string)(&draft.Currency), "currency", string(model.DefaultCurrency), "currency code")
	cmd.Flags().StringVar(balance, "balance", "0", "opening balance")
	cmd.Flags().StringVar(&draft.Description, "description", "", "description")
}

func newAccountsAddCommand(load appLoader) *cobra.Command {
	var draft model.AccountDraft
	var balance string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load()
			if err != nil {
				return err
			}
			draft.Balance, err = parseAmountFlag("balance", balance)
			if err != nil {
				return err
			}

			created, err := a.Accounts.Create(cmd.Context(), draft)
			if err != nil {
				flushNotifications(cmd.ErrOrStderr(), a)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created account %d: %s\n", created.ID, created.Name)
			return nil
		},
	}

	accountDraftFlags(cmd, &draft, &balance)
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newAccountsEditCommand(load appLoader) *cobra.Command {
	var draft model.AccountDraft
	var balance string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("parsing account id %q: %w", args[0], err)
			}
			a, err := load()
			if err != nil {
				return err
			}

			// Start from the current record so unset flags keep their
			// values.
			if _, err := a.Accounts.Fetch(cmd.Context(), store.AccountFilter{}); err != nil {
				flushNotifications(cmd.ErrOrStderr(), a)
				return err
			}
			current, ok := a.Accounts.Get(id)
			if !ok {
				return fmt.Errorf("account %d not found", id)
			}

			merged := model.AccountDraft{
				Name:        current.Name,
				Type:        current.Type,
				Currency:    current.Currency,
				Balance:     current.Balance,
				Description: current.Description,
			}
			if cmd.Flags().Changed("name") {
				merged.Name = draft.Name
			}
			if cmd.Flags().Changed("type") {
				merged.Type = draft.Type
			}
			if cmd.Flags().Changed("currency") {
				merged.Currency = draft.Currency
			}
			if cmd.Flags().Changed("balance") {
				merged.Balance, err = parseAmountFlag("balance", balance)
				if err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("description") {
				merged.Description = draft.Description
			}

			updated, err := a.Accounts.Update(cmd.Context(), id, merged)
			if err != nil {
				flushNotifications(cmd.ErrOrStderr(), a)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated account %d: %s\n", updated.ID, updated.Name)
			return nil
		},
	}

	accountDraftFlags(cmd, &draft, &balance)

	return cmd
}

func newAccountsRemoveCommand(load appLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("parsing account id %q: %w", args[0], err)
			}
			a, err := load()
			if err != nil {
				return err
			}
			if err := a.Accounts.Delete(cmd.Context(), id); err != nil {
				flushNotifications(cmd.ErrOrStderr(), a)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted account %d\n", id)
			return nil
		},
	}
}
