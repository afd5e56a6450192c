package commands

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/derive"
	"github.com/tally-dev/tally/internal/model"
)

func newCategoriesCommand(load appLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage categories",
	}
	cmd.AddCommand(newCategoriesListCommand(load))
	cmd.AddCommand(newCategoriesAddCommand(load))
	cmd.AddCommand(newCategoriesEditCommand(load))
	cmd.AddCommand(newCategoriesRemoveCommand(load))
	return cmd
}

func newCategoriesListCommand(load appLoader) *cobra.Command {
	var txType string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load()
			if err != nil {
				return err
			}

			items, err := a.Categories.Fetch(cmd.Context())
			if err != nil {
				flushNotifications(cmd.ErrOrStderr(), a)
				return err
			}
			if txType != "" {
				items = derive.CategoriesForType(items, model.TransactionType(txType))
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tTYPE\tPARENT\tDESCRIPTION")
			for _, c := range items {
				parent := ""
				if c.ParentID != 0 {
					parent = derive.CategoryName(items, c.ParentID)
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Type, parent, c.Description)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&txType, "type", "", "only income or expense categories")

	return cmd
}

func newCategoriesAddCommand(load appLoader) *cobra.Command {
	var draft model.CategoryDraft

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a category",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load()
			if err != nil {
				return err
			}

			// Parent rules are checked against the current snapshot.
			if _, err := a.Categories.Fetch(cmd.Context()); err != nil {
				flushNotifications(cmd.ErrOrStderr(), a)
				return err
			}

			created, err := a.Categories.Create(cmd.Context(), draft)
			if err != nil {
				flushNotifications(cmd.ErrOrStderr(), a)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created category %d: %s\n", created.ID, created.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&draft.Name, "name", "", "category name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar((*string)(&draft.Type), "type", string(model.TransactionExpense), "income or expense")
	cmd.Flags().StringVar(&draft.Description, "description", "", "description")
	cmd.Flags().StringVar(&draft.Color, "color", "", "display color (#rrggbb)")
	cmd.Flags().IntVar(&draft.ParentID, "parent", 0, "parent category id")

	return cmd
}

func newCategoriesEditCommand(load appLoader) *cobra.Command {
	var name, description, color string
	var parentID int

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("parsing category id %q: %w", args[0], err)
			}
			a, err := load()
			if err != nil {
				return err
			}

			items, err := a.Categories.Fetch(cmd.Context())
			if err != nil {
				flushNotifications(cmd.ErrOrStderr(), a)
				return err
			}
			var current *model.Category
			for _, c := range items {
				if c.ID == id {
					current = &c
					break
				}
			}
			if current == nil {
				return fmt.Errorf("category %d not found", id)
			}

			// The type is fixed at creation; reparenting and renaming are
			// what edits are for.
			draft := model.CategoryDraft{
				Name:        current.Name,
				Type:        current.Type,
				Description: current.Description,
				Color:       current.Color,
				ParentID:    current.ParentID,
			}
			if cmd.Flags().Changed("name") {
				draft.Name = name
			}
			if cmd.Flags().Changed("description") {
				draft.Description = description
			}
			if cmd.Flags().Changed("color") {
				draft.Color = color
			}
			if cmd.Flags().Changed("parent") {
				draft.ParentID = parentID
			}

			updated, err := a.Categories.Update(cmd.Context(), id, draft)
			if err != nil {
				flushNotifications(cmd.ErrOrStderr(), a)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated category %d: %s\n", updated.ID, updated.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "category name")
	cmd.Flags().StringVar(&description, "description", "", "description")
	cmd.Flags().StringVar(&color, "color", "", "display color (#rrggbb)")
	cmd.Flags().IntVar(&parentID, "parent", 0, "parent category id (0 for top-level)")

	return cmd
}

func newCategoriesRemoveCommand(load appLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("parsing category id %q: %w", args[0], err)
			}
			a, err := load()
			if err != nil {
				return err
			}
			if err := a.Categories.Delete(cmd.Context(), id); err != nil {
				flushNotifications(cmd.ErrOrStderr(), a)
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted category %d\n", id)
			return nil
		},
	}
}
