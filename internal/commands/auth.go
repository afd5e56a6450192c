package commands

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newLoginCommand(load appLoader) *cobra.Command {
	var email string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and persist the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load()
			if err != nil {
				return err
			}

			if password == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Password: ")
				reader := bufio.NewReader(cmd.InOrStdin())
				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("reading password: %w", err)
				}
				password = strings.TrimSpace(line)
			}

			if err := a.Session.Login(cmd.Context(), email, password); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email (required)")
	_ = cmd.MarkFlagRequired("email")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted if omitted)")

	return cmd
}

func newRegisterCommand(load appLoader) *cobra.Command {
	var email string
	var password string
	var fullName string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new user",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load()
			if err != nil {
				return err
			}
			if err := a.Session.Register(cmd.Context(), email, password, fullName); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s. Run `tally login` to start a session.\n", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email (required)")
	_ = cmd.MarkFlagRequired("email")
	cmd.Flags().StringVar(&password, "password", "", "password (required)")
	_ = cmd.MarkFlagRequired("password")
	cmd.Flags().StringVar(&fullName, "name", "", "full name (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newLogoutCommand(load appLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load()
			if err != nil {
				return err
			}
			if err := a.Session.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}
