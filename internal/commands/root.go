// Package commands is the CLI surface: it reads store state, dispatches
// store operations, and renders tables. It never mutates store state
// directly.
package commands

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/app"
	"github.com/tally-dev/tally/internal/buildinfo"
	"github.com/tally-dev/tally/internal/config"
	"github.com/tally-dev/tally/internal/model"
)

// appLoader defers App construction until a command actually runs, so flag
// values are in effect.
type appLoader func() (*app.App, error)

// NewRootCommand creates the root CLI command with all subcommands
// registered.
func NewRootCommand() *cobra.Command {
	var cfgPath string
	var apiURL string

	rootCmd := &cobra.Command{
		Use:     "tally",
		Short:   "Personal finance tracking from the terminal",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default: <user config dir>/tally/tally.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "API base URL override")

	load := func() (*app.App, error) {
		path := cfgPath
		if path == "" {
			if p, err := config.DefaultPath(); err == nil {
				path = p
			}
		}
		cfg, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		if apiURL != "" {
			cfg.API.BaseURL = apiURL
		}
		return app.New(cfg)
	}

	rootCmd.AddCommand(newLoginCommand(load))
	rootCmd.AddCommand(newRegisterCommand(load))
	rootCmd.AddCommand(newLogoutCommand(load))
	rootCmd.AddCommand(newAccountsCommand(load))
	rootCmd.AddCommand(newTransactionsCommand(load))
	rootCmd.AddCommand(newCategoriesCommand(load))
	rootCmd.AddCommand(newBudgetsCommand(load))
	rootCmd.AddCommand(newReportCommand(load))
	rootCmd.AddCommand(newDashboardCommand(load))

	return rootCmd
}

// flushNotifications prints and clears any messages the stores queued while
// a command ran.
func flushNotifications(out io.Writer, a *app.App) {
	for _, n := range a.Notify.Drain() {
		fmt.Fprintf(out, "[%s] %s\n", n.Severity, n.Message)
	}
}

func parseDateFlag(name, value string) (model.Time, error) {
	t, err := model.ParseDate(value)
	if err != nil {
		return model.Time{}, fmt.Errorf("--%s: %w", name, err)
	}
	return t, nil
}

func decimalFromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

func parseAmountFlag(name, value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("--%s: parsing amount %q: %w", name, value, err)
	}
	return d, nil
}
