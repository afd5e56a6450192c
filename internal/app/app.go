// Package app assembles the application-state container. There are no
// package-level singletons: every consumer receives an explicit *App, and
// tests build isolated instances.
package app

import (
	"fmt"

	"github.com/tally-dev/tally/internal/api"
	"github.com/tally-dev/tally/internal/config"
	"github.com/tally-dev/tally/internal/model"
	"github.com/tally-dev/tally/internal/notify"
	"github.com/tally-dev/tally/internal/session"
	"github.com/tally-dev/tally/internal/store"
)

// App wires the adapter, session, resource stores, and notification channel
// together for one process.
type App struct {
	Config  *config.Config
	API     *api.Client
	Session *session.Store

	Accounts     *store.Accounts
	Transactions *store.Transactions
	Categories   *store.Categories
	Budgets      *store.Budgets
	Reports      *store.Reports
	Dashboard    *store.Dashboard

	Notify *notify.Center
}

// New builds an App from configuration. Any 401 seen by a store invalidates
// the session, which queues a session-expired notification exactly once.
func New(cfg *config.Config) (*App, error) {
	tokenPath, err := cfg.ResolveTokenPath()
	if err != nil {
		return nil, fmt.Errorf("resolving token path: %w", err)
	}

	sess := session.New(tokenPath)
	client := api.New(cfg.API.BaseURL, cfg.Timeout(), sess)
	sess.Bind(client)

	center := notify.NewCenter()
	sess.SetExpiredHook(func() {
		center.Show("Your session has expired. Please log in again.", model.SeverityError)
	})

	onUnauthorized := sess.Invalidate

	categories := store.NewCategories(client, onUnauthorized)

	a := &App{
		Config:       cfg,
		API:          client,
		Session:      sess,
		Accounts:     store.NewAccounts(client, onUnauthorized),
		Transactions: store.NewTransactions(client, categories, onUnauthorized),
		Categories:   categories,
		Budgets:      store.NewBudgets(client, onUnauthorized),
		Reports:      store.NewReports(client, onUnauthorized),
		Dashboard:    store.NewDashboard(client, onUnauthorized),
		Notify:       center,
	}
	return a, nil
}
