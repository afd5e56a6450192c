package store

import (
	"context"
	"strconv"
	"sync"

	"github.com/tally-dev/tally/internal/api"
	"github.com/tally-dev/tally/internal/model"
	"github.com/tally-dev/tally/internal/validate"
)

// Budgets is the resource store for the budget collection, plus the server's
// threshold-crossing alerts and spending summary.
type Budgets struct {
	collection[model.Budget]
	remote

	alertsMu sync.Mutex
	alerts   []model.BudgetAlert
}

// NewBudgets creates the store.
func NewBudgets(client *api.Client, onUnauthorized func()) *Budgets {
	return &Budgets{remote: remote{client: client, onUnauthorized: onUnauthorized}}
}

// Fetch replaces the list wholesale with the server response, retaining the
// previous list on failure.
func (s *Budgets) Fetch(ctx context.Context) ([]model.Budget, error) {
	s.begin()
	var items []model.Budget
	if err := s.client.Get(ctx, "/budgets", nil, &items); err != nil {
		return nil, failCollection(&s.collection, &s.remote, err)
	}
	if items == nil {
		items = []model.Budget{}
	}
	s.replaceAll(items)
	s.finish(nil)
	return items, nil
}

// Create validates the draft (period boundaries, threshold range), posts it,
// and appends the server echo on success.
func (s *Budgets) Create(ctx context.Context, draft model.BudgetDraft) (model.Budget, error) {
	if err := validate.Budget(draft); err != nil {
		s.setErr(err)
		return model.Budget{}, err
	}

	s.begin()
	var created model.Budget
	if err := s.client.Post(ctx, "/budgets", draft, &created); err != nil {
		return model.Budget{}, failCollection(&s.collection, &s.remote, err)
	}
	s.appendItem(created)
	s.finish(nil)
	return created, nil
}

// Update replaces the matching item in place on success.
func (s *Budgets) Update(ctx context.Context, id int, draft model.BudgetDraft) (model.Budget, error) {
	if err := validate.Budget(draft); err != nil {
		s.setErr(err)
		return model.Budget{}, err
	}

	s.begin()
	var updated model.Budget
	if err := s.client.Put(ctx, "/budgets/"+strconv.Itoa(id), draft, &updated); err != nil {
		return model.Budget{}, failCollection(&s.collection, &s.remote, err)
	}
	s.replaceItem(func(b model.Budget) bool { return b.ID == id }, updated)
	s.finish(nil)
	return updated, nil
}

// Delete removes the matching item on success.
func (s *Budgets) Delete(ctx context.Context, id int) error {
	s.begin()
	if err := s.client.Delete(ctx, "/budgets/"+strconv.Itoa(id)); err != nil {
		return failCollection(&s.collection, &s.remote, err)
	}
	s.removeItem(func(b model.Budget) bool { return b.ID == id })
	s.finish(nil)
	return nil
}

// Alerts fetches the budgets whose spending crossed their notification
// threshold and remembers the latest batch.
func (s *Budgets) Alerts(ctx context.Context) ([]model.BudgetAlert, error) {
	s.begin()
	var alerts []model.BudgetAlert
	if err := s.client.Get(ctx, "/budgets/notifications", nil, &alerts); err != nil {
		return nil, failCollection(&s.collection, &s.remote, err)
	}
	s.alertsMu.Lock()
	s.alerts = alerts
	s.alertsMu.Unlock()
	s.finish(nil)
	return alerts, nil
}

// LastAlerts returns the most recently fetched alert batch.
func (s *Budgets) LastAlerts() []model.BudgetAlert {
	s.alertsMu.Lock()
	defer s.alertsMu.Unlock()
	out := make([]model.BudgetAlert, len(s.alerts))
	copy(out, s.alerts)
	return out
}

// Summary fetches the spending progress of every active budget.
func (s *Budgets) Summary(ctx context.Context) ([]model.BudgetSummaryRow, error) {
	s.begin()
	var rows []model.BudgetSummaryRow
	if err := s.client.Get(ctx, "/budgets/summary", nil, &rows); err != nil {
		return nil, failCollection(&s.collection, &s.remote, err)
	}
	s.finish(nil)
	return rows, nil
}
