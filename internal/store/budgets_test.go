package store

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tally-dev/tally/internal/model"
)

func budgetDraft() model.BudgetDraft {
	return model.BudgetDraft{
		CategoryID:            10,
		Amount:                decimal.NewFromInt(500),
		StartDate:             model.Date(2024, time.March, 1),
		EndDate:               model.Date(2024, time.March, 31),
		NotificationThreshold: decimal.NewFromFloat(0.8),
	}
}

func TestBudgetsFetch(t *testing.T) {
	f := newFakeAPI(t)
	f.handle("GET", "/budgets", `[
	  {"id": 1, "category_id": 10, "amount": 500, "spent": 120, "start_date": "2024-03-01", "end_date": "2024-03-31", "notification_threshold": 0.8, "is_active": true}
	]`)
	s := NewBudgets(f.client, nil)

	items, err := s.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "120.00", items[0].Spent.StringFixed(2))
	assert.Equal(t, "0.80", items[0].NotificationThreshold.StringFixed(2))
}

func TestBudgetsCreate(t *testing.T) {
	f := newFakeAPI(t)
	f.handleStatus("POST", "/budgets", http.StatusCreated,
		`{"id": 3, "category_id": 10, "amount": 500, "spent": 0, "start_date": "2024-03-01", "end_date": "2024-03-31", "notification_threshold": 0.8, "is_active": true}`)
	s := NewBudgets(f.client, nil)

	created, err := s.Create(context.Background(), budgetDraft())
	require.NoError(t, err)
	assert.Equal(t, 3, created.ID)
	assert.Len(t, s.Items(), 1)
}

func TestBudgetsCreateValidatesBeforeNetwork(t *testing.T) {
	f := newFakeAPI(t)
	s := NewBudgets(f.client, nil)

	cases := []struct {
		name   string
		mutate func(*model.BudgetDraft)
	}{
		{"threshold above one", func(d *model.BudgetDraft) { d.NotificationThreshold = decimal.NewFromFloat(1.5) }},
		{"threshold zero", func(d *model.BudgetDraft) { d.NotificationThreshold = decimal.Zero }},
		{"zero amount", func(d *model.BudgetDraft) { d.Amount = decimal.Zero }},
		{"end before start", func(d *model.BudgetDraft) {
			d.StartDate = model.Date(2024, time.March, 31)
			d.EndDate = model.Date(2024, time.March, 1)
		}},
		{"missing dates", func(d *model.BudgetDraft) {
			d.StartDate = model.Time{}
			d.EndDate = model.Time{}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := budgetDraft()
			tc.mutate(&d)
			_, err := s.Create(context.Background(), d)
			assert.Error(t, err)
		})
	}
	assert.Zero(t, f.requestCount())
}

func TestBudgetsDelete(t *testing.T) {
	f := newFakeAPI(t)
	f.handle("GET", "/budgets", `[
	  {"id": 1, "category_id": 10, "amount": 500, "spent": 0, "notification_threshold": 0.8},
	  {"id": 2, "category_id": 11, "amount": 900, "spent": 0, "notification_threshold": 0.5}
	]`)
	f.handleStatus("DELETE", "/budgets/1", http.StatusNoContent, ``)
	s := NewBudgets(f.client, nil)

	_, err := s.Fetch(context.Background())
	require.NoError(t, err)

	require.NoError(t, s.Delete(context.Background(), 1))
	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].ID)
}

func TestBudgetsAlerts(t *testing.T) {
	f := newFakeAPI(t)
	f.handle("GET", "/budgets/notifications", `[
	  {"budget_id": 1, "category_name": "Groceries", "amount": 500, "spent": 430, "percentage": 86}
	]`)
	s := NewBudgets(f.client, nil)

	alerts, err := s.Alerts(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "Groceries", alerts[0].CategoryName)
	assert.Equal(t, "86", alerts[0].Percentage.StringFixed(0))

	last := s.LastAlerts()
	require.Len(t, last, 1)
	assert.Equal(t, 1, last[0].BudgetID)
}

func TestBudgetsSummary(t *testing.T) {
	f := newFakeAPI(t)
	f.handle("GET", "/budgets/summary", `[
	  {"budget_id": 1, "category_name": "Groceries", "amount": 500, "spent": 430, "remaining": 70, "percentage": 86}
	]`)
	s := NewBudgets(f.client, nil)

	rows, err := s.Summary(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "70.00", rows[0].Remaining.StringFixed(2))
}
