package store

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tally-dev/tally/internal/model"
)

func TestReportsGenerate(t *testing.T) {
	f := newFakeAPI(t)
	f.handleFunc("POST", "/reports", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Contains(t, body, "start_date")
		assert.Contains(t, body, "end_date")
		w.Write([]byte(`{
		  "categoryBreakdown": {"labels": ["Groceries"], "data": [430]},
		  "monthlyTrends": {"labels": ["Mar 2024"], "income": [3000], "expenses": [430]},
		  "summary": {"totalIncome": 3000, "totalExpenses": 430, "netSavings": 2570, "savingsRate": 0.856}
		}`))
	})
	s := NewReports(f.client, nil)

	data, err := s.Generate(context.Background(), model.ReportParams{
		StartDate: model.Date(2024, time.March, 1),
		EndDate:   model.Date(2024, time.March, 31),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Groceries"}, data.CategoryBreakdown.Labels)
	assert.Equal(t, "0.86", data.Summary.SavingsRate.StringFixed(2))

	// The payload is retained for re-reading without a round trip.
	assert.Same(t, data, s.Data())
	assert.NoError(t, s.Err())
}

func TestReportsGenerateValidatesRange(t *testing.T) {
	f := newFakeAPI(t)
	s := NewReports(f.client, nil)

	_, err := s.Generate(context.Background(), model.ReportParams{
		StartDate: model.Date(2024, time.March, 31),
		EndDate:   model.Date(2024, time.March, 1),
	})
	require.Error(t, err)
	assert.Zero(t, f.requestCount())
	assert.Error(t, s.Err())
	assert.Nil(t, s.Data())
}

func TestReportsGenerateFailureKeepsLastReport(t *testing.T) {
	f := newFakeAPI(t)
	f.handle("POST", "/reports", `{"summary": {"totalIncome": 100, "totalExpenses": 0, "netSavings": 100, "savingsRate": 1}}`)
	s := NewReports(f.client, nil)

	params := model.ReportParams{
		StartDate: model.Date(2024, time.March, 1),
		EndDate:   model.Date(2024, time.March, 31),
	}
	first, err := s.Generate(context.Background(), params)
	require.NoError(t, err)

	f.handleStatus("POST", "/reports", http.StatusInternalServerError, `{"detail": "boom"}`)
	_, err = s.Generate(context.Background(), params)
	require.Error(t, err)
	assert.Same(t, first, s.Data(), "failed generation keeps the previous report")
	assert.Error(t, s.Err())
}

func TestDashboardFetch(t *testing.T) {
	f := newFakeAPI(t)
	f.handle("GET", "/reports/dashboard", `{
	  "totalBalance": 5703.23,
	  "recentTransactions": [{"id": 9, "date": "2024-03-20T12:00:00Z", "type": "expense", "amount": 64.23, "account_id": 1, "category_id": 10}],
	  "summary": {"totalIncome": 3500, "totalExpenses": 296.77, "netSavings": 3203.23, "savingsRate": 0.915}
	}`)
	s := NewDashboard(f.client, nil)

	data, err := s.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "5703.23", data.TotalBalance.StringFixed(2))
	require.Len(t, data.RecentTransactions, 1)
	assert.Equal(t, 9, data.RecentTransactions[0].ID)
	assert.Same(t, data, s.Data())
}

func TestDashboardClear(t *testing.T) {
	f := newFakeAPI(t)
	f.handle("GET", "/reports/dashboard", `{"totalBalance": 1}`)
	s := NewDashboard(f.client, nil)

	_, err := s.Fetch(context.Background())
	require.NoError(t, err)
	require.NotNil(t, s.Data())

	s.Clear()
	assert.Nil(t, s.Data())
}
