package store

import (
	"context"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tally-dev/tally/internal/api"
	"github.com/tally-dev/tally/internal/model"
	"github.com/tally-dev/tally/internal/validate"
)

const accountsJSON = `[
  {"id": 1, "name": "Checking", "type": "bank", "currency": "USD", "balance": 1200.50, "is_active": true},
  {"id": 2, "name": "Wallet", "type": "cash", "currency": "USD", "balance": 80, "is_active": true}
]`

func TestAccountsFetchReplacesList(t *testing.T) {
	f := newFakeAPI(t)
	f.handle("GET", "/accounts", accountsJSON)
	s := NewAccounts(f.client, nil)

	items, err := s.Fetch(context.Background(), AccountFilter{})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Checking", items[0].Name)
	assert.Equal(t, "1200.50", items[0].Balance.StringFixed(2))
	assert.True(t, s.Loaded())
	assert.NoError(t, s.Err())
	assert.False(t, s.IsLoading())

	// A refetch replaces wholesale, never merges.
	f.handle("GET", "/accounts", `[{"id": 3, "name": "Savings", "type": "bank", "currency": "USD", "balance": 10}]`)
	items, err = s.Fetch(context.Background(), AccountFilter{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].ID)
}

func TestAccountsFetchFailureRetainsList(t *testing.T) {
	f := newFakeAPI(t)
	f.handle("GET", "/accounts", accountsJSON)
	s := NewAccounts(f.client, nil)

	_, err := s.Fetch(context.Background(), AccountFilter{})
	require.NoError(t, err)

	f.handleStatus("GET", "/accounts", http.StatusInternalServerError, `{"detail": "boom"}`)
	_, err = s.Fetch(context.Background(), AccountFilter{})
	require.Error(t, err)

	// Previous list survives; the error is recorded.
	assert.Len(t, s.Items(), 2)
	assert.Error(t, s.Err())
	assert.True(t, s.Loaded())
	assert.False(t, s.IsLoading())
}

func TestAccountsEmptyVersusFailed(t *testing.T) {
	f := newFakeAPI(t)
	f.handleStatus("GET", "/accounts", http.StatusInternalServerError, ``)
	s := NewAccounts(f.client, nil)

	_, err := s.Fetch(context.Background(), AccountFilter{})
	require.Error(t, err)
	assert.False(t, s.Loaded(), "a failed first fetch is not a load")

	f.handle("GET", "/accounts", `[]`)
	items, err := s.Fetch(context.Background(), AccountFilter{})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.True(t, s.Loaded(), "a successful empty listing is a load")
	assert.NoError(t, s.Err())
}

func TestAccountsFilterQuery(t *testing.T) {
	f := newFakeAPI(t)
	f.handleFunc("GET", "/accounts", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "bank", q.Get("type"))
		assert.Equal(t, "EUR", q.Get("currency"))
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "50", q.Get("limit"))
		w.Write([]byte(`[]`))
	})
	s := NewAccounts(f.client, nil)

	_, err := s.Fetch(context.Background(), AccountFilter{
		Type:     model.AccountTypeBank,
		Currency: model.CurrencyEUR,
		Page:     2,
		Limit:    50,
	})
	require.NoError(t, err)
}

func TestAccountsCreateAppendsEcho(t *testing.T) {
	f := newFakeAPI(t)
	f.handle("GET", "/accounts", accountsJSON)
	f.handleStatus("POST", "/accounts", http.StatusCreated,
		`{"id": 9, "name": "Savings", "type": "bank", "currency": "USD", "balance": 500, "is_active": true}`)
	s := NewAccounts(f.client, nil)

	_, err := s.Fetch(context.Background(), AccountFilter{})
	require.NoError(t, err)

	created, err := s.Create(context.Background(), model.AccountDraft{
		Name:     "Savings",
		Type:     model.AccountTypeBank,
		Currency: model.CurrencyUSD,
		Balance:  decimal.NewFromInt(500),
	})
	require.NoError(t, err)
	assert.Equal(t, 9, created.ID)

	items := s.Items()
	require.Len(t, items, 3)
	assert.Equal(t, 9, items[2].ID, "server echo appended at the end")
}

func TestAccountsCreateInvalidDraftSkipsNetwork(t *testing.T) {
	f := newFakeAPI(t)
	s := NewAccounts(f.client, nil)

	_, err := s.Create(context.Background(), model.AccountDraft{
		Name:     "",
		Type:     "brokerage",
		Currency: "XYZ",
	})
	require.Error(t, err)
	var verrs validate.Errors
	assert.ErrorAs(t, err, &verrs)
	assert.Zero(t, f.requestCount(), "invalid drafts never reach the network")
	assert.Error(t, s.Err())
}

func TestAccountsUpdateReplacesInPlace(t *testing.T) {
	f := newFakeAPI(t)
	f.handle("GET", "/accounts", accountsJSON)
	f.handle("PUT", "/accounts/1",
		`{"id": 1, "name": "Checking (joint)", "type": "bank", "currency": "USD", "balance": 1200.50, "is_active": true}`)
	s := NewAccounts(f.client, nil)

	_, err := s.Fetch(context.Background(), AccountFilter{})
	require.NoError(t, err)

	updated, err := s.Update(context.Background(), 1, model.AccountDraft{
		Name:     "Checking (joint)",
		Type:     model.AccountTypeBank,
		Currency: model.CurrencyUSD,
	})
	require.NoError(t, err)
	assert.Equal(t, "Checking (joint)", updated.Name)

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Checking (joint)", items[0].Name)
	assert.Equal(t, "Wallet", items[1].Name)
}

func TestAccountsDeleteRemoves(t *testing.T) {
	f := newFakeAPI(t)
	f.handle("GET", "/accounts", accountsJSON)
	f.handleStatus("DELETE", "/accounts/1", http.StatusNoContent, ``)
	s := NewAccounts(f.client, nil)

	_, err := s.Fetch(context.Background(), AccountFilter{})
	require.NoError(t, err)

	require.NoError(t, s.Delete(context.Background(), 1))
	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].ID)
}

func TestAccountsDeleteFailureKeepsItem(t *testing.T) {
	f := newFakeAPI(t)
	f.handle("GET", "/accounts", accountsJSON)
	f.handleStatus("DELETE", "/accounts/1", http.StatusConflict, `{"detail": "account has transactions"}`)
	s := NewAccounts(f.client, nil)

	_, err := s.Fetch(context.Background(), AccountFilter{})
	require.NoError(t, err)

	err = s.Delete(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, "account has transactions", api.ErrorMessage(err))
	assert.Len(t, s.Items(), 2)
}

func TestAccountsGet(t *testing.T) {
	f := newFakeAPI(t)
	f.handle("GET", "/accounts", accountsJSON)
	s := NewAccounts(f.client, nil)

	_, err := s.Fetch(context.Background(), AccountFilter{})
	require.NoError(t, err)

	got, ok := s.Get(2)
	assert.True(t, ok)
	assert.Equal(t, "Wallet", got.Name)

	_, ok = s.Get(99)
	assert.False(t, ok)
}

func TestAccountsUnauthorizedFiresCallback(t *testing.T) {
	f := newFakeAPI(t)
	f.handleStatus("GET", "/accounts", http.StatusUnauthorized, `{"detail": "Could not validate credentials"}`)
	fired := 0
	s := NewAccounts(f.client, func() { fired++ })

	_, err := s.Fetch(context.Background(), AccountFilter{})
	require.Error(t, err)
	assert.True(t, api.IsUnauthorized(err))
	assert.Equal(t, 1, fired)
}
