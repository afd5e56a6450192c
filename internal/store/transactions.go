package store

import (
	"context"
	"net/url"
	"strconv"

	"github.com/tally-dev/tally/internal/api"
	"github.com/tally-dev/tally/internal/model"
	"github.com/tally-dev/tally/internal/validate"
)

// Transactions is the resource store for the transaction collection. It
// consults the category store to reject type-mismatched drafts before they
// reach the network.
type Transactions struct {
	collection[model.Transaction]
	remote
	categories *Categories
}

// NewTransactions creates the store. categories may be nil, in which case
// the category/type invariant is left to the server.
func NewTransactions(client *api.Client, categories *Categories, onUnauthorized func()) *Transactions {
	return &Transactions{
		remote:     remote{client: client, onUnauthorized: onUnauthorized},
		categories: categories,
	}
}

// TransactionFilter narrows a listing. Zero values mean "all".
type TransactionFilter struct {
	StartDate  model.Time
	EndDate    model.Time
	Type       model.TransactionType
	AccountID  int
	CategoryID int
	Page       int
	Limit      int
}

func (f TransactionFilter) query() url.Values {
	q := url.Values{}
	if !f.StartDate.IsZero() {
		q.Set("start_date", f.StartDate.Format("2006-01-02"))
	}
	if !f.EndDate.IsZero() {
		q.Set("end_date", f.EndDate.Format("2006-01-02"))
	}
	if f.Type != "" {
		q.Set("type", string(f.Type))
	}
	if f.AccountID > 0 {
		q.Set("account_id", strconv.Itoa(f.AccountID))
	}
	if f.CategoryID > 0 {
		q.Set("category_id", strconv.Itoa(f.CategoryID))
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return q
}

func (s *Transactions) lookup() validate.CategoryLookup {
	if s.categories == nil {
		return nil
	}
	return s.categories.Get
}

// Fetch replaces the list wholesale with the server response, retaining the
// previous list on failure.
func (s *Transactions) Fetch(ctx context.Context, filter TransactionFilter) ([]model.Transaction, error) {
	s.begin()
	var items []model.Transaction
	if err := s.client.Get(ctx, "/transactions", filter.query(), &items); err != nil {
		return nil, failCollection(&s.collection, &s.remote, err)
	}
	if items == nil {
		items = []model.Transaction{}
	}
	s.replaceAll(items)
	s.finish(nil)
	return items, nil
}

// Create validates the draft (including the category-type match), posts it,
// and appends the server echo on success.
func (s *Transactions) Create(ctx context.Context, draft model.TransactionDraft) (model.Transaction, error) {
	if err := validate.Transaction(draft, s.lookup()); err != nil {
		s.setErr(err)
		return model.Transaction{}, err
	}

	s.begin()
	var created model.Transaction
	if err := s.client.Post(ctx, "/transactions", draft, &created); err != nil {
		return model.Transaction{}, failCollection(&s.collection, &s.remote, err)
	}
	s.appendItem(created)
	s.finish(nil)
	return created, nil
}

// Update replaces the matching item in place on success.
func (s *Transactions) Update(ctx context.Context, id int, draft model.TransactionDraft) (model.Transaction, error) {
	if err := validate.Transaction(draft, s.lookup()); err != nil {
		s.setErr(err)
		return model.Transaction{}, err
	}

	s.begin()
	var updated model.Transaction
	if err := s.client.Put(ctx, "/transactions/"+strconv.Itoa(id), draft, &updated); err != nil {
		return model.Transaction{}, failCollection(&s.collection, &s.remote, err)
	}
	s.replaceItem(func(t model.Transaction) bool { return t.ID == id }, updated)
	s.finish(nil)
	return updated, nil
}

// Delete removes the matching item on success.
func (s *Transactions) Delete(ctx context.Context, id int) error {
	s.begin()
	if err := s.client.Delete(ctx, "/transactions/"+strconv.Itoa(id)); err != nil {
		return failCollection(&s.collection, &s.remote, err)
	}
	s.removeItem(func(t model.Transaction) bool { return t.ID == id })
	s.finish(nil)
	return nil
}
