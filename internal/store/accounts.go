package store

import (
	"context"
	"net/url"
	"strconv"

	"github.com/tally-dev/tally/internal/api"
	"github.com/tally-dev/tally/internal/model"
	"github.com/tally-dev/tally/internal/validate"
)

// Accounts is the resource store for the account collection.
type Accounts struct {
	collection[model.Account]
	remote
}

// NewAccounts creates the store. onUnauthorized is invoked when any
// operation hits a 401.
func NewAccounts(client *api.Client, onUnauthorized func()) *Accounts {
	return &Accounts{remote: remote{client: client, onUnauthorized: onUnauthorized}}
}

// AccountFilter narrows a listing. Zero values mean "all".
type AccountFilter struct {
	Type     model.AccountType
	Currency model.Currency
	Page     int
	Limit    int
}

func (f AccountFilter) query() url.Values {
	q := url.Values{}
	if f.Type != "" {
		q.Set("type", string(f.Type))
	}
	if f.Currency != "" {
		q.Set("currency", string(f.Currency))
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return q
}

// Fetch replaces the list wholesale with the server response. On failure the
// previous list is retained and the error recorded.
func (s *Accounts) Fetch(ctx context.Context, filter AccountFilter) ([]model.Account, error) {
	s.begin()
	var items []model.Account
	if err := s.client.Get(ctx, "/accounts", filter.query(), &items); err != nil {
		return nil, failCollection(&s.collection, &s.remote, err)
	}
	if items == nil {
		items = []model.Account{}
	}
	s.replaceAll(items)
	s.finish(nil)
	return items, nil
}

// Get returns an account from the current snapshot.
func (s *Accounts) Get(id int) (model.Account, bool) {
	for _, a := range s.Items() {
		if a.ID == id {
			return a, true
		}
	}
	return model.Account{}, false
}

// Create validates the draft, posts it, and appends the server echo (with
// its assigned ID) on success. The list is untouched on failure.
func (s *Accounts) Create(ctx context.Context, draft model.AccountDraft) (model.Account, error) {
	if err := validate.Account(draft); err != nil {
		s.setErr(err)
		return model.Account{}, err
	}

	s.begin()
	var created model.Account
	if err := s.client.Post(ctx, "/accounts", draft, &created); err != nil {
		return model.Account{}, failCollection(&s.collection, &s.remote, err)
	}
	s.appendItem(created)
	s.finish(nil)
	return created, nil
}

// Update replaces the matching item in place on success.
func (s *Accounts) Update(ctx context.Context, id int, draft model.AccountDraft) (model.Account, error) {
	if err := validate.Account(draft); err != nil {
		s.setErr(err)
		return model.Account{}, err
	}

	s.begin()
	var updated model.Account
	if err := s.client.Put(ctx, "/accounts/"+strconv.Itoa(id), draft, &updated); err != nil {
		return model.Account{}, failCollection(&s.collection, &s.remote, err)
	}
	s.replaceItem(func(a model.Account) bool { return a.ID == id }, updated)
	s.finish(nil)
	return updated, nil
}

// Delete removes the matching item on success.
func (s *Accounts) Delete(ctx context.Context, id int) error {
	s.begin()
	if err := s.client.Delete(ctx, "/accounts/"+strconv.Itoa(id)); err != nil {
		return failCollection(&s.collection, &s.remote, err)
	}
	s.removeItem(func(a model.Account) bool { return a.ID == id })
	s.finish(nil)
	return nil
}
