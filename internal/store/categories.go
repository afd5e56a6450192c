package store

import (
	"context"
	"strconv"

	"github.com/tally-dev/tally/internal/api"
	"github.com/tally-dev/tally/internal/model"
	"github.com/tally-dev/tally/internal/validate"
)

// Categories is the resource store for the category collection. Other
// stores resolve category references against its snapshot at read time
// rather than embedding copies.
type Categories struct {
	collection[model.Category]
	remote
}

// NewCategories creates the store.
func NewCategories(client *api.Client, onUnauthorized func()) *Categories {
	return &Categories{remote: remote{client: client, onUnauthorized: onUnauthorized}}
}

// Fetch replaces the list wholesale with the server response, retaining the
// previous list on failure.
func (s *Categories) Fetch(ctx context.Context) ([]model.Category, error) {
	s.begin()
	var items []model.Category
	if err := s.client.Get(ctx, "/categories", nil, &items); err != nil {
		return nil, failCollection(&s.collection, &s.remote, err)
	}
	if items == nil {
		items = []model.Category{}
	}
	s.replaceAll(items)
	s.finish(nil)
	return items, nil
}

// Get returns a category from the current snapshot.
func (s *Categories) Get(id int) (model.Category, bool) {
	for _, c := range s.Items() {
		if c.ID == id {
			return c, true
		}
	}
	return model.Category{}, false
}

// Create validates the draft (parent type and cycle rules), posts it, and
// appends the server echo on success.
func (s *Categories) Create(ctx context.Context, draft model.CategoryDraft) (model.Category, error) {
	if err := validate.Category(draft, s.Items()); err != nil {
		s.setErr(err)
		return model.Category{}, err
	}

	s.begin()
	var created model.Category
	if err := s.client.Post(ctx, "/categories", draft, &created); err != nil {
		return model.Category{}, failCollection(&s.collection, &s.remote, err)
	}
	s.appendItem(created)
	s.finish(nil)
	return created, nil
}

// Update puts the draft and then refetches the whole list: a reparent can
// ripple through the tree, so the server's view is taken wholesale.
func (s *Categories) Update(ctx context.Context, id int, draft model.CategoryDraft) (model.Category, error) {
	if err := validate.CategoryUpdate(id, draft, s.Items()); err != nil {
		s.setErr(err)
		return model.Category{}, err
	}

	s.begin()
	var updated model.Category
	if err := s.client.Put(ctx, "/categories/"+strconv.Itoa(id), draft, &updated); err != nil {
		return model.Category{}, failCollection(&s.collection, &s.remote, err)
	}
	s.finish(nil)

	if _, err := s.Fetch(ctx); err != nil {
		return updated, err
	}
	return updated, nil
}

// Delete removes the category server-side and refetches the list, since
// children may have been reparented or cascaded.
func (s *Categories) Delete(ctx context.Context, id int) error {
	s.begin()
	if err := s.client.Delete(ctx, "/categories/"+strconv.Itoa(id)); err != nil {
		return failCollection(&s.collection, &s.remote, err)
	}
	s.finish(nil)

	_, err := s.Fetch(ctx)
	return err
}
