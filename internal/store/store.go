// Package store holds the client's normalized in-memory state: one resource
// store per entity kind, each owning its item list, a loading flag, and an
// error slot, mutated only through its operations.
//
// Fetch policy: a failed fetch retains the last good list and records the
// error; the loaded flag distinguishes a successful empty listing from a
// failure. Mutations apply the server echo locally (append, replace by ID,
// remove); the category store additionally refetches after update/delete.
// Operations apply in completion order, and concurrent operations on one
// store share its single loading flag (last to finish clears it).
package store

import (
	"sync"

	"github.com/tally-dev/tally/internal/api"
)

// collection is the shared list state of one resource store.
type collection[T any] struct {
	mu       sync.Mutex
	items    []T
	inFlight int
	err      error
	loaded   bool
}

func (c *collection[T]) begin() {
	c.mu.Lock()
	c.inFlight++
	c.err = nil
	c.mu.Unlock()
}

func (c *collection[T]) finish(err error) {
	c.mu.Lock()
	c.inFlight--
	if err != nil {
		c.err = err
	}
	c.mu.Unlock()
}

func (c *collection[T]) setErr(err error) {
	c.mu.Lock()
	c.err = err
	c.mu.Unlock()
}

func (c *collection[T]) replaceAll(items []T) {
	c.mu.Lock()
	c.items = items
	c.loaded = true
	c.mu.Unlock()
}

func (c *collection[T]) appendItem(item T) {
	c.mu.Lock()
	c.items = append(c.items, item)
	c.mu.Unlock()
}

func (c *collection[T]) replaceItem(match func(T) bool, item T) {
	c.mu.Lock()
	for i := range c.items {
		if match(c.items[i]) {
			c.items[i] = item
			break
		}
	}
	c.mu.Unlock()
}

func (c *collection[T]) removeItem(match func(T) bool) {
	c.mu.Lock()
	kept := c.items[:0]
	for _, it := range c.items {
		if !match(it) {
			kept = append(kept, it)
		}
	}
	c.items = kept
	c.mu.Unlock()
}

// Items returns a copy of the current list in server order.
func (c *collection[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// IsLoading reports whether any operation is in flight.
func (c *collection[T]) IsLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight > 0
}

// Err returns the most recent operation error, nil after a success.
func (c *collection[T]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Loaded reports whether any fetch has succeeded, distinguishing an empty
// list from a never-loaded or failed one.
func (c *collection[T]) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// document is the state of a single derived payload (reports, dashboard).
type document[T any] struct {
	mu       sync.Mutex
	data     *T
	inFlight int
	err      error
}

func (d *document[T]) begin() {
	d.mu.Lock()
	d.inFlight++
	d.err = nil
	d.mu.Unlock()
}

func (d *document[T]) finish(err error) {
	d.mu.Lock()
	d.inFlight--
	if err != nil {
		d.err = err
	}
	d.mu.Unlock()
}

func (d *document[T]) setErr(err error) {
	d.mu.Lock()
	d.err = err
	d.mu.Unlock()
}

func (d *document[T]) set(data *T) {
	d.mu.Lock()
	d.data = data
	d.mu.Unlock()
}

// Data returns the last generated payload, nil before the first success.
func (d *document[T]) Data() *T {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.data
}

// Clear drops the payload.
func (d *document[T]) Clear() {
	d.mu.Lock()
	d.data = nil
	d.mu.Unlock()
}

// IsLoading reports whether a generation is in flight.
func (d *document[T]) IsLoading() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.inFlight > 0
}

// Err returns the most recent error, nil after a success.
func (d *document[T]) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

// remote is the outbound side shared by every store.
type remote struct {
	client         *api.Client
	onUnauthorized func()
}

// noteUnauthorized forwards a 401 to the session layer. The adapter only
// surfaces the error; invalidating the session happens here, once per
// failing operation.
func (r *remote) noteUnauthorized(err error) {
	if api.IsUnauthorized(err) && r.onUnauthorized != nil {
		r.onUnauthorized()
	}
}

func failCollection[T any](c *collection[T], r *remote, err error) error {
	r.noteUnauthorized(err)
	c.finish(err)
	return err
}

func failDocument[T any](d *document[T], r *remote, err error) error {
	r.noteUnauthorized(err)
	d.finish(err)
	return err
}
