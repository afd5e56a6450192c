// Package notify is the transient, time-ordered channel of user-facing
// messages, decoupled from the stores that raise them.
package notify

import (
	"strconv"
	"sync"
	"time"

	"github.com/tally-dev/tally/internal/model"
)

// Center is a FIFO list of notifications. Messages are created, displayed,
// and dismissed; never updated in place.
type Center struct {
	mu    sync.Mutex
	seq   int
	items []model.Notification
}

// NewCenter creates an empty Center.
func NewCenter() *Center {
	return &Center{}
}

// Show appends a notification and returns its generated ID.
func (c *Center) Show(message string, severity model.Severity) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	id := strconv.FormatInt(time.Now().UnixMilli(), 10) + "-" + strconv.Itoa(c.seq)
	c.items = append(c.items, model.Notification{ID: id, Message: message, Severity: severity})
	return id
}

// Dismiss removes a notification by ID. Dismissing an unknown ID is a no-op.
func (c *Center) Dismiss(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.items[:0]
	for _, n := range c.items {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	c.items = kept
}

// All returns the notifications in display order, oldest first.
func (c *Center) All() []model.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Notification, len(c.items))
	copy(out, c.items)
	return out
}

// Drain returns the pending notifications and clears the list.
func (c *Center) Drain() []model.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.items
	c.items = nil
	return out
}

// Prune drops the oldest notifications until at most max remain.
func (c *Center) Prune(max int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if max < 0 {
		max = 0
	}
	if len(c.items) > max {
		c.items = append([]model.Notification(nil), c.items[len(c.items)-max:]...)
	}
}

// Len returns the number of pending notifications.
func (c *Center) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}
