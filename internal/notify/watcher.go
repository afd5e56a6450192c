package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/tally-dev/tally/internal/model"
)

// DefaultPollInterval is how often budget alerts are polled.
const DefaultPollInterval = 5 * time.Minute

// AlertSource yields the budgets whose spending crossed their threshold.
// Satisfied by the budget store.
type AlertSource interface {
	Alerts(ctx context.Context) ([]model.BudgetAlert, error)
}

// BudgetWatcher polls the alert source on a schedule and queues one
// notification per alerting budget. De-duplication is by budget ID and
// session-local: it resets when the process restarts.
type BudgetWatcher struct {
	source   AlertSource
	center   *Center
	interval time.Duration
	cron     *cron.Cron

	mu   sync.Mutex
	seen map[int]bool
}

// NewBudgetWatcher creates a watcher. A non-positive interval falls back to
// the default.
func NewBudgetWatcher(source AlertSource, center *Center, interval time.Duration) *BudgetWatcher {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &BudgetWatcher{
		source:   source,
		center:   center,
		interval: interval,
		seen:     make(map[int]bool),
	}
}

// Start polls once immediately, then on the configured schedule, until Stop.
func (w *BudgetWatcher) Start(ctx context.Context) error {
	w.Poll(ctx)

	c := cron.New()
	spec := fmt.Sprintf("@every %s", w.interval)
	if _, err := c.AddFunc(spec, func() { w.Poll(ctx) }); err != nil {
		return fmt.Errorf("scheduling budget poll: %w", err)
	}
	c.Start()
	w.cron = c
	return nil
}

// Stop halts the schedule. In-flight polls finish on their own.
func (w *BudgetWatcher) Stop() {
	if w.cron != nil {
		w.cron.Stop()
	}
}

// Poll fetches the current alerts and queues notifications for budgets not
// yet announced this session. Fetch failures are silent; the next tick
// retries.
func (w *BudgetWatcher) Poll(ctx context.Context) {
	alerts, err := w.source.Alerts(ctx)
	if err != nil {
		return
	}

	for _, a := range alerts {
		w.mu.Lock()
		dup := w.seen[a.BudgetID]
		if !dup {
			w.seen[a.BudgetID] = true
		}
		w.mu.Unlock()
		if dup {
			continue
		}

		msg := fmt.Sprintf("Budget alert: %s spent %s of %s",
			a.CategoryName, a.Spent.StringFixed(2), a.Amount.StringFixed(2))
		w.center.Show(msg, model.SeverityWarning)
	}
}
