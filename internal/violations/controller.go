// Package violations holds the client-side session state for parking
// violations and keeps it in sync with a ViolationService.
//
// All state lives in a Controller. Consumers read it through accessors or a
// State snapshot and change it only through the controller's actions:
// FetchViolations, ToggleViolationStatus, UpdateSearchTerm and DismissError.
// Service failures never escape as panics; their message lands in a single
// error slot that the next successful operation, or DismissError, clears.
package violations

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"parking-violations/internal/datastore"
	"parking-violations/internal/interfaces"
	"parking-violations/internal/models"
)

var ErrClosed = errors.New("violations: controller closed")

// State is a point-in-time copy of everything a consumer may render.
type State struct {
	Version            uint64
	Violations         []models.Violation
	FilteredViolations []models.Violation
	IsLoading          bool
	ErrorMessage       string
	SearchTerm         string
	PendingUpdates     []string
}

type Option func(*Controller)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithRegisterer registers the controller's metrics with reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(c *Controller) {
		c.registerer = reg
	}
}

// WithListener calls fn with a fresh snapshot after every state change. fn
// runs outside the controller lock; snapshots from overlapping operations
// can arrive out of order, so compare Version.
func WithListener(fn func(State)) Option {
	return func(c *Controller) {
		c.listeners = append(c.listeners, fn)
	}
}

type Controller struct {
	service    interfaces.ViolationService
	logger     *slog.Logger
	registerer prometheus.Registerer
	metrics    *metrics
	listeners  []func(State)

	mu           sync.Mutex
	store        *datastore.DataStore[models.Violation]
	filtered     []models.Violation
	searchTerm   string
	pending      pendingSet
	fetching     int
	errorMessage string
	version      uint64
	closed       bool
}

func New(service interfaces.ViolationService, opts ...Option) *Controller {
	c := &Controller{
		service:  service,
		logger:   slog.Default(),
		store:    datastore.New(models.ViolationID),
		filtered: []models.Violation{},
		pending:  make(pendingSet),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.metrics = newMetrics(c.registerer)
	return c
}

// Start runs the initial fetch in the background. The returned channel is
// closed once that fetch has settled.
func (c *Controller) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = c.FetchViolations(ctx)
	}()
	return done
}

// Close detaches the controller. Operations still in flight are not aborted,
// but their results are discarded.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// FetchViolations replaces the whole collection with the service's. On
// failure the collection is left as it was and the error message is set.
// The returned error is the same failure; callers may ignore it.
func (c *Controller) FetchViolations(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.fetching++
	c.errorMessage = ""
	state := c.changedLocked()
	c.mu.Unlock()
	c.notify(state)

	start := time.Now()
	records, err := c.service.GetViolations(ctx)
	c.metrics.fetchDur.Observe(time.Since(start).Seconds())
	c.metrics.fetches.WithLabelValues(outcome(err)).Inc()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		c.logger.Debug("discarding fetch result after close")
		return err
	}
	c.fetching--
	if err != nil {
		c.errorMessage = err.Error()
		c.logger.Warn("fetch violations failed", "error", err)
	} else {
		c.store.Replace(records)
		c.errorMessage = ""
		c.logger.Info("fetched violations", "count", len(records))
	}
	state = c.changedLocked()
	c.mu.Unlock()
	c.notify(state)

	return err
}

// ToggleViolationStatus sets the resolved flag of id to resolved before the
// service confirms it and reverts to the previous value if the service
// rejects the change. Unknown ids are ignored without calling the service.
func (c *Controller) ToggleViolationStatus(ctx context.Context, id string, resolved bool) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	var prior bool
	found := c.store.Update(id, func(v *models.Violation) {
		prior = v.Resolved
		v.Resolved = resolved
	})
	if !found {
		c.mu.Unlock()
		c.logger.Debug("toggle ignored for unknown violation", "id", id)
		return nil
	}
	c.pending.add(id)
	state := c.changedLocked()
	c.mu.Unlock()
	c.metrics.pending.Inc()
	c.notify(state)

	echoed, err := c.service.UpdateViolationStatus(ctx, id, resolved)
	c.metrics.pending.Dec()
	c.metrics.toggles.WithLabelValues(outcome(err)).Inc()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		c.logger.Debug("discarding toggle result after close", "id", id)
		return err
	}
	c.pending.done(id)
	if err != nil {
		// Restore what this call overwrote, not the inverse of resolved.
		c.store.Update(id, func(v *models.Violation) {
			v.Resolved = prior
		})
		c.errorMessage = err.Error()
		c.logger.Warn("toggle violation failed", "id", id, "resolved", resolved, "error", err)
	} else {
		if echoed.ID == id {
			c.store.Update(id, func(v *models.Violation) {
				v.Resolved = echoed.Resolved
			})
		}
		c.errorMessage = ""
		c.logger.Info("toggled violation", "id", id, "resolved", resolved)
	}
	state = c.changedLocked()
	c.mu.Unlock()
	c.notify(state)

	return err
}

func (c *Controller) UpdateSearchTerm(term string) {
	c.mu.Lock()
	if c.searchTerm == term {
		c.mu.Unlock()
		return
	}
	c.searchTerm = term
	state := c.changedLocked()
	c.mu.Unlock()
	c.notify(state)
}

func (c *Controller) DismissError() {
	c.mu.Lock()
	if c.errorMessage == "" {
		c.mu.Unlock()
		return
	}
	c.errorMessage = ""
	state := c.changedLocked()
	c.mu.Unlock()
	c.notify(state)
}

func (c *Controller) IsPendingUpdate(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending.has(id)
}

func (c *Controller) IsLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fetching > 0
}

// ErrorMessage returns the most recent failure, or "" when there is none.
func (c *Controller) ErrorMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errorMessage
}

func (c *Controller) SearchTerm() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.searchTerm
}

func (c *Controller) Violations() []models.Violation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.AsSlice()
}

func (c *Controller) Violation(id string) (models.Violation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Get(id)
}

func (c *Controller) FilteredViolations() []models.Violation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Violation(nil), c.filtered...)
}

// HasChanges reports whether the collection was written since the last call.
func (c *Controller) HasChanges() bool {
	return c.store.HasChanges()
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// changedLocked recomputes derived state after a mutation and returns the
// snapshot to hand to listeners.
func (c *Controller) changedLocked() State {
	c.version++
	c.filtered = Filter(c.store.AsSlice(), c.searchTerm)
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() State {
	pending := c.pending.ids()
	sort.Strings(pending)
	return State{
		Version:            c.version,
		Violations:         c.store.AsSlice(),
		FilteredViolations: append([]models.Violation(nil), c.filtered...),
		IsLoading:          c.fetching > 0,
		ErrorMessage:       c.errorMessage,
		SearchTerm:         c.searchTerm,
		PendingUpdates:     pending,
	}
}

func (c *Controller) notify(state State) {
	for _, fn := range c.listeners {
		fn(state)
	}
}
