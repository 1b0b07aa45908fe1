// Package expiry evicts stored objects once their deadline passes, whether
// or not anyone asks for them again.
package expiry

import (
	"container/heap"
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/filerelay/service/internal/storage"
)

// DefaultSweepInterval is how often a full sweep runs in addition to the
// per-object deadlines.
const DefaultSweepInterval = 30 * time.Second

// Store is the part of the object store the manager mutates.
type Store interface {
	Remove(id uuid.UUID) bool
	All() []*storage.StoredObject
}

// Manager owns every scheduled deadline and a single timer for the
// earliest one. Firing a deadline removes the object by id; removal is
// idempotent, so deadlines for objects already evicted on access are
// harmless and nothing is ever cancelled.
type Manager struct {
	store    Store
	now      func() time.Time
	interval time.Duration
	log      zerolog.Logger

	mu    sync.Mutex
	queue deadlines
	wake  chan struct{}
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithSweepInterval overrides DefaultSweepInterval.
func WithSweepInterval(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithLogger sets the logger used for eviction events.
func WithLogger(log zerolog.Logger) Option {
	return func(m *Manager) { m.log = log }
}

// New creates a Manager for store. Call Run to start evicting.
func New(store Store, opts ...Option) *Manager {
	m := &Manager{
		store:    store,
		now:      time.Now,
		interval: DefaultSweepInterval,
		log:      zerolog.Nop(),
		wake:     make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Schedule registers an eviction for id at the given time.
func (m *Manager) Schedule(id uuid.UUID, at time.Time) {
	m.mu.Lock()
	heap.Push(&m.queue, deadline{id: id, at: at})
	m.mu.Unlock()

	select {
	case m.wake <- struct{}{}:
	default:
	}
}

// Pending returns the number of deadlines that have not fired yet.
func (m *Manager) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queue.Len()
}

// Run evicts objects until ctx is cancelled. It sweeps once on entry and
// once more on exit.
func (m *Manager) Run(ctx context.Context) {
	m.log.Info().Dur("sweep_interval", m.interval).Msg("expiry manager starting")
	m.Sweep()

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		var fire <-chan time.Time
		if next, ok := m.next(); ok {
			// Fire just past the deadline; an object is live at exactly ExpiresAt.
			timer.Reset(max(next.Sub(m.now()), 0) + time.Millisecond)
			fire = timer.C
		} else {
			timer.Stop()
		}

		select {
		case <-ctx.Done():
			n := m.Sweep()
			m.log.Info().Int("evicted", n).Msg("expiry manager stopped")
			return
		case <-m.wake:
		case <-fire:
			m.fireDue()
		case <-ticker.C:
			m.Sweep()
		}
	}
}

// Sweep removes every object whose deadline has passed and returns how
// many were removed.
func (m *Manager) Sweep() int {
	now := m.now()
	evicted := 0
	for _, obj := range m.store.All() {
		if obj.ExpiredAt(now) && m.store.Remove(obj.ID) {
			evicted++
		}
	}
	if evicted > 0 {
		m.log.Debug().Int("evicted", evicted).Msg("sweep complete")
	}
	return evicted
}

func (m *Manager) next() (time.Time, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.queue.Len() == 0 {
		return time.Time{}, false
	}
	return m.queue[0].at, true
}

func (m *Manager) fireDue() {
	now := m.now()

	var due []uuid.UUID
	m.mu.Lock()
	for m.queue.Len() > 0 && now.After(m.queue[0].at) {
		due = append(due, heap.Pop(&m.queue).(deadline).id)
	}
	m.mu.Unlock()

	for _, id := range due {
		if m.store.Remove(id) {
			m.log.Debug().Str("id", id.String()).Msg("object expired")
		}
	}
}
