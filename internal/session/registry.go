package session

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/robertarktes/visa-appointments/internal/domain"
	"github.com/robertarktes/visa-appointments/internal/observability"
	"github.com/robertarktes/visa-appointments/internal/wizard"
)

var ErrNotFound = errors.New("session: not found")

type entry struct {
	mu      sync.Mutex
	wizard  *wizard.Controller
	touched time.Time
}

// Registry keeps the wizard sessions of the applicants currently booking.
// Each session is only ever used by one caller at a time.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*entry
	slots    domain.SlotChecker
	ttl      time.Duration
	now      func() time.Time
}

func NewRegistry(slots domain.SlotChecker, ttl time.Duration) *Registry {
	return &Registry{
		sessions: make(map[string]*entry),
		slots:    slots,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create opens a new session on the first step and returns its id.
func (r *Registry) Create() string {
	id := uuid.NewString()
	e := &entry{
		wizard:  wizard.NewController(domain.NewDraft(r.slots)),
		touched: r.now(),
	}

	r.mu.Lock()
	r.sessions[id] = e
	n := len(r.sessions)
	r.mu.Unlock()

	observability.ActiveSessions.Set(float64(n))
	return id
}

// With runs fn with exclusive access to the session's controller.
func (r *Registry) With(id string, fn func(c *wizard.Controller) error) error {
	r.mu.Lock()
	e, ok := r.sessions[id]
	r.mu.Unlock()
	if !ok {
		return errors.Wrapf(ErrNotFound, "session %s", id)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if !r.holds(id, e) {
		return errors.Wrapf(ErrNotFound, "session %s", id)
	}
	e.touched = r.now()
	return fn(e.wizard)
}

// Delete drops the session. Callers inside With may delete their own session.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	n := len(r.sessions)
	r.mu.Unlock()

	observability.ActiveSessions.Set(float64(n))
}

// holds reports whether e is still registered under id.
func (r *Registry) holds(id string, e *entry) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions[id] == e
}

// Sweep removes sessions idle for longer than the TTL and returns how many went.
func (r *Registry) Sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, e := range r.sessions {
		if !e.mu.TryLock() {
			continue
		}
		if now.Sub(e.touched) > r.ttl || e.wizard.Finalized() {
			delete(r.sessions, id)
			removed++
		}
		e.mu.Unlock()
	}
	observability.ActiveSessions.Set(float64(len(r.sessions)))
	return removed
}

// Run sweeps on every tick until ctx is done.
func (r *Registry) Run(ctx context.Context, every time.Duration, logger observability.Logger) error {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			if n := r.Sweep(r.now()); n > 0 {
				logger.Debug("expired sessions removed: ", n)
			}
		}
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
