package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lumiere-stone/atelier/internal/metrics"
)

// Registry owns every live session and drops the ones left idle.
type Registry struct {
	deps    Dependencies
	idleTTL time.Duration
	now     func() time.Time
	newID   func() string

	mu       sync.RWMutex
	sessions map[string]*State
}

func NewRegistry(deps Dependencies, idleTTL time.Duration) *Registry {
	return &Registry{
		deps:     deps,
		idleTTL:  idleTTL,
		now:      time.Now,
		newID:    uuid.NewString,
		sessions: make(map[string]*State),
	}
}

// Create starts a session as a fresh page load at the given fragment.
func (r *Registry) Create(fragment string) *State {
	now := r.now()
	st := newState(r.newID(), now, r.deps)
	st.now = r.now
	st.Navigate(fragment)

	r.mu.Lock()
	r.sessions[st.id] = st
	n := len(r.sessions)
	r.mu.Unlock()

	metrics.SetActiveSessions(n)
	return st
}

// Get returns the session and marks it as used.
func (r *Registry) Get(id string) (*State, bool) {
	r.mu.RLock()
	st, ok := r.sessions[id]
	r.mu.RUnlock()

	if !ok {
		return nil, false
	}
	st.touch(r.now())
	return st, true
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep drops sessions idle for longer than the TTL and returns how many.
func (r *Registry) Sweep() int {
	if r.idleTTL <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.idleTTL)

	r.mu.Lock()
	removed := 0
	for id, st := range r.sessions {
		if st.idleSince().Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	n := len(r.sessions)
	r.mu.Unlock()

	metrics.SetActiveSessions(n)
	return removed
}

// Run sweeps on every tick until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				slog.Info("Expired idle sessions", slog.Int("count", n), slog.Int("active", r.Len()))
			}
		}
	}
}

// Drain waits for the background narratives of every live session. It
// returns ctx.Err() if ctx ends first. Call it once no new requests arrive.
func (r *Registry) Drain(ctx context.Context) error {
	r.mu.RLock()
	states := make([]*State, 0, len(r.sessions))
	for _, st := range r.sessions {
		states = append(states, st)
	}
	r.mu.RUnlock()

	done := make(chan struct{})
	go func() {
		for _, st := range states {
			st.WaitNarratives()
		}
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
