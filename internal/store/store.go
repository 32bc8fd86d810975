// Package store keeps live selection sessions in memory.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/youruser/bigcollage/internal/apperr"
	"github.com/youruser/bigcollage/internal/selection"
)

type entry struct {
	mu       sync.Mutex
	session  *selection.Session
	lastUsed time.Time
}

// SessionStore maps session IDs to sessions. Each session is only touched
// under its own lock, so an export on one session holds off toggles on it
// until it settles.
type SessionStore struct {
	sessions map[string]*entry
	mu       sync.RWMutex
	now      func() time.Time
}

func New() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*entry),
		now:      time.Now,
	}
}

// Create stores s under a new random ID.
func (s *SessionStore) Create(sess *selection.Session) string {
	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = &entry{session: sess, lastUsed: s.now()}
	return id
}

// With runs fn with exclusive access to the session with the given ID.
func (s *SessionStore) With(id string, fn func(*selection.Session) error) error {
	s.mu.RLock()
	e, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return apperr.New(apperr.CodeSessionNotFound, "session %s not found", id)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastUsed = s.now()
	return fn(e.session)
}

// Delete removes a session. It reports whether the session existed.
func (s *SessionStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	return ok
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep drops sessions idle for longer than maxIdle and returns how many it
// removed. Sessions busy in With are skipped.
func (s *SessionStore) Sweep(maxIdle time.Duration) int {
	cutoff := s.now().Add(-maxIdle)

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, e := range s.sessions {
		if !e.mu.TryLock() {
			continue
		}
		if e.lastUsed.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
		e.mu.Unlock()
	}
	return removed
}

// RunJanitor sweeps every interval until ctx is done. onSweep, when non-nil,
// is called with the count of each sweep that removed something.
func (s *SessionStore) RunJanitor(ctx context.Context, interval, maxIdle time.Duration, onSweep func(removed int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(maxIdle); n > 0 && onSweep != nil {
				onSweep(n)
			}
		}
	}
}
