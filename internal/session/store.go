package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/zfogg/reelmatch/internal/logger"
	"github.com/zfogg/reelmatch/internal/metrics"
	"go.uber.org/zap"
)

// ErrNotFound is returned for ids that name no live session.
var ErrNotFound = errors.New("session not found")

// Store is the in-memory registry of live sessions. Nothing survives a
// restart.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*State
	idle     time.Duration
	now      func() time.Time
}

// NewStore returns a store whose sessions expire after idle without a
// request. A non-positive idle disables expiry.
func NewStore(idle time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*State),
		idle:     idle,
		now:      time.Now,
	}
}

func (s *Store) updateGauge() {
	metrics.Get().ActiveSessions.Set(float64(len(s.sessions)))
}

// Create starts a new session with a fresh random id.
func (s *Store) Create() *State {
	st := newState(uuid.NewString(), s.now())

	s.mu.Lock()
	s.sessions[st.id] = st
	s.updateGauge()
	s.mu.Unlock()

	logger.Log.Debug("Session created", logger.WithSessionID(st.id))
	return st
}

// Get returns the live session with id and refreshes its idle timer.
func (s *Store) Get(id string) (*State, error) {
	s.mu.RLock()
	st, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	now := s.now()
	if s.expired(st, now) {
		s.Delete(id)
		return nil, ErrNotFound
	}
	st.touch(now)
	return st, nil
}

// GetOrCreate returns the session named by id, or a new one when id is
// empty, unknown, or expired. created reports which happened.
func (s *Store) GetOrCreate(id string) (st *State, created bool) {
	if id != "" {
		if st, err := s.Get(id); err == nil {
			return st, false
		}
	}
	return s.Create(), true
}

// Delete ends a session. Deleting an unknown id is a no-op.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	s.updateGauge()
	return true
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Store) expired(st *State, now time.Time) bool {
	return s.idle > 0 && now.Sub(st.LastSeen()) > s.idle
}

// Sweep removes idle sessions and returns how many were removed.
func (s *Store) Sweep() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, st := range s.sessions {
		if s.expired(st, now) {
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		s.updateGauge()
		logger.Log.Debug("Expired idle sessions", zap.Int("removed", removed), zap.Int("remaining", len(s.sessions)))
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	if s.idle <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
