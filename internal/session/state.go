// Package session keeps per-visitor state: the watchlist, the last
// recommendation result, and the movie currently opened for details.
package session

import (
	"sync"
	"time"

	"github.com/zfogg/reelmatch/internal/recommendations"
)

// State belongs to exactly one session. All methods are safe for concurrent
// use by requests carrying the same session id.
type State struct {
	id        string
	createdAt time.Time

	mu        sync.Mutex
	lastSeen  time.Time
	watchlist Watchlist
	last      *recommendations.Result
	selected  int64
	hasSel    bool
}

func newState(id string, now time.Time) *State {
	return &State{id: id, createdAt: now, lastSeen: now}
}

// ID returns the session id.
func (s *State) ID() string {
	return s.id
}

// CreatedAt returns when the session started.
func (s *State) CreatedAt() time.Time {
	return s.createdAt
}

func (s *State) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

// LastSeen returns the time of the most recent request.
func (s *State) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// SetLast records a new query result and closes any open detail view.
func (s *State) SetLast(r recommendations.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.Movies = append(r.Movies[:0:0], r.Movies...)
	s.last = &r
	s.hasSel = false
	s.selected = 0
}

// Last returns the most recent query result, if any.
func (s *State) Last() (recommendations.Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return recommendations.Result{}, false
	}
	r := *s.last
	r.Movies = append(r.Movies[:0:0], r.Movies...)
	return r, true
}

// Select marks movieID as the movie open in the detail view.
func (s *State) Select(movieID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = movieID
	s.hasSel = true
}

// Selected returns the open movie, if any.
func (s *State) Selected() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected, s.hasSel
}

// ClearSelected closes the detail view.
func (s *State) ClearSelected() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = 0
	s.hasSel = false
}

// AddToWatchlist saves item; false means it was already saved.
func (s *State) AddToWatchlist(item Item) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.watchlist.Add(item)
}

// RemoveFromWatchlist drops a saved movie; false means it was not saved.
func (s *State) RemoveFromWatchlist(movieID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.watchlist.Remove(movieID)
}

// InWatchlist reports whether the movie is saved.
func (s *State) InWatchlist(movieID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.watchlist.Contains(movieID)
}

// Watchlist returns the saved movies in insertion order.
func (s *State) Watchlist() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.watchlist.Items()
}
