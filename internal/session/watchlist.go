package session

// Item is one saved movie.
type Item struct {
	MovieID   int64  `json:"movie_id"`
	Title     string `json:"title"`
	PosterURL string `json:"poster_url,omitempty"`
}

// Watchlist is an ordered set of items keyed by movie id. It is not safe
// for concurrent use on its own; State guards it.
type Watchlist struct {
	items []Item
}

// Add appends item unless its movie is already saved.
func (w *Watchlist) Add(item Item) bool {
	if w.Contains(item.MovieID) {
		return false
	}
	w.items = append(w.items, item)
	return true
}

// Remove drops the movie and reports whether it was present.
func (w *Watchlist) Remove(movieID int64) bool {
	for i, it := range w.items {
		if it.MovieID == movieID {
			w.items = append(w.items[:i:i], w.items[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether the movie is saved.
func (w *Watchlist) Contains(movieID int64) bool {
	for _, it := range w.items {
		if it.MovieID == movieID {
			return true
		}
	}
	return false
}

// Items returns the saved movies in insertion order.
func (w *Watchlist) Items() []Item {
	return append([]Item{}, w.items...)
}

// Len returns the number of saved movies.
func (w *Watchlist) Len() int {
	return len(w.items)
}
