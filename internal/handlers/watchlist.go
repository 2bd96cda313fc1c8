package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/zfogg/reelmatch/internal/errors"
	"github.com/zfogg/reelmatch/internal/logger"
	"github.com/zfogg/reelmatch/internal/metrics"
	"github.com/zfogg/reelmatch/internal/session"
	"golang.org/x/sync/errgroup"
)

// AddToWatchlistRequest is the body of POST /api/v1/watchlist.
type AddToWatchlistRequest struct {
	MovieID int64 `json:"movie_id" binding:"required,gt=0"`
}

func watchlistResponse(items []session.Item) gin.H {
	return gin.H{
		"items": items,
		"count": len(items),
	}
}

// GetWatchlist returns the session's saved movies in insertion order
// GET /api/v1/watchlist
func (h *Handlers) GetWatchlist(c *gin.Context) {
	st, ok := currentSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, watchlistResponse(st.Watchlist()))
}

// AddToWatchlist saves a catalog movie with its TMDB title and poster.
// Adding a movie twice leaves the list unchanged.
// POST /api/v1/watchlist
func (h *Handlers) AddToWatchlist(c *gin.Context) {
	var req AddToWatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apierrors.InvalidParam("movie_id", "movie_id must be a positive integer"))
		return
	}
	movie, found := h.engine.Movie(req.MovieID)
	if !found {
		respondError(c, apierrors.NotFound("movie"))
		return
	}
	st, ok := currentSession(c)
	if !ok {
		return
	}

	item := session.Item{MovieID: movie.MovieID, Title: movie.Title}
	if !st.InWatchlist(movie.MovieID) && h.gateway != nil {
		ctx := c.Request.Context()
		var g errgroup.Group
		g.Go(func() error {
			if d, ok := h.gateway.FetchDetails(ctx, movie.MovieID); ok && d.Title != "" {
				item.Title = d.Title
			}
			return nil
		})
		g.Go(func() error {
			if p, ok := h.gateway.FetchPoster(ctx, movie.MovieID); ok {
				item.PosterURL = p
			}
			return nil
		})
		_ = g.Wait()
	}

	added := st.AddToWatchlist(item)
	action := "duplicate"
	status := http.StatusOK
	if added {
		action = "add"
		status = http.StatusCreated
	}
	metrics.Get().WatchlistEvents.WithLabelValues(action).Inc()
	logger.Log.Debug("Watchlist add",
		logger.WithSessionID(st.ID()),
		logger.WithMovieID(movie.MovieID),
	)

	resp := watchlistResponse(st.Watchlist())
	resp["added"] = added
	c.JSON(status, resp)
}

// RemoveFromWatchlist drops a saved movie; removing an unsaved movie is
// not an error
// DELETE /api/v1/watchlist/:id
func (h *Handlers) RemoveFromWatchlist(c *gin.Context) {
	id, ok := parseMovieID(c, "id")
	if !ok {
		return
	}
	st, ok := currentSession(c)
	if !ok {
		return
	}

	removed := st.RemoveFromWatchlist(id)
	if removed {
		metrics.Get().WatchlistEvents.WithLabelValues("remove").Inc()
	}

	resp := watchlistResponse(st.Watchlist())
	resp["removed"] = removed
	c.JSON(http.StatusOK, resp)
}

// EndSession discards the caller's session state
// DELETE /api/v1/session
func (h *Handlers) EndSession(c *gin.Context) {
	st, ok := currentSession(c)
	if !ok {
		return
	}
	h.sessions.Delete(st.ID())
	c.JSON(http.StatusOK, gin.H{"ended": true})
}
