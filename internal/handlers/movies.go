package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/zfogg/reelmatch/internal/errors"
	"github.com/zfogg/reelmatch/internal/tags"
	"github.com/zfogg/reelmatch/internal/tmdb"
	"golang.org/x/sync/errgroup"
)

// MovieSummary is one entry of the title selector.
type MovieSummary struct {
	MovieID int64  `json:"movie_id"`
	Title   string `json:"title"`
}

// MovieDetail is the detail view of one movie. Pieces TMDB could not
// supply are null with their *_available flag false.
type MovieDetail struct {
	MovieID          int64         `json:"movie_id"`
	Title            string        `json:"title"`
	Overview         string        `json:"overview"`
	Tags             []string      `json:"tags"`
	Details          *tmdb.Details `json:"details"`
	DetailsAvailable bool          `json:"details_available"`
	PosterURL        *string       `json:"poster_url"`
	PosterAvailable  bool          `json:"poster_available"`
	TrailerURL       *string       `json:"trailer_url"`
	EmbedURL         *string       `json:"embed_url"`
	TrailerAvailable bool          `json:"trailer_available"`
	Links            []tmdb.Link   `json:"links"`
	InWatchlist      bool          `json:"in_watchlist"`
}

// ListMovies returns every catalog title in catalog order
// GET /api/v1/movies
func (h *Handlers) ListMovies(c *gin.Context) {
	movies := h.engine.Catalog().Movies()
	out := make([]MovieSummary, len(movies))
	for i, m := range movies {
		out[i] = MovieSummary{MovieID: m.MovieID, Title: m.Title}
	}
	c.JSON(http.StatusOK, gin.H{
		"movies": out,
		"count":  len(out),
	})
}

// GetMovie returns the detail view and marks the movie as the session's
// open selection
// GET /api/v1/movies/:id
func (h *Handlers) GetMovie(c *gin.Context) {
	id, ok := parseMovieID(c, "id")
	if !ok {
		return
	}
	movie, found := h.engine.Movie(id)
	if !found {
		respondError(c, apierrors.NotFound("movie"))
		return
	}
	st, ok := currentSession(c)
	if !ok {
		return
	}

	view := MovieDetail{
		MovieID:     movie.MovieID,
		Title:       movie.Title,
		Overview:    movie.Overview,
		Tags:        tags.Extract(movie.Tags),
		Links:       tmdb.DirectLinks(movie.MovieID, movie.Title),
		InWatchlist: st.InWatchlist(movie.MovieID),
	}

	if h.gateway != nil {
		ctx := c.Request.Context()
		var (
			details tmdb.Details
			poster  string
			trailer string
			g       errgroup.Group
		)
		g.Go(func() error {
			details, view.DetailsAvailable = h.gateway.FetchDetails(ctx, id)
			return nil
		})
		g.Go(func() error {
			poster, view.PosterAvailable = h.gateway.FetchPoster(ctx, id)
			return nil
		})
		g.Go(func() error {
			trailer, view.TrailerAvailable = h.gateway.FetchTrailer(ctx, id)
			return nil
		})
		_ = g.Wait()

		if view.DetailsAvailable {
			view.Details = &details
		}
		view.PosterURL = optional(poster, view.PosterAvailable)
		view.TrailerURL = optional(trailer, view.TrailerAvailable)
		if view.TrailerAvailable {
			view.EmbedURL = optional(tmdb.EmbedURL(trailer))
		}
	}

	st.Select(movie.MovieID)
	c.JSON(http.StatusOK, view)
}
