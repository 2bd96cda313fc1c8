package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/zfogg/reelmatch/internal/catalog"
	apierrors "github.com/zfogg/reelmatch/internal/errors"
	"github.com/zfogg/reelmatch/internal/logger"
	"github.com/zfogg/reelmatch/internal/metrics"
	"github.com/zfogg/reelmatch/internal/recommendations"
	"github.com/zfogg/reelmatch/internal/tags"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// MovieView is a catalog movie as returned by the API.
type MovieView struct {
	MovieID   int64    `json:"movie_id"`
	Title     string   `json:"title"`
	Overview  string   `json:"overview"`
	Tags      []string `json:"tags"`
	PosterURL *string  `json:"poster_url"`
}

// ResultView is a recommendation result as returned by the API.
type ResultView struct {
	Mode   recommendations.Mode `json:"mode"`
	Query  string               `json:"query"`
	Movies []MovieView          `json:"movies"`
	Count  int                  `json:"count"`
}

// views converts movies and, when posters is set, looks up their posters
// concurrently. A missing poster is left nil.
func (h *Handlers) views(ctx context.Context, movies []catalog.Movie, posters bool) []MovieView {
	out := make([]MovieView, len(movies))
	for i, m := range movies {
		out[i] = MovieView{
			MovieID:  m.MovieID,
			Title:    m.Title,
			Overview: m.Overview,
			Tags:     tags.Extract(m.Tags),
		}
	}
	if !posters || h.gateway == nil {
		return out
	}

	var g errgroup.Group
	g.SetLimit(enrichConcurrency)
	for i := range out {
		g.Go(func() error {
			out[i].PosterURL = optional(h.gateway.FetchPoster(ctx, out[i].MovieID))
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (h *Handlers) resultView(ctx context.Context, r recommendations.Result, posters bool) ResultView {
	return ResultView{
		Mode:   r.Mode,
		Query:  r.Query,
		Movies: h.views(ctx, r.Movies, posters),
		Count:  len(r.Movies),
	}
}

func (h *Handlers) recommend(c *gin.Context, mode recommendations.Mode, param string) {
	query := c.Query(param)
	if strings.TrimSpace(query) == "" {
		respondError(c, apierrors.InvalidParam(param, param+" is required"))
		return
	}

	st, ok := currentSession(c)
	if !ok {
		return
	}

	result, err := h.engine.Recommend(mode, query)
	if err != nil {
		respondError(c, apierrors.BadRequest(err.Error()))
		return
	}
	st.SetLast(result)
	metrics.Get().RecordRecommendation(string(mode), len(result.Movies))

	logger.Log.Debug("Recommendations served",
		logger.WithSessionID(st.ID()),
		zap.String("mode", string(mode)),
		zap.String("query", query),
		zap.Int("count", len(result.Movies)),
	)

	c.JSON(http.StatusOK, h.resultView(c.Request.Context(), result, wantPosters(c)))
}

// RecommendByTitle returns the movies most similar to a catalog title
// GET /api/v1/recommendations/by-title?title=Avatar
func (h *Handlers) RecommendByTitle(c *gin.Context) {
	h.recommend(c, recommendations.ModeTitle, "title")
}

// RecommendByGenre returns the first catalog movies carrying a genre tag
// GET /api/v1/recommendations/by-genre?genre=Action
func (h *Handlers) RecommendByGenre(c *gin.Context) {
	h.recommend(c, recommendations.ModeGenre, "genre")
}

// LastRecommendations returns the session's most recent result
// GET /api/v1/recommendations/last
func (h *Handlers) LastRecommendations(c *gin.Context) {
	st, ok := currentSession(c)
	if !ok {
		return
	}
	result, ok := st.Last()
	if !ok {
		respondError(c, apierrors.NotFound("recommendation result"))
		return
	}
	c.JSON(http.StatusOK, h.resultView(c.Request.Context(), result, wantPosters(c)))
}

// ListGenres returns the selectable genre labels
// GET /api/v1/genres
func (h *Handlers) ListGenres(c *gin.Context) {
	genres := h.engine.Genres()
	c.JSON(http.StatusOK, gin.H{
		"genres": genres,
		"count":  len(genres),
	})
}
