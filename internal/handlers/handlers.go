// Package handlers implements the JSON API on top of the recommendation
// engine, the TMDB gateway, and per-session state.
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/zfogg/reelmatch/internal/recommendations"
	"github.com/zfogg/reelmatch/internal/session"
	"github.com/zfogg/reelmatch/internal/tmdb"
)

// enrichConcurrency bounds parallel TMDB lookups within one request.
const enrichConcurrency = 4

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	engine   *recommendations.Engine
	gateway  tmdb.Gateway
	sessions *session.Store
}

// NewHandlers creates a new handlers instance
func NewHandlers(engine *recommendations.Engine, gateway tmdb.Gateway, sessions *session.Store) *Handlers {
	return &Handlers{
		engine:   engine,
		gateway:  gateway,
		sessions: sessions,
	}
}

// Register mounts the API routes under api (normally /api/v1).
func (h *Handlers) Register(api *gin.RouterGroup) {
	api.GET("/movies", h.ListMovies)
	api.GET("/movies/:id", h.GetMovie)
	api.GET("/genres", h.ListGenres)

	recs := api.Group("/recommendations")
	recs.GET("/by-title", h.RecommendByTitle)
	recs.GET("/by-genre", h.RecommendByGenre)
	recs.GET("/last", h.LastRecommendations)

	watchlist := api.Group("/watchlist")
	watchlist.GET("", h.GetWatchlist)
	watchlist.POST("", h.AddToWatchlist)
	watchlist.DELETE("/:id", h.RemoveFromWatchlist)

	api.DELETE("/session", h.EndSession)
}
