package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/zfogg/reelmatch/internal/errors"
	"github.com/zfogg/reelmatch/internal/metrics"
	"github.com/zfogg/reelmatch/internal/middleware"
	"github.com/zfogg/reelmatch/internal/session"
)

// respondError aborts with the error's status and a {"error": {...}} body.
func respondError(c *gin.Context, err *apierrors.APIError) {
	metrics.Get().ErrorsTotal.WithLabelValues(string(err.Code), c.FullPath()).Inc()
	_ = c.Error(err)
	c.AbortWithStatusJSON(err.Status, gin.H{"error": err})
}

// parseMovieID reads a positive integer path parameter.
func parseMovieID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, apierrors.InvalidParam(name, "must be a positive integer"))
		return 0, false
	}
	return id, true
}

// currentSession returns the request's session or aborts with 500 when the
// session middleware is missing.
func currentSession(c *gin.Context) (*session.State, bool) {
	st := middleware.GetSession(c)
	if st == nil {
		respondError(c, apierrors.InternalError("session unavailable"))
		return nil, false
	}
	return st, true
}

// wantPosters reads the posters query flag; enrichment is on by default.
func wantPosters(c *gin.Context) bool {
	v, err := strconv.ParseBool(c.DefaultQuery("posters", "true"))
	return err != nil || v
}

func optional(s string, ok bool) *string {
	if !ok {
		return nil
	}
	return &s
}
