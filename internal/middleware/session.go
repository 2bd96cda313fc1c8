package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zfogg/reelmatch/internal/session"
)

const (
	SessionHeader = "X-Session-ID"
	SessionCookie = "reelmatch_session"
	sessionKey    = "session"
)

// SessionConfig controls the session cookie.
type SessionConfig struct {
	CookieMaxAge time.Duration
	Secure       bool
}

// Session attaches the caller's session state, creating one when the
// X-Session-ID header and reelmatch_session cookie name no live session.
// The id is echoed in both the header and the cookie.
func Session(store *session.Store, cfg SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(SessionHeader)
		if id == "" {
			id, _ = c.Cookie(SessionCookie)
		}

		st, _ := store.GetOrCreate(id)
		c.Set(sessionKey, st)
		c.Header(SessionHeader, st.ID())
		http.SetCookie(c.Writer, &http.Cookie{
			Name:     SessionCookie,
			Value:    st.ID(),
			Path:     "/",
			MaxAge:   int(cfg.CookieMaxAge.Seconds()),
			HttpOnly: true,
			Secure:   cfg.Secure,
			SameSite: http.SameSiteLaxMode,
		})
		c.Next()
	}
}

// GetSession returns the state attached by Session, or nil.
func GetSession(c *gin.Context) *session.State {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	st, _ := v.(*session.State)
	return st
}
