package middleware

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracing returns the otelgin server middleware followed by one that tags
// the request span with the session, the recommendation query, and any
// handler errors. Register both with router.Use(Tracing(name)...).
func Tracing(serviceName string) gin.HandlersChain {
	return gin.HandlersChain{otelgin.Middleware(serviceName), spanAttributes()}
}

// spanAttributes must run inside otelgin so the span is still open when
// the handlers return.
func spanAttributes() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}

		if st := GetSession(c); st != nil {
			span.SetAttributes(attribute.String("session.id", st.ID()))
		}
		if id := GetRequestID(c); id != "" {
			span.SetAttributes(attribute.String("request.id", id))
		}
		if title := c.Query("title"); title != "" {
			span.SetAttributes(attribute.String("recommendation.title", title))
		}
		if genre := c.Query("genre"); genre != "" {
			span.SetAttributes(attribute.String("recommendation.genre", genre))
		}
		if id := c.Param("id"); id != "" {
			span.SetAttributes(attribute.String("movie.id", id))
		}
		for _, ginErr := range c.Errors {
			if ginErr.Err != nil {
				span.RecordError(ginErr.Err)
				span.SetStatus(codes.Error, ginErr.Error())
			}
		}
	}
}
