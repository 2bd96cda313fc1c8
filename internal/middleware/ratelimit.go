package middleware

import (
	"context"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	apierrors "github.com/zfogg/reelmatch/internal/errors"
	"github.com/zfogg/reelmatch/internal/logger"
	"github.com/zfogg/reelmatch/internal/metrics"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimitConfig allows Limit requests per Window per client IP, with
// bursts up to Limit.
type RateLimitConfig struct {
	Limit  int
	Window time.Duration
}

// DefaultRateLimitConfig returns 120 requests per minute.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{Limit: 120, Window: time.Minute}
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	config   RateLimitConfig
	mu       sync.Mutex
	visitors map[string]*visitor
}

// NewRateLimiter builds a limiter; call Run to evict idle buckets.
func NewRateLimiter(config RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		config:   config,
		visitors: make(map[string]*visitor),
	}
}

func (rl *RateLimiter) limiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[ip]
	if !ok {
		lim := rate.NewLimiter(rate.Inf, 0)
		if rl.config.Limit > 0 {
			every := rate.Every(rl.config.Window / time.Duration(rl.config.Limit))
			lim = rate.NewLimiter(every, rl.config.Limit)
		}
		v = &visitor{limiter: lim}
		rl.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

// Allow consumes one token for ip.
func (rl *RateLimiter) Allow(ip string) bool {
	return rl.limiter(ip).Allow()
}

// retryAfter returns whole seconds until ip gets its next token.
func (rl *RateLimiter) retryAfter(ip string) int {
	r := rl.limiter(ip).Reserve()
	delay := r.Delay()
	r.Cancel()
	return int(math.Ceil(delay.Seconds()))
}

// Cleanup drops buckets idle for longer than maxIdle.
func (rl *RateLimiter) Cleanup(maxIdle time.Duration) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	removed := 0
	cutoff := time.Now().Add(-maxIdle)
	for ip, v := range rl.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(rl.visitors, ip)
			removed++
		}
	}
	return removed
}

// Run cleans up idle buckets every window until ctx is done.
func (rl *RateLimiter) Run(ctx context.Context) {
	if rl.config.Window <= 0 {
		return
	}
	ticker := time.NewTicker(rl.config.Window)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.Cleanup(3 * rl.config.Window)
		}
	}
}

// Handler rejects requests over the limit with 429 and a Retry-After header.
// A non-positive Limit disables limiting.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	limit := strconv.Itoa(rl.config.Limit)

	return func(c *gin.Context) {
		if rl.config.Limit <= 0 {
			c.Next()
			return
		}

		ip := c.ClientIP()
		if rl.Allow(ip) {
			c.Next()
			return
		}

		retryAfter := rl.retryAfter(ip)
		metrics.Get().RateLimitExceededTotal.WithLabelValues(c.FullPath(), c.Request.Method).Inc()
		logger.Log.Warn("Rate limit exceeded",
			logger.WithIP(ip),
			zap.String("path", c.Request.URL.Path),
			zap.Int("retry_after", retryAfter),
		)

		c.Header("Retry-After", strconv.Itoa(retryAfter))
		c.Header("X-RateLimit-Limit", limit)
		c.Header("X-RateLimit-Remaining", "0")
		apiErr := apierrors.RateLimited("")
		c.AbortWithStatusJSON(apiErr.Status, gin.H{"error": apiErr})
	}
}
