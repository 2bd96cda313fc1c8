package kernel

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/zfogg/reelmatch/internal/cache"
	"github.com/zfogg/reelmatch/internal/catalog"
	"github.com/zfogg/reelmatch/internal/config"
	"github.com/zfogg/reelmatch/internal/logger"
	"github.com/zfogg/reelmatch/internal/metrics"
	"github.com/zfogg/reelmatch/internal/middleware"
	"github.com/zfogg/reelmatch/internal/session"
	"github.com/zfogg/reelmatch/internal/telemetry"
	"github.com/zfogg/reelmatch/internal/tmdb"
	"go.uber.org/zap"
)

const (
	redisKeyPrefix = "reelmatch:"
	sweepInterval  = time.Minute
)

// Bootstrap loads the catalog and wires every service from cfg. A Redis
// cache that cannot be reached falls back to the in-process store. Without
// a TMDB API key the gateway is left nil and every lookup reports absent.
func Bootstrap(cfg *config.Config) (*Kernel, error) {
	k := New()

	src := catalog.Source{Path: cfg.Catalog.Path, DSN: cfg.Catalog.DSN}
	c, err := catalog.Load(src)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog from %s: %w", src, err)
	}
	k.SetCatalog(c)
	metrics.Get().CatalogMovies.Set(float64(c.Len()))
	logger.Log.Info("Catalog loaded",
		zap.String("source", src.String()),
		zap.Int("movies", c.Len()),
		zap.Int("genres", len(c.Vocabulary())),
	)

	store := newCacheStore(cfg.Cache)
	k.SetCacheStore(store)
	k.OnCleanup(func(context.Context) error { return store.Close() })

	if cfg.TMDB.APIKey == "" {
		logger.Log.Warn("TMDB API key not set, posters and details are disabled")
	} else {
		tcfg := tmdb.Config{
			APIKey:       cfg.TMDB.APIKey,
			BaseURL:      cfg.TMDB.BaseURL,
			ImageBaseURL: cfg.TMDB.ImageBaseURL,
			Timeout:      cfg.TMDB.Timeout,
			// retries counts total attempts, the first one included
			Attempts:   cfg.TMDB.Retries,
			RetryDelay: cfg.TMDB.RetryDelay,
		}
		if cfg.Telemetry.Enabled {
			tcfg.Transport = telemetry.Transport(http.DefaultTransport)
		}
		k.SetGateway(tmdb.NewCachedGateway(tmdb.NewClient(tcfg), store))
	}

	k.SetSessions(session.NewStore(cfg.Session.IdleTimeout))
	k.SetRateLimiter(middleware.NewRateLimiter(middleware.RateLimitConfig{
		Limit:  cfg.RateLimit.Limit,
		Window: cfg.RateLimit.Window,
	}))

	if err := k.Validate(); err != nil {
		return nil, err
	}
	return k, nil
}

func newCacheStore(cfg config.CacheConfig) cache.Store {
	if cfg.RedisURL == "" {
		return cache.NewMemoryStore()
	}
	rs, err := cache.NewRedisStore(cfg.RedisURL, redisKeyPrefix, cfg.TTL)
	if err != nil {
		logger.WarnWithFields("Redis unavailable, using in-memory TMDB cache", err)
		return cache.NewMemoryStore()
	}
	return rs
}

// RunBackground starts the session sweeper and the rate limiter's idle
// bucket eviction. Both stop when ctx is done.
func (k *Kernel) RunBackground(ctx context.Context) {
	if s := k.Sessions(); s != nil {
		go s.Run(ctx, sweepInterval)
	}
	if rl := k.RateLimiter(); rl != nil {
		go rl.Run(ctx)
	}
}
