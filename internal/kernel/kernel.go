// Package kernel holds the long-lived dependencies shared by the server and
// the CLI and manages their shutdown.
package kernel

import (
	"context"
	"errors"
	"sync"

	"github.com/zfogg/reelmatch/internal/cache"
	"github.com/zfogg/reelmatch/internal/catalog"
	"github.com/zfogg/reelmatch/internal/logger"
	"github.com/zfogg/reelmatch/internal/middleware"
	"github.com/zfogg/reelmatch/internal/recommendations"
	"github.com/zfogg/reelmatch/internal/session"
	"github.com/zfogg/reelmatch/internal/tmdb"
	"go.uber.org/zap"
)

// Kernel holds all application dependencies and provides type-safe access.
type Kernel struct {
	catalog  *catalog.Catalog
	engine   *recommendations.Engine
	gateway  tmdb.Gateway
	store    cache.Store
	sessions *session.Store
	limiter  *middleware.RateLimiter

	cleanupFuncs []func(context.Context) error
	mu           sync.RWMutex
}

// New creates an empty kernel. Register services with the Set* methods or
// build a complete one with Bootstrap.
func New() *Kernel {
	return &Kernel{}
}

// SetCatalog registers the catalog and an engine over it.
func (k *Kernel) SetCatalog(c *catalog.Catalog) *Kernel {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.catalog = c
	k.engine = recommendations.NewEngine(c)
	return k
}

func (k *Kernel) Catalog() *catalog.Catalog {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.catalog
}

func (k *Kernel) Engine() *recommendations.Engine {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.engine
}

// SetGateway registers the TMDB gateway. A nil gateway disables lookups.
func (k *Kernel) SetGateway(g tmdb.Gateway) *Kernel {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.gateway = g
	return k
}

// Gateway returns the TMDB gateway, or nil when no API key is configured.
func (k *Kernel) Gateway() tmdb.Gateway {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.gateway
}

func (k *Kernel) SetCacheStore(s cache.Store) *Kernel {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.store = s
	return k
}

func (k *Kernel) CacheStore() cache.Store {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.store
}

func (k *Kernel) SetSessions(s *session.Store) *Kernel {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.sessions = s
	return k
}

func (k *Kernel) Sessions() *session.Store {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.sessions
}

func (k *Kernel) SetRateLimiter(rl *middleware.RateLimiter) *Kernel {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.limiter = rl
	return k
}

func (k *Kernel) RateLimiter() *middleware.RateLimiter {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.limiter
}

// OnCleanup registers a function to run at shutdown. Functions run in LIFO
// order.
func (k *Kernel) OnCleanup(fn func(context.Context) error) *Kernel {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.cleanupFuncs = append(k.cleanupFuncs, fn)
	return k
}

// Cleanup runs every registered cleanup function, newest first, and returns
// their joined errors. A failing function does not stop the rest.
func (k *Kernel) Cleanup(ctx context.Context) error {
	k.mu.Lock()
	funcs := k.cleanupFuncs
	k.cleanupFuncs = nil
	k.mu.Unlock()

	var errs []error
	for i := len(funcs) - 1; i >= 0; i-- {
		if err := funcs[i](ctx); err != nil {
			logger.Log.Error("Cleanup function failed",
				zap.Int("index", i),
				zap.Error(err),
			)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Validate checks that the required dependencies are registered. The TMDB
// gateway and cache store are optional.
func (k *Kernel) Validate() error {
	k.mu.RLock()
	defer k.mu.RUnlock()

	var missing []string
	if k.catalog == nil {
		missing = append(missing, "catalog")
	}
	if k.sessions == nil {
		missing = append(missing, "session store")
	}
	if k.limiter == nil {
		missing = append(missing, "rate limiter")
	}

	if len(missing) > 0 {
		return NewInitializationError("Missing required dependencies", missing)
	}
	return nil
}
