package tmdb

import (
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/zfogg/reelmatch/internal/cache"
	"github.com/zfogg/reelmatch/internal/logger"
	"github.com/zfogg/reelmatch/internal/metrics"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// CacheName labels the memo cache in metrics.
const CacheName = "tmdb"

// entry is what the memo store holds. Absent lookups are stored too.
type entry[T any] struct {
	Found bool `json:"found"`
	Value T    `json:"value,omitempty"`
}

// CachedGateway memoizes another Gateway by operation and movie id.
// Concurrent lookups of the same key share one upstream call.
type CachedGateway struct {
	next  Gateway
	store cache.Store
	group singleflight.Group
}

var _ Gateway = (*CachedGateway)(nil)

// NewCachedGateway wraps next. A nil store means an in-memory store.
func NewCachedGateway(next Gateway, store cache.Store) *CachedGateway {
	if store == nil {
		store = cache.NewMemoryStore()
	}
	return &CachedGateway{next: next, store: store}
}

func cacheKey(op string, movieID int64) string {
	return fmt.Sprintf("tmdb:%s:%d", op, movieID)
}

func memoize[T any](ctx context.Context, g *CachedGateway, op string, movieID int64, fetch func(context.Context) (T, bool)) (T, bool) {
	key := cacheKey(op, movieID)
	m := metrics.Get()

	if data, ok, err := g.store.Get(ctx, key); err != nil {
		logger.Log.Warn("Memo cache read failed", zap.String("key", key), zap.Error(err))
	} else if ok {
		var e entry[T]
		if err := json.Unmarshal(data, &e); err == nil {
			m.RecordCache(CacheName, true)
			return e.Value, e.Found
		}
		logger.Log.Warn("Discarding undecodable memo entry", zap.String("key", key))
	}
	m.RecordCache(CacheName, false)

	v, _, _ := g.group.Do(key, func() (interface{}, error) {
		value, found := fetch(ctx)
		e := entry[T]{Found: found, Value: value}

		// A cancelled caller says nothing about TMDB; don't pin its absence.
		if !found && ctx.Err() != nil {
			return e, nil
		}

		data, err := json.Marshal(e)
		if err == nil {
			err = g.store.Set(context.WithoutCancel(ctx), key, data)
		}
		if err != nil {
			logger.Log.Warn("Memo cache write failed", zap.String("key", key), zap.Error(err))
		}
		return e, nil
	})

	e := v.(entry[T])
	return e.Value, e.Found
}

func (g *CachedGateway) FetchPoster(ctx context.Context, movieID int64) (string, bool) {
	return memoize(ctx, g, OpPoster, movieID, func(ctx context.Context) (string, bool) {
		return g.next.FetchPoster(ctx, movieID)
	})
}

func (g *CachedGateway) FetchDetails(ctx context.Context, movieID int64) (Details, bool) {
	return memoize(ctx, g, OpDetails, movieID, func(ctx context.Context) (Details, bool) {
		return g.next.FetchDetails(ctx, movieID)
	})
}

func (g *CachedGateway) FetchTrailer(ctx context.Context, movieID int64) (string, bool) {
	return memoize(ctx, g, OpTrailer, movieID, func(ctx context.Context) (string, bool) {
		return g.next.FetchTrailer(ctx, movieID)
	})
}

// Close releases the underlying store.
func (g *CachedGateway) Close() error {
	return g.store.Close()
}
