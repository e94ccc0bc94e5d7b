package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"pipeline-console/internal/common/logging"
	"pipeline-console/internal/plugins"
	"pipeline-console/internal/stages"
)

// Cache holds catalog snapshots in Redis. It is optional: every failure
// falls through to the wrapped provider, so a dead Redis only costs the
// caching.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// CacheConfig configures the Redis connection for the catalog cache.
type CacheConfig struct {
	Address  string
	Password string
	DB       int
}

// NewCache connects to Redis and returns a catalog cache. The connection
// is verified up front so a misconfigured address fails at startup rather
// than on the first request.
func NewCache(cfg CacheConfig, ttl time.Duration) (*Cache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Cache{rdb: rdb, ttl: ttl}, nil
}

// Close releases the Redis connection.
func (c *Cache) Close() error {
	return c.rdb.Close()
}

func cacheKey(stage stages.Stage) string {
	return "catalog:" + string(stage)
}

// CachedProvider serves catalog snapshots from the cache, falling back to
// the inner provider and repopulating on miss.
type CachedProvider struct {
	inner  Provider
	cache  *Cache
	stage  stages.Stage
	logger logging.Logger
}

// NewCachedProvider wraps inner with the cache for one stage.
func NewCachedProvider(inner Provider, cache *Cache, stage stages.Stage) *CachedProvider {
	return &CachedProvider{
		inner:  inner,
		cache:  cache,
		stage:  stage,
		logger: logging.WithFields(logging.Field{Key: "component", Value: "catalog_cache"}),
	}
}

// Entries returns the cached snapshot when fresh, otherwise reads the
// inner provider and stores the result. Loading snapshots are never
// cached.
func (p *CachedProvider) Entries(ctx context.Context) (Snapshot, error) {
	key := cacheKey(p.stage)

	data, err := p.cache.rdb.Get(ctx, key).Result()
	if err == nil {
		var entries map[int]plugins.Plugin
		if err := json.Unmarshal([]byte(data), &entries); err == nil {
			return Snapshot{Entries: entries}, nil
		}
		p.logger.Warn("discarding undecodable catalog snapshot",
			logging.Field{Key: "stage", Value: string(p.stage)})
	} else if err != redis.Nil {
		p.logger.Warn("catalog cache read failed, serving direct",
			logging.Field{Key: "stage", Value: string(p.stage)},
			logging.Err(err))
	}

	snapshot, err := p.inner.Entries(ctx)
	if err != nil || snapshot.Loading {
		return snapshot, err
	}

	if encoded, err := json.Marshal(snapshot.Entries); err == nil {
		if err := p.cache.rdb.Set(ctx, key, encoded, p.cache.ttl).Err(); err != nil {
			p.logger.Warn("catalog cache write failed",
				logging.Field{Key: "stage", Value: string(p.stage)},
				logging.Err(err))
		}
	}
	return snapshot, nil
}

// Invalidate drops a stage's cached snapshot, forcing the next read
// through to the store.
func (c *Cache) Invalidate(ctx context.Context, stage stages.Stage) error {
	return c.rdb.Del(ctx, cacheKey(stage)).Err()
}
