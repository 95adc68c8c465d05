// internal/app/store/rendercache/rendercache.go
//
// Package rendercache stores fully rendered pages in Redis. Entries are keyed
// by tenant, slug, and theme version so a theme bump or content write never
// serves a stale layout. The cache is an optimization only: every operation
// maps transport failures to models.ErrCacheUnavailable so callers can fall
// back to rendering directly.
package rendercache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/polysite/polysite/internal/app/system/themes"
	"github.com/polysite/polysite/internal/domain/models"
)

const keyPrefix = "render:"

// Entry is one cached render. FreshUntil tracks logical freshness separately
// from the Redis TTL so a grace window can serve stale bytes while a
// background refresh runs.
type Entry struct {
	TenantID     primitive.ObjectID `json:"tenant_id"`
	Slug         string             `json:"slug"`
	Theme        string             `json:"theme"`
	ThemeVersion string             `json:"theme_version"`
	RevisionID   string             `json:"revision_id"`
	HTML         string             `json:"html"`
	Meta         themes.Meta        `json:"meta"`
	RenderedAt   time.Time          `json:"rendered_at"`
	FreshUntil   time.Time          `json:"fresh_until"`
}

// Stale reports whether the entry has outlived its freshness window. A stale
// entry may still be served during the revalidation grace period.
func (e *Entry) Stale(now time.Time) bool {
	return now.After(e.FreshUntil)
}

// Key builds the cache key for a tenant page under a specific theme version.
func Key(tenantID primitive.ObjectID, slug string, theme themes.Descriptor) string {
	return keyPrefix + tenantID.Hex() + ":" + slug + ":" + theme.String()
}

// Store wraps the Redis client used for cached renders.
type Store struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// Get returns the cached entry for key, or (nil, nil) on a miss. Transport
// errors come back as models.ErrCacheUnavailable.
func (s *Store) Get(ctx context.Context, key string) (*Entry, error) {
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrCacheUnavailable, err)
	}
	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		// Treat a corrupt entry as a miss; the caller re-renders and
		// overwrites it.
		return nil, nil
	}
	return &e, nil
}

// Put stores an entry under key. ttl bounds freshness; grace extends the Redis
// expiry past FreshUntil so stale-while-revalidate reads can still find the
// entry. A zero grace stores the entry for exactly ttl.
func (s *Store) Put(ctx context.Context, key string, e *Entry, ttl, grace time.Duration) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}
	if err := s.rdb.Set(ctx, key, raw, ttl+grace).Err(); err != nil {
		return fmt.Errorf("%w: %v", models.ErrCacheUnavailable, err)
	}
	return nil
}

// Delete removes a single cached render. Deleting a key that does not exist is
// not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: %v", models.ErrCacheUnavailable, err)
	}
	return nil
}

// DeletePage removes the cached render of one tenant page across all theme
// versions. Used after content writes, where the writer does not know which
// theme versions have cached copies.
func (s *Store) DeletePage(ctx context.Context, tenantID primitive.ObjectID, slug string) error {
	return s.deleteByPattern(ctx, keyPrefix+tenantID.Hex()+":"+slug+":*")
}

// PurgeTenant removes every cached render belonging to a tenant. Used on
// tenant deactivation and by the orphan sweep job.
func (s *Store) PurgeTenant(ctx context.Context, tenantID primitive.ObjectID) error {
	return s.deleteByPattern(ctx, keyPrefix+tenantID.Hex()+":*")
}

func (s *Store) deleteByPattern(ctx context.Context, pattern string) error {
	iter := s.rdb.Scan(ctx, 0, pattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("%w: %v", models.ErrCacheUnavailable, err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("%w: %v", models.ErrCacheUnavailable, err)
	}
	return nil
}

// PurgeOrphans removes cached renders whose tenant hex id is not in keep.
// The orphan sweep job passes the set of active tenants; entries for deleted
// or deactivated tenants are swept out ahead of their TTL. Returns the number
// of keys removed.
func (s *Store) PurgeOrphans(ctx context.Context, keep map[string]bool) (int64, error) {
	iter := s.rdb.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	var orphans []string
	for iter.Next(ctx) {
		key := iter.Val()
		rest := strings.TrimPrefix(key, keyPrefix)
		tenantHex, _, ok := strings.Cut(rest, ":")
		if !ok || !keep[tenantHex] {
			orphans = append(orphans, key)
		}
	}
	if err := iter.Err(); err != nil {
		return 0, fmt.Errorf("%w: %v", models.ErrCacheUnavailable, err)
	}
	if len(orphans) == 0 {
		return 0, nil
	}
	removed, err := s.rdb.Del(ctx, orphans...).Result()
	if err != nil {
		return removed, fmt.Errorf("%w: %v", models.ErrCacheUnavailable, err)
	}
	return removed, nil
}

// Ping verifies the Redis connection. Used by the health endpoint.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", models.ErrCacheUnavailable, err)
	}
	return nil
}
