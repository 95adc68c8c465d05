// internal/app/system/renderer/renderer.go
//
// Package renderer produces the final HTML for a tenant page. It sits between
// the stores and the HTTP features: resolve theme, check the render cache,
// and on a miss run content lookup, payload adaptation, and template
// execution under a deadline, then write the result back.
package renderer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/polysite/polysite/internal/app/store/rendercache"
	"github.com/polysite/polysite/internal/app/system/themes"
	"github.com/polysite/polysite/internal/app/system/timeouts"
	"github.com/polysite/polysite/internal/domain/models"
)

// ContentSource is the slice of the content store the renderer needs.
type ContentSource interface {
	GetBySlug(ctx context.Context, tenantID primitive.ObjectID, slug string) (models.ContentItem, error)
	GetBySlugAnyStatus(ctx context.Context, tenantID primitive.ObjectID, slug string) (models.ContentItem, error)
}

// Config bounds render work and cache freshness.
type Config struct {
	// Timeout caps one render pass. Exceeding it returns
	// models.ErrRenderTimeout and writes nothing to the cache.
	Timeout time.Duration

	// TTLs holds the cache freshness window per vertical. Verticals with
	// fast-changing content get short windows.
	TTLs map[models.Vertical]time.Duration

	// StaleGrace, when positive, enables stale-while-revalidate: an
	// expired entry is served for up to this long past its freshness
	// window while a background re-render replaces it.
	StaleGrace time.Duration
}

// DefaultTTL applies when a vertical has no configured window.
const DefaultTTL = 5 * time.Minute

func (c Config) ttlFor(v models.Vertical) time.Duration {
	if ttl, ok := c.TTLs[v]; ok && ttl > 0 {
		return ttl
	}
	return DefaultTTL
}

// DefaultTTLs returns the stock per-vertical freshness windows.
func DefaultTTLs() map[models.Vertical]time.Duration {
	return map[models.Vertical]time.Duration{
		models.VerticalShop:       5 * time.Minute,
		models.VerticalTravel:     15 * time.Minute,
		models.VerticalRestaurant: 2 * time.Minute,
		models.VerticalCorporate:  time.Hour,
	}
}

// Options adjusts one Render call.
type Options struct {
	// IncludeDrafts renders draft and archived content and bypasses the
	// cache entirely. Set for authenticated preview requests.
	IncludeDrafts bool
}

// Renderer renders tenant pages with read-through caching.
type Renderer struct {
	content ContentSource
	themes  *themes.Registry
	cache   *rendercache.Store
	cfg     Config
	logger  *zap.Logger

	group singleflight.Group
}

func New(content ContentSource, registry *themes.Registry, cache *rendercache.Store, cfg Config, logger *zap.Logger) *Renderer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = timeouts.Render()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{
		content: content,
		themes:  registry,
		cache:   cache,
		cfg:     cfg,
		logger:  logger,
	}
}

// Render returns the HTML entry for one tenant page.
//
// The fast path is a fresh cache hit. On a miss, concurrent requests for the
// same key collapse into a single render. When the cache is unreachable the
// page is rendered directly and the result is not stored, so an outage slows
// requests down instead of failing them.
func (r *Renderer) Render(ctx context.Context, tenant models.Tenant, slug string, opts Options) (*rendercache.Entry, error) {
	desc, err := r.themes.SelectTheme(tenant)
	if err != nil {
		return nil, err
	}

	if opts.IncludeDrafts {
		// Preview renders are per-request and never cached.
		return r.renderOnce(ctx, tenant, slug, desc, true)
	}

	key := rendercache.Key(tenant.ID, slug, desc)

	cached, err := r.cache.Get(ctx, key)
	switch {
	case errors.Is(err, models.ErrCacheUnavailable):
		r.logger.Warn("render cache unavailable, rendering through",
			zap.String("tenant", tenant.Slug),
			zap.String("slug", slug),
			zap.Error(err))
		return r.renderOnce(ctx, tenant, slug, desc, false)
	case err != nil:
		return nil, err
	case cached != nil && !cached.Stale(time.Now().UTC()):
		return cached, nil
	case cached != nil && r.cfg.StaleGrace > 0:
		// Serve the stale copy now and refresh off the request path.
		r.refreshAsync(tenant, slug, desc, key)
		return cached, nil
	}

	return r.renderAndStore(ctx, tenant, slug, desc, key)
}

// renderAndStore runs the miss path under singleflight so one render feeds
// every concurrent waiter for the same key. The shared render is detached
// from the leader's request context; it is bounded only by the render
// timeout, so one waiter disconnecting cannot cancel the others' result.
func (r *Renderer) renderAndStore(ctx context.Context, tenant models.Tenant, slug string, desc themes.Descriptor, key string) (*rendercache.Entry, error) {
	v, err, _ := r.group.Do(key, func() (any, error) {
		ctx := context.WithoutCancel(ctx)
		entry, err := r.renderOnce(ctx, tenant, slug, desc, false)
		if err != nil {
			return nil, err
		}
		ttl := r.cfg.ttlFor(tenant.Vertical)
		if err := r.cache.Put(ctx, key, entry, ttl, r.cfg.StaleGrace); err != nil {
			// A failed write only costs the next request a render.
			r.logger.Warn("render cache write failed",
				zap.String("key", key),
				zap.Error(err))
		}
		return entry, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*rendercache.Entry), nil
}

// renderOnce performs content lookup, adaptation, and template execution
// under the render deadline.
func (r *Renderer) renderOnce(ctx context.Context, tenant models.Tenant, slug string, desc themes.Descriptor, includeDrafts bool) (*rendercache.Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	var (
		item models.ContentItem
		err  error
	)
	if includeDrafts {
		item, err = r.content.GetBySlugAnyStatus(ctx, tenant.ID, slug)
	} else {
		item, err = r.content.GetBySlug(ctx, tenant.ID, slug)
	}
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("%w: tenant %q slug %q", models.ErrRenderTimeout, tenant.Slug, slug)
		}
		return nil, err
	}

	vm, err := r.themes.Adapt(item, tenant)
	if err != nil {
		return nil, err
	}
	html, err := r.themes.Render(desc, vm)
	if err != nil {
		return nil, err
	}
	if ctx.Err() == context.DeadlineExceeded {
		return nil, fmt.Errorf("%w: tenant %q slug %q", models.ErrRenderTimeout, tenant.Slug, slug)
	}

	now := time.Now().UTC()
	return &rendercache.Entry{
		TenantID:     tenant.ID,
		Slug:         item.Slug,
		Theme:        desc.Name,
		ThemeVersion: desc.Version,
		RevisionID:   item.RevisionID,
		HTML:         html,
		Meta:         vm.Meta,
		RenderedAt:   now,
		FreshUntil:   now.Add(r.cfg.ttlFor(tenant.Vertical)),
	}, nil
}

// refreshAsync re-renders a stale entry in the background. Errors are logged
// and dropped; the stale entry keeps serving until the grace window ends.
func (r *Renderer) refreshAsync(tenant models.Tenant, slug string, desc themes.Descriptor, key string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.cfg.Timeout+time.Second)
		defer cancel()
		if _, err := r.renderAndStore(ctx, tenant, slug, desc, key); err != nil {
			r.logger.Warn("background revalidation failed",
				zap.String("key", key),
				zap.Error(err))
		}
	}()
}

// Invalidate removes the cached render for one tenant page across theme
// versions. Content writes call this before the TTL would catch up.
func (r *Renderer) Invalidate(ctx context.Context, tenantID primitive.ObjectID, slug string) error {
	return r.cache.DeletePage(ctx, tenantID, slug)
}

// PurgeTenant removes every cached page for a tenant.
func (r *Renderer) PurgeTenant(ctx context.Context, tenantID primitive.ObjectID) error {
	return r.cache.PurgeTenant(ctx, tenantID)
}
