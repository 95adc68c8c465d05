// internal/app/system/resolver/resolver.go
//
// Package resolver maps an incoming request to a tenant. The host header is
// checked first; a path-based tenant slug is the fallback for local
// development and shared staging hosts. Positive host lookups are cached in
// memory because every request on the public surface pays this lookup.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/polysite/polysite/internal/app/system/normalize"
	"github.com/polysite/polysite/internal/domain/models"
)

// TenantSource is the slice of the tenant store the resolver needs.
type TenantSource interface {
	GetByHost(ctx context.Context, host string) (models.Tenant, error)
	GetBySlug(ctx context.Context, slug string) (models.Tenant, error)
}

// Resolver resolves hosts and tenant slugs to active tenants.
type Resolver struct {
	tenants TenantSource

	mu     sync.RWMutex
	byHost map[string]models.Tenant
}

func New(tenants TenantSource) *Resolver {
	return &Resolver{
		tenants: tenants,
		byHost:  make(map[string]models.Tenant),
	}
}

// Resolve finds the tenant for a request. host is tried first; when it
// matches no tenant and tenantSlug is non-empty, the slug is tried. Inactive
// tenants resolve to models.ErrTenantNotFound on both paths, so a deactivated
// site disappears rather than erroring differently per route.
func (r *Resolver) Resolve(ctx context.Context, host, tenantSlug string) (models.Tenant, error) {
	host = normalize.Host(host)

	if host != "" {
		r.mu.RLock()
		cached, ok := r.byHost[host]
		r.mu.RUnlock()
		if ok {
			return cached, nil
		}

		tenant, err := r.tenants.GetByHost(ctx, host)
		switch {
		case err == nil:
			if !tenant.Active {
				return models.Tenant{}, fmt.Errorf("%w: host %q is deactivated", models.ErrTenantNotFound, host)
			}
			r.mu.Lock()
			r.byHost[host] = tenant
			r.mu.Unlock()
			return tenant, nil
		case !errors.Is(err, models.ErrTenantNotFound):
			return models.Tenant{}, err
		}
	}

	if tenantSlug != "" {
		tenant, err := r.tenants.GetBySlug(ctx, tenantSlug)
		if err != nil {
			return models.Tenant{}, err
		}
		if !tenant.Active {
			return models.Tenant{}, fmt.Errorf("%w: tenant %q is deactivated", models.ErrTenantNotFound, tenantSlug)
		}
		return tenant, nil
	}

	return models.Tenant{}, fmt.Errorf("%w: no tenant for host %q", models.ErrTenantNotFound, host)
}

// InvalidateHost drops one host from the cache. Called when a tenant's host,
// active flag, or theme settings change.
func (r *Resolver) InvalidateHost(host string) {
	host = normalize.Host(host)
	r.mu.Lock()
	delete(r.byHost, host)
	r.mu.Unlock()
}

// Reset drops the whole host cache. The periodic reset job calls this so
// direct database edits converge without a restart.
func (r *Resolver) Reset() {
	r.mu.Lock()
	r.byHost = make(map[string]models.Tenant)
	r.mu.Unlock()
}
