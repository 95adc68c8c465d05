// internal/domain/models/errors.go
package models

import "errors"

// Domain errors returned across the core's boundary. Stores and the renderer
// translate backend failures into these before they reach the HTTP layer, so
// handlers never see raw driver errors.
var (
	// ErrTenantNotFound means no tenant matched the request's host or slug.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrContentNotFound means the slug did not resolve within the tenant's
	// scope. It is deliberately the same error whether the slug is missing
	// entirely or exists under a different tenant.
	ErrContentNotFound = errors.New("content not found")

	// ErrUnsupportedVertical means a tenant's vertical has no registered
	// adapter or theme. This is a configuration error caught at startup.
	ErrUnsupportedVertical = errors.New("unsupported vertical")

	// ErrRenderTimeout means a render exceeded its deadline. No cache entry
	// is written when this occurs.
	ErrRenderTimeout = errors.New("render timed out")

	// ErrCacheUnavailable means the cache backend could not be reached. The
	// renderer degrades to rendering straight from the content store.
	ErrCacheUnavailable = errors.New("cache store unavailable")

	// ErrSlugImmutable means an update tried to change the slug of an item
	// that has already been published.
	ErrSlugImmutable = errors.New("slug cannot change after publish")

	// ErrSlugTaken means another non-deleted item of the same tenant already
	// uses the slug.
	ErrSlugTaken = errors.New("slug already in use for tenant")

	// ErrTenantExists means another tenant already claims the host or slug.
	ErrTenantExists = errors.New("tenant host or slug already in use")
)
