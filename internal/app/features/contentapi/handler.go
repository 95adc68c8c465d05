// Package contentapi provides the public headless delivery API: published
// content as JSON for clients that bring their own rendering.
//
// Endpoints:
//   - GET /api/content         - list published items for the resolved tenant
//   - GET /api/content/{slug}  - one published item
//
// Tenant resolution matches the HTML routes: host first, then the optional
// ?tenant= query parameter. No authentication; only published content is
// ever returned.
package contentapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	contentstore "github.com/polysite/polysite/internal/app/store/content"
	"github.com/polysite/polysite/internal/app/system/jsonutil"
	"github.com/polysite/polysite/internal/app/system/normalize"
	"github.com/polysite/polysite/internal/app/system/resolver"
	"github.com/polysite/polysite/internal/app/system/themes"
	"github.com/polysite/polysite/internal/domain/models"
)

// Handler serves the public content delivery endpoints.
type Handler struct {
	resolver *resolver.Resolver
	content  *contentstore.Store
	logger   *zap.Logger
}

// NewHandler creates a new contentapi Handler.
func NewHandler(res *resolver.Resolver, content *contentstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		resolver: res,
		content:  content,
		logger:   logger,
	}
}

// item is the delivery representation of a content item. Storage-only fields
// (tenant id, soft-delete marker) stay out of the public payload.
type item struct {
	Slug       string                 `json:"slug"`
	Title      string                 `json:"title"`
	Type       models.ContentType     `json:"type"`
	RevisionID string                 `json:"revision_id"`
	Product    *models.ProductPayload `json:"product,omitempty"`
	Tour       *models.TourPayload    `json:"tour,omitempty"`
	MenuItem   *models.MenuItemPayload `json:"menu_item,omitempty"`
	Service    *models.ServicePayload `json:"service,omitempty"`
	Meta       themes.Meta            `json:"meta"`
	CreatedAt  string                 `json:"created_at"`
	UpdatedAt  string                 `json:"updated_at"`
}

func toItem(ci models.ContentItem, tenant models.Tenant) item {
	return item{
		Slug:       ci.Slug,
		Title:      ci.Title,
		Type:       ci.Type,
		RevisionID: ci.RevisionID,
		Product:    ci.Product,
		Tour:       ci.Tour,
		MenuItem:   ci.MenuItem,
		Service:    ci.Service,
		Meta:       themes.MergeSeo(ci, tenant),
		CreatedAt:  ci.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:  ci.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

// ListHandler handles GET /api/content.
//
// Query parameters:
//   - type:   filter by content type (product, tour, menu_item, service)
//   - page:   1-based page number
//   - limit:  page size (default 20, max 100)
//   - tenant: tenant slug, for shared hosts without a dedicated domain
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	tenant, ok := h.resolveTenant(w, r)
	if !ok {
		return
	}

	filter := contentstore.ListFilter{
		Type:  models.ContentType(normalize.QueryParam(r.URL.Query().Get("type"))),
		Limit: parseIntParam(r, "limit"),
		Page:  parseIntParam(r, "page"),
	}

	items, err := h.content.List(r.Context(), tenant.ID, filter)
	if err != nil {
		h.logger.Error("content list failed",
			zap.String("tenant", tenant.Slug),
			zap.Error(err))
		jsonutil.InternalError(w, "failed to list content")
		return
	}

	out := make([]item, 0, len(items))
	for _, ci := range items {
		out = append(out, toItem(ci, tenant))
	}
	jsonutil.OK(w, map[string]any{
		"tenant": tenant.Slug,
		"items":  out,
	})
}

// GetHandler handles GET /api/content/{slug}.
func (h *Handler) GetHandler(w http.ResponseWriter, r *http.Request) {
	tenant, ok := h.resolveTenant(w, r)
	if !ok {
		return
	}

	slug := normalize.Slug(chi.URLParam(r, "slug"))
	ci, err := h.content.GetBySlug(r.Context(), tenant.ID, slug)
	if err != nil {
		if errors.Is(err, models.ErrContentNotFound) {
			jsonutil.NotFound(w, "content not found")
			return
		}
		h.logger.Error("content get failed",
			zap.String("tenant", tenant.Slug),
			zap.String("slug", slug),
			zap.Error(err))
		jsonutil.InternalError(w, "failed to load content")
		return
	}

	jsonutil.OK(w, toItem(ci, tenant))
}

func (h *Handler) resolveTenant(w http.ResponseWriter, r *http.Request) (models.Tenant, bool) {
	tenantSlug := normalize.Slug(r.URL.Query().Get("tenant"))
	tenant, err := h.resolver.Resolve(r.Context(), r.Host, tenantSlug)
	if err != nil {
		if errors.Is(err, models.ErrTenantNotFound) {
			jsonutil.NotFound(w, "tenant not found")
			return models.Tenant{}, false
		}
		h.logger.Error("tenant resolution failed",
			zap.String("host", r.Host),
			zap.Error(err))
		jsonutil.InternalError(w, "tenant resolution failed")
		return models.Tenant{}, false
	}
	return tenant, true
}

func parseIntParam(r *http.Request, name string) int64 {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
