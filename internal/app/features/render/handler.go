// Package render serves the public themed pages. It is the read path of the
// whole system: resolve the tenant, render (or fetch the cached render of)
// the requested slug, and write HTML.
//
// Endpoints:
//   - GET /        - render the tenant's "home" slug
//   - GET /{slug}  - render one content item
//
// The same handler also serves under /t/{tenant}/ for path-based tenant
// resolution on shared hosts.
package render

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/polysite/polysite/internal/app/system/normalize"
	"github.com/polysite/polysite/internal/app/system/preview"
	"github.com/polysite/polysite/internal/app/system/renderer"
	"github.com/polysite/polysite/internal/app/system/resolver"
	"github.com/polysite/polysite/internal/domain/models"
)

// HomeSlug is the slug served for the site root.
const HomeSlug = "home"

// Handler serves the public rendering routes.
type Handler struct {
	resolver *resolver.Resolver
	renderer *renderer.Renderer
	preview  *preview.Manager
	logger   *zap.Logger
}

// NewHandler creates a new render Handler.
func NewHandler(res *resolver.Resolver, rnd *renderer.Renderer, pv *preview.Manager, logger *zap.Logger) *Handler {
	return &Handler{
		resolver: res,
		renderer: rnd,
		preview:  pv,
		logger:   logger,
	}
}

// ServePage handles GET /{slug} and GET /t/{tenant}/{slug}.
func (h *Handler) ServePage(w http.ResponseWriter, r *http.Request) {
	slug := normalize.Slug(chi.URLParam(r, "slug"))
	if slug == "" {
		slug = HomeSlug
	}
	h.serve(w, r, slug)
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request, slug string) {
	tenantSlug := normalize.Slug(chi.URLParam(r, "tenant"))

	tenant, err := h.resolver.Resolve(r.Context(), r.Host, tenantSlug)
	if err != nil {
		if errors.Is(err, models.ErrTenantNotFound) {
			writeErrorPage(w, http.StatusNotFound, "Site not found")
			return
		}
		h.logger.Error("tenant resolution failed",
			zap.String("host", r.Host),
			zap.Error(err))
		writeErrorPage(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	opts := renderer.Options{
		IncludeDrafts: h.preview.Active(r, tenant.Slug),
	}

	entry, err := h.renderer.Render(r.Context(), tenant, slug, opts)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrContentNotFound):
			writeErrorPage(w, http.StatusNotFound, "Page not found")
		case errors.Is(err, models.ErrRenderTimeout):
			h.logger.Warn("render timed out",
				zap.String("tenant", tenant.Slug),
				zap.String("slug", slug))
			writeErrorPage(w, http.StatusGatewayTimeout, "Page took too long to render")
		default:
			h.logger.Error("render failed",
				zap.String("tenant", tenant.Slug),
				zap.String("slug", slug),
				zap.Error(err))
			writeErrorPage(w, http.StatusInternalServerError, "Something went wrong")
		}
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Theme", entry.Theme+"@"+entry.ThemeVersion)
	if opts.IncludeDrafts {
		// Previews are per-editor and must not be cached downstream.
		w.Header().Set("Cache-Control", "no-store")
	}
	_, _ = w.Write([]byte(entry.HTML))
}

// writeErrorPage writes a minimal HTML error page. Error pages are not
// themed: they must work even when theme selection itself failed.
func writeErrorPage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte("<!DOCTYPE html>\n<html><head><title>" + message + "</title></head><body><h1>" + message + "</h1></body></html>\n"))
}
