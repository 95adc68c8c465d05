package render

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the public rendering routes for host-resolved tenants.
//
// When mounted at /:
//   - GET /        - tenant home page
//   - GET /{slug}  - one content page
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.ServePage)
	r.Get("/{slug}", h.ServePage)
	return r
}

// PathRoutes returns the same routes with a tenant slug in the path, for
// local development and shared staging hosts.
//
// When mounted at /t:
//   - GET /t/{tenant}        - tenant home page
//   - GET /t/{tenant}/{slug} - one content page
func PathRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Route("/{tenant}", func(tr chi.Router) {
		tr.Get("/", h.ServePage)
		tr.Get("/{slug}", h.ServePage)
	})
	return r
}
