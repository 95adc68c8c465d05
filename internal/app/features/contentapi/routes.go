package contentapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/polysite/polysite/internal/app/system/apicors"
)

// Routes returns the public delivery API routes.
//
// When mounted at /api/content:
//   - GET /api/content         - list published items
//   - GET /api/content/{slug}  - one published item
//
// CORS is fully permissive: the delivery API is public and read-only.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(apicors.Middleware())
	r.Get("/", h.ListHandler)
	r.Get("/{slug}", h.GetHandler)
	return r
}
