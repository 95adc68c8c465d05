// internal/app/features/tenantadmin/routes.go
package tenantadmin

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the tenant admin router. The caller mounts it under the
// admin prefix behind API key auth.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.ListHandler)
	r.Post("/", h.CreateHandler)

	r.Route("/{slug}", func(r chi.Router) {
		r.Get("/", h.GetHandler)
		r.Patch("/", h.UpdateHandler)
		r.Post("/activate", h.ActivateHandler)
		r.Post("/deactivate", h.DeactivateHandler)
	})

	return r
}
