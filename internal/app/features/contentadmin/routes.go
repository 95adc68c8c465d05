// internal/app/features/contentadmin/routes.go
package contentadmin

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the content admin router, keyed by tenant slug. The caller
// mounts it under the admin prefix behind API key auth.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Route("/{tenant}", func(r chi.Router) {
		r.Get("/", h.ListHandler)
		r.Post("/", h.CreateHandler)

		r.Post("/invalidate", h.InvalidateHandler)
		r.Post("/preview", h.PreviewHandler)
		r.Delete("/preview", h.PreviewClearHandler)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetHandler)
			r.Put("/", h.UpdateHandler)
			r.Post("/publish", h.PublishHandler)
			r.Post("/unpublish", h.UnpublishHandler)
			r.Post("/archive", h.ArchiveHandler)
			r.Delete("/", h.DeleteHandler)
		})
	})

	return r
}
