// internal/app/features/tenantadmin/handler.go

// Package tenantadmin is the operator API for managing tenants: create,
// inspect, reconfigure, activate and deactivate. It sits behind the admin API
// key and never serves end-user traffic.
package tenantadmin

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	tenantstore "github.com/polysite/polysite/internal/app/store/tenants"
	"github.com/polysite/polysite/internal/app/system/jsonutil"
	"github.com/polysite/polysite/internal/app/system/normalize"
	"github.com/polysite/polysite/internal/app/system/renderer"
	"github.com/polysite/polysite/internal/app/system/resolver"
	"github.com/polysite/polysite/internal/app/system/themes"
	"github.com/polysite/polysite/internal/domain/models"
)

// Handler holds the dependencies for the tenant admin endpoints.
type Handler struct {
	tenants  *tenantstore.Store
	registry *themes.Registry
	resolver *resolver.Resolver
	renderer *renderer.Renderer
	logger   *zap.Logger
}

// NewHandler creates a new tenant admin handler.
func NewHandler(tenants *tenantstore.Store, registry *themes.Registry, res *resolver.Resolver, rend *renderer.Renderer, logger *zap.Logger) *Handler {
	return &Handler{
		tenants:  tenants,
		registry: registry,
		resolver: res,
		renderer: rend,
		logger:   logger,
	}
}

type createInput struct {
	Name          string              `json:"name"`
	Slug          string              `json:"slug"`
	Host          string              `json:"host"`
	Vertical      models.Vertical     `json:"vertical"`
	Locale        string              `json:"locale"`
	Currency      string              `json:"currency"`
	ThemeOverride string              `json:"theme_override"`
	SeoDefaults   *models.SeoMetadata `json:"seo_defaults"`
}

func (h *Handler) validate(in createInput) map[string]string {
	problems := make(map[string]string)
	if normalize.Name(in.Name) == "" {
		problems["name"] = "name is required"
	}
	if !normalize.ValidSlug(in.Slug) {
		problems["slug"] = "slug must be lowercase letters, digits, and hyphens"
	}
	if normalize.Host(in.Host) == "" {
		problems["host"] = "host is required"
	}
	if !models.IsValidVertical(in.Vertical) {
		problems["vertical"] = "unknown vertical"
	}
	if in.ThemeOverride != "" {
		switch {
		case !h.registry.Has(in.ThemeOverride):
			problems["theme_override"] = "unknown theme"
		case !h.registry.Compatible(in.ThemeOverride, in.Vertical):
			problems["theme_override"] = "theme does not serve this vertical"
		}
	}
	return problems
}

// ListHandler returns all tenants, active and inactive.
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	tenants, err := h.tenants.List(r.Context())
	if err != nil {
		h.logger.Error("list tenants", zap.Error(err))
		jsonutil.InternalError(w, "failed to list tenants")
		return
	}
	jsonutil.OK(w, map[string]any{"tenants": tenants})
}

// CreateHandler provisions a new tenant. New tenants start active.
func (h *Handler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var in createInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid request body")
		return
	}
	in.Slug = normalize.Slug(in.Slug)
	if problems := h.validate(in); len(problems) > 0 {
		jsonutil.ValidationError(w, problems)
		return
	}

	tenant, err := h.tenants.Create(r.Context(), models.Tenant{
		Name:          normalize.Name(in.Name),
		Slug:          in.Slug,
		Host:          normalize.Host(in.Host),
		Vertical:      in.Vertical,
		Locale:        in.Locale,
		Currency:      in.Currency,
		Active:        true,
		ThemeOverride: in.ThemeOverride,
		SeoDefaults:   in.SeoDefaults,
	})
	if errors.Is(err, models.ErrTenantExists) {
		jsonutil.Error(w, http.StatusConflict, "host or slug already in use")
		return
	}
	if err != nil {
		h.logger.Error("create tenant", zap.String("slug", in.Slug), zap.Error(err))
		jsonutil.InternalError(w, "failed to create tenant")
		return
	}

	h.logger.Info("tenant created",
		zap.String("slug", tenant.Slug),
		zap.String("host", tenant.Host),
		zap.String("vertical", string(tenant.Vertical)))
	jsonutil.Created(w, tenant)
}

// GetHandler returns one tenant by slug.
func (h *Handler) GetHandler(w http.ResponseWriter, r *http.Request) {
	tenant, ok := h.lookup(w, r)
	if !ok {
		return
	}
	jsonutil.OK(w, tenant)
}

type updateInput struct {
	Name          *string             `json:"name"`
	Host          *string             `json:"host"`
	Locale        *string             `json:"locale"`
	Currency      *string             `json:"currency"`
	ThemeOverride *string             `json:"theme_override"`
	SeoDefaults   *models.SeoMetadata `json:"seo_defaults"`
}

// UpdateHandler patches a tenant's mutable fields. The slug and vertical are
// fixed at creation; content rows and cache keys hang off both.
func (h *Handler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	tenant, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var in updateInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid request body")
		return
	}

	set := bson.M{}
	if in.Name != nil {
		if normalize.Name(*in.Name) == "" {
			jsonutil.ValidationError(w, map[string]string{"name": "name cannot be empty"})
			return
		}
		set["name"] = normalize.Name(*in.Name)
	}
	if in.Host != nil {
		if normalize.Host(*in.Host) == "" {
			jsonutil.ValidationError(w, map[string]string{"host": "host cannot be empty"})
			return
		}
		set["host"] = normalize.Host(*in.Host)
	}
	if in.Locale != nil {
		set["locale"] = *in.Locale
	}
	if in.Currency != nil {
		set["currency"] = *in.Currency
	}
	if in.ThemeOverride != nil {
		if *in.ThemeOverride != "" {
			switch {
			case !h.registry.Has(*in.ThemeOverride):
				jsonutil.ValidationError(w, map[string]string{"theme_override": "unknown theme"})
				return
			case !h.registry.Compatible(*in.ThemeOverride, tenant.Vertical):
				jsonutil.ValidationError(w, map[string]string{"theme_override": "theme does not serve this vertical"})
				return
			}
		}
		set["theme_override"] = *in.ThemeOverride
	}
	if in.SeoDefaults != nil {
		set["seo_defaults"] = in.SeoDefaults
	}
	if len(set) == 0 {
		jsonutil.BadRequest(w, "no fields to update")
		return
	}

	updated, err := h.tenants.Update(r.Context(), tenant.ID, set)
	if errors.Is(err, models.ErrTenantExists) {
		jsonutil.Error(w, http.StatusConflict, "host already in use")
		return
	}
	if err != nil {
		h.logger.Error("update tenant", zap.String("slug", tenant.Slug), zap.Error(err))
		jsonutil.InternalError(w, "failed to update tenant")
		return
	}

	// A host move invalidates cached resolution. A theme change retires every
	// cached render keyed on the old descriptor, and an SEO-defaults change
	// retires renders that baked the old merged metadata into their HTML.
	h.resolver.InvalidateHost(tenant.Host)
	if updated.Host != tenant.Host {
		h.resolver.InvalidateHost(updated.Host)
	}
	if updated.ThemeOverride != tenant.ThemeOverride || in.SeoDefaults != nil {
		if err := h.renderer.PurgeTenant(r.Context(), tenant.ID); err != nil {
			h.logger.Warn("purge tenant cache after tenant update",
				zap.String("slug", tenant.Slug), zap.Error(err))
		}
	}

	jsonutil.OK(w, updated)
}

// ActivateHandler re-enables a deactivated tenant.
func (h *Handler) ActivateHandler(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, true)
}

// DeactivateHandler takes the tenant's site offline. Content stays in place;
// resolution and rendering refuse the tenant until reactivation.
func (h *Handler) DeactivateHandler(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, false)
}

func (h *Handler) setActive(w http.ResponseWriter, r *http.Request, active bool) {
	tenant, ok := h.lookup(w, r)
	if !ok {
		return
	}

	updated, err := h.tenants.SetActive(r.Context(), tenant.ID, active)
	if err != nil {
		h.logger.Error("set tenant active", zap.String("slug", tenant.Slug),
			zap.Bool("active", active), zap.Error(err))
		jsonutil.InternalError(w, "failed to update tenant")
		return
	}

	h.resolver.InvalidateHost(tenant.Host)
	if !active {
		if err := h.renderer.PurgeTenant(r.Context(), tenant.ID); err != nil {
			h.logger.Warn("purge tenant cache on deactivation",
				zap.String("slug", tenant.Slug), zap.Error(err))
		}
	}

	h.logger.Info("tenant active flag changed",
		zap.String("slug", tenant.Slug), zap.Bool("active", active))
	jsonutil.OK(w, updated)
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (models.Tenant, bool) {
	slug := normalize.Slug(chi.URLParam(r, "slug"))
	tenant, err := h.tenants.GetBySlug(r.Context(), slug)
	if errors.Is(err, models.ErrTenantNotFound) {
		jsonutil.NotFound(w, "tenant not found")
		return models.Tenant{}, false
	}
	if err != nil {
		h.logger.Error("load tenant", zap.String("slug", slug), zap.Error(err))
		jsonutil.InternalError(w, "failed to load tenant")
		return models.Tenant{}, false
	}
	return tenant, true
}
