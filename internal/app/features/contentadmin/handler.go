// internal/app/features/contentadmin/handler.go

// Package contentadmin is the editor API for a tenant's content items: draft
// creation, updates, publish state changes, soft deletion, cache invalidation
// and preview sessions. It sits behind the admin API key.
//
// Every route is scoped to one tenant by URL; the store layer re-checks the
// tenant id on each query, so an id pasted from another tenant's item resolves
// to not-found rather than leaking across sites.
package contentadmin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	contentstore "github.com/polysite/polysite/internal/app/store/content"
	tenantstore "github.com/polysite/polysite/internal/app/store/tenants"
	"github.com/polysite/polysite/internal/app/system/htmlsanitize"
	"github.com/polysite/polysite/internal/app/system/jsonutil"
	"github.com/polysite/polysite/internal/app/system/normalize"
	"github.com/polysite/polysite/internal/app/system/preview"
	"github.com/polysite/polysite/internal/app/system/renderer"
	"github.com/polysite/polysite/internal/domain/models"
)

// Handler holds the dependencies for the content admin endpoints.
type Handler struct {
	tenants  *tenantstore.Store
	content  *contentstore.Store
	renderer *renderer.Renderer
	preview  *preview.Manager
	logger   *zap.Logger
}

// NewHandler creates a new content admin handler.
func NewHandler(tenants *tenantstore.Store, content *contentstore.Store, rend *renderer.Renderer, pv *preview.Manager, logger *zap.Logger) *Handler {
	return &Handler{
		tenants:  tenants,
		content:  content,
		renderer: rend,
		preview:  pv,
		logger:   logger,
	}
}

type itemInput struct {
	Slug     string                  `json:"slug"`
	Title    string                  `json:"title"`
	Type     models.ContentType      `json:"type"`
	Product  *models.ProductPayload  `json:"product"`
	Tour     *models.TourPayload     `json:"tour"`
	MenuItem *models.MenuItemPayload `json:"menu_item"`
	Service  *models.ServicePayload  `json:"service"`
	Seo      *models.SeoMetadata     `json:"seo"`
}

func (in itemInput) toItem() models.ContentItem {
	return models.ContentItem{
		Slug:     normalize.Slug(in.Slug),
		Title:    normalize.Name(in.Title),
		Type:     in.Type,
		Product:  in.Product,
		Tour:     in.Tour,
		MenuItem: in.MenuItem,
		Service:  in.Service,
		Seo:      in.Seo,
	}
}

// sanitizePayload cleans the rich-text fields in place. Plain-text fields pass
// through untouched; the templates escape those at render time.
func sanitizePayload(item *models.ContentItem) {
	if item.Product != nil {
		item.Product.Description = htmlsanitize.Sanitize(item.Product.Description)
	}
	if item.Tour != nil {
		item.Tour.Description = htmlsanitize.Sanitize(item.Tour.Description)
	}
	if item.Service != nil {
		item.Service.Body = htmlsanitize.Sanitize(item.Service.Body)
	}
}

// ListHandler returns the tenant's items across all publish states. The
// public delivery API stays published-only; editors need to see drafts.
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	tenant, ok := h.resolveTenant(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	filter := contentstore.ListFilter{
		Type:     models.ContentType(normalize.QueryParam(q.Get("type"))),
		Statuses: []string{models.StatusDraft, models.StatusPublished, models.StatusArchived},
		Limit:    parseIntParam(q.Get("limit")),
		Page:     parseIntParam(q.Get("page")),
	}
	if st := normalize.QueryParam(q.Get("status")); st != "" {
		if !models.IsValidStatus(st) {
			jsonutil.BadRequest(w, "unknown status filter")
			return
		}
		filter.Statuses = []string{st}
	}

	items, err := h.content.List(r.Context(), tenant.ID, filter)
	if err != nil {
		h.logger.Error("list content", zap.String("tenant", tenant.Slug), zap.Error(err))
		jsonutil.InternalError(w, "failed to list content")
		return
	}
	if items == nil {
		items = []models.ContentItem{}
	}
	jsonutil.OK(w, map[string]any{"tenant": tenant.Slug, "items": items})
}

// CreateHandler creates a new item. Items always start as drafts; publishing
// is a separate, explicit step.
func (h *Handler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	tenant, ok := h.resolveTenant(w, r)
	if !ok {
		return
	}

	var in itemInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid request body")
		return
	}

	item := in.toItem()
	item.TenantID = tenant.ID

	if problems := validateItem(tenant, item); len(problems) > 0 {
		jsonutil.ValidationError(w, problems)
		return
	}
	sanitizePayload(&item)

	created, err := h.content.Create(r.Context(), item)
	if errors.Is(err, models.ErrSlugTaken) {
		jsonutil.Error(w, http.StatusConflict, "slug already in use")
		return
	}
	if err != nil {
		h.logger.Error("create content", zap.String("tenant", tenant.Slug),
			zap.String("slug", item.Slug), zap.Error(err))
		jsonutil.InternalError(w, "failed to create content")
		return
	}

	h.logger.Info("content created", zap.String("tenant", tenant.Slug),
		zap.String("slug", created.Slug), zap.String("type", string(created.Type)))
	jsonutil.Created(w, created)
}

// GetHandler returns one item by id, any publish state.
func (h *Handler) GetHandler(w http.ResponseWriter, r *http.Request) {
	tenant, ok := h.resolveTenant(w, r)
	if !ok {
		return
	}
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	item, err := h.content.GetByID(r.Context(), tenant.ID, id)
	if errors.Is(err, models.ErrContentNotFound) {
		jsonutil.NotFound(w, "content not found")
		return
	}
	if err != nil {
		h.logger.Error("load content", zap.String("tenant", tenant.Slug), zap.Error(err))
		jsonutil.InternalError(w, "failed to load content")
		return
	}
	jsonutil.OK(w, item)
}

// UpdateHandler replaces an item's mutable fields. The slug may only change
// while the item is still a draft.
func (h *Handler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	tenant, ok := h.resolveTenant(w, r)
	if !ok {
		return
	}
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	current, err := h.content.GetByID(r.Context(), tenant.ID, id)
	if errors.Is(err, models.ErrContentNotFound) {
		jsonutil.NotFound(w, "content not found")
		return
	}
	if err != nil {
		h.logger.Error("load content", zap.String("tenant", tenant.Slug), zap.Error(err))
		jsonutil.InternalError(w, "failed to load content")
		return
	}

	var in itemInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid request body")
		return
	}

	item := in.toItem()
	item.Type = current.Type
	if item.Slug == "" {
		item.Slug = current.Slug
	}
	if problems := validateItem(tenant, item); len(problems) > 0 {
		jsonutil.ValidationError(w, problems)
		return
	}
	sanitizePayload(&item)

	updated, err := h.content.Update(r.Context(), tenant.ID, id, item)
	switch {
	case errors.Is(err, models.ErrSlugImmutable):
		jsonutil.Error(w, http.StatusConflict, "slug cannot change after publish")
		return
	case errors.Is(err, models.ErrSlugTaken):
		jsonutil.Error(w, http.StatusConflict, "slug already in use")
		return
	case errors.Is(err, models.ErrContentNotFound):
		jsonutil.NotFound(w, "content not found")
		return
	case err != nil:
		h.logger.Error("update content", zap.String("tenant", tenant.Slug), zap.Error(err))
		jsonutil.InternalError(w, "failed to update content")
		return
	}

	h.invalidate(r, tenant, current.Slug)
	if updated.Slug != current.Slug {
		h.invalidate(r, tenant, updated.Slug)
	}
	jsonutil.OK(w, updated)
}

// PublishHandler makes an item publicly visible.
func (h *Handler) PublishHandler(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, models.StatusPublished)
}

// UnpublishHandler returns an item to draft, removing it from the public site.
func (h *Handler) UnpublishHandler(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, models.StatusDraft)
}

// ArchiveHandler retires an item without deleting it.
func (h *Handler) ArchiveHandler(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, models.StatusArchived)
}

func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request, status string) {
	tenant, ok := h.resolveTenant(w, r)
	if !ok {
		return
	}
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	item, err := h.content.SetStatus(r.Context(), tenant.ID, id, status)
	if errors.Is(err, models.ErrContentNotFound) {
		jsonutil.NotFound(w, "content not found")
		return
	}
	if err != nil {
		h.logger.Error("set content status", zap.String("tenant", tenant.Slug),
			zap.String("status", status), zap.Error(err))
		jsonutil.InternalError(w, "failed to update content")
		return
	}

	h.invalidate(r, tenant, item.Slug)
	h.logger.Info("content status changed", zap.String("tenant", tenant.Slug),
		zap.String("slug", item.Slug), zap.String("status", status))
	jsonutil.OK(w, item)
}

// DeleteHandler soft-deletes an item. The slug frees up for reuse.
func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	tenant, ok := h.resolveTenant(w, r)
	if !ok {
		return
	}
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	item, err := h.content.SoftDelete(r.Context(), tenant.ID, id)
	if errors.Is(err, models.ErrContentNotFound) {
		jsonutil.NotFound(w, "content not found")
		return
	}
	if err != nil {
		h.logger.Error("delete content", zap.String("tenant", tenant.Slug), zap.Error(err))
		jsonutil.InternalError(w, "failed to delete content")
		return
	}

	h.invalidate(r, tenant, item.Slug)
	jsonutil.NoContent(w)
}

// InvalidateHandler drops cached renders on demand. With a slug in the body
// it targets one page; without, it purges the tenant's whole cache.
func (h *Handler) InvalidateHandler(w http.ResponseWriter, r *http.Request) {
	tenant, ok := h.resolveTenant(w, r)
	if !ok {
		return
	}

	var in struct {
		Slug string `json:"slug"`
	}
	if r.ContentLength > 0 {
		if err := jsonutil.Decode(r, &in); err != nil {
			jsonutil.BadRequest(w, "invalid request body")
			return
		}
	}

	var err error
	if in.Slug != "" {
		err = h.renderer.Invalidate(r.Context(), tenant.ID, normalize.Slug(in.Slug))
	} else {
		err = h.renderer.PurgeTenant(r.Context(), tenant.ID)
	}
	if err != nil {
		h.logger.Error("invalidate cache", zap.String("tenant", tenant.Slug), zap.Error(err))
		jsonutil.InternalError(w, "failed to invalidate cache")
		return
	}
	jsonutil.NoContent(w)
}

// PreviewHandler issues a signed preview cookie. While the cookie is valid,
// page requests for this tenant bypass the cache and include drafts.
func (h *Handler) PreviewHandler(w http.ResponseWriter, r *http.Request) {
	tenant, ok := h.resolveTenant(w, r)
	if !ok {
		return
	}
	if err := h.preview.Issue(w, r, tenant.Slug); err != nil {
		h.logger.Error("issue preview", zap.String("tenant", tenant.Slug), zap.Error(err))
		jsonutil.InternalError(w, "failed to start preview")
		return
	}
	jsonutil.OK(w, map[string]any{"tenant": tenant.Slug, "preview": "active"})
}

// PreviewClearHandler ends a preview session.
func (h *Handler) PreviewClearHandler(w http.ResponseWriter, r *http.Request) {
	tenant, ok := h.resolveTenant(w, r)
	if !ok {
		return
	}
	if err := h.preview.Clear(w, r); err != nil {
		h.logger.Error("clear preview", zap.String("tenant", tenant.Slug), zap.Error(err))
		jsonutil.InternalError(w, "failed to end preview")
		return
	}
	jsonutil.NoContent(w)
}

// invalidate drops the cached renders for one page. A cache outage here is
// logged but not surfaced; the write already happened and the entry expires
// on its own TTL.
func (h *Handler) invalidate(r *http.Request, tenant models.Tenant, slug string) {
	if err := h.renderer.Invalidate(r.Context(), tenant.ID, slug); err != nil {
		h.logger.Warn("invalidate after write",
			zap.String("tenant", tenant.Slug), zap.String("slug", slug), zap.Error(err))
	}
}

func validateItem(tenant models.Tenant, item models.ContentItem) map[string]string {
	problems := make(map[string]string)
	if !normalize.ValidSlug(item.Slug) {
		problems["slug"] = "slug must be lowercase letters, digits, and hyphens"
	}
	if item.Title == "" {
		problems["title"] = "title is required"
	}
	want, _ := models.ContentTypeForVertical(tenant.Vertical)
	if item.Type != want {
		problems["type"] = "type does not match the tenant's vertical"
	} else if !item.HasPayload() {
		problems["type"] = "payload missing for type"
	}
	switch {
	case item.Product != nil && item.Product.PriceCents < 0:
		problems["product.price_cents"] = "price_cents cannot be negative"
	case item.Tour != nil && item.Tour.PriceCents < 0:
		problems["tour.price_cents"] = "price_cents cannot be negative"
	case item.MenuItem != nil && item.MenuItem.PriceCents < 0:
		problems["menu_item.price_cents"] = "price_cents cannot be negative"
	}
	return problems
}

func (h *Handler) resolveTenant(w http.ResponseWriter, r *http.Request) (models.Tenant, bool) {
	slug := normalize.Slug(chi.URLParam(r, "tenant"))
	tenant, err := h.tenants.GetBySlug(r.Context(), slug)
	if errors.Is(err, models.ErrTenantNotFound) {
		jsonutil.NotFound(w, "tenant not found")
		return models.Tenant{}, false
	}
	if err != nil {
		h.logger.Error("load tenant", zap.String("tenant", slug), zap.Error(err))
		jsonutil.InternalError(w, "failed to load tenant")
		return models.Tenant{}, false
	}
	return tenant, true
}

func parseID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.BadRequest(w, "invalid content id")
		return primitive.NilObjectID, false
	}
	return id, true
}

func parseIntParam(s string) int64 {
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
