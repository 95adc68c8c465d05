// internal/domain/models/contentitem.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContentType tags the payload variant a content item carries. Each vertical
// publishes exactly one content type.
type ContentType string

// Supported content types.
const (
	TypeProduct  ContentType = "product"
	TypeTour     ContentType = "tour"
	TypeMenuItem ContentType = "menu_item"
	TypeService  ContentType = "service"
)

// ContentTypeForVertical maps a vertical to the content type it publishes.
// The mapping is total over AllVerticals.
func ContentTypeForVertical(v Vertical) (ContentType, bool) {
	switch v {
	case VerticalShop:
		return TypeProduct, true
	case VerticalTravel:
		return TypeTour, true
	case VerticalRestaurant:
		return TypeMenuItem, true
	case VerticalCorporate:
		return TypeService, true
	}
	return "", false
}

// Publish states for a content item.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// IsValidStatus checks if a publish state is known.
func IsValidStatus(s string) bool {
	return s == StatusDraft || s == StatusPublished || s == StatusArchived
}

// ContentItem is a single piece of tenant-owned content. It belongs to exactly
// one tenant and is never shared across tenants.
//
// The payload is a tagged union: Type names the variant and exactly one of the
// payload pointers below is set. Storing each variant under its own field keeps
// the shape typed end to end instead of round-tripping through a loose map.
//
// (tenant_id, slug) is unique among non-deleted items, enforced by a partial
// unique index. The slug is immutable once the item has been published.
type ContentItem struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	TenantID primitive.ObjectID `bson:"tenant_id" json:"tenant_id"`
	Type     ContentType        `bson:"type" json:"type"`
	Slug     string             `bson:"slug" json:"slug"`
	Title    string             `bson:"title" json:"title"`
	Status   string             `bson:"status" json:"status"` // draft|published|archived

	// RevisionID changes on every write so cached renders can be traced back
	// to the content revision they were produced from.
	RevisionID string `bson:"revision_id" json:"revision_id"`

	// Payload variants; exactly one is non-nil, matching Type.
	Product  *ProductPayload  `bson:"product,omitempty" json:"product,omitempty"`
	Tour     *TourPayload     `bson:"tour,omitempty" json:"tour,omitempty"`
	MenuItem *MenuItemPayload `bson:"menu_item,omitempty" json:"menu_item,omitempty"`
	Service  *ServicePayload  `bson:"service,omitempty" json:"service,omitempty"`

	// Seo overrides the tenant-level defaults when present.
	Seo *SeoMetadata `bson:"seo,omitempty" json:"seo,omitempty"`

	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `bson:"deleted_at,omitempty" json:"deleted_at,omitempty"`
}

// HasPayload reports whether the payload variant matching Type is present.
// A well-formed item always satisfies this.
func (c *ContentItem) HasPayload() bool {
	switch c.Type {
	case TypeProduct:
		return c.Product != nil
	case TypeTour:
		return c.Tour != nil
	case TypeMenuItem:
		return c.MenuItem != nil
	case TypeService:
		return c.Service != nil
	}
	return false
}

// ProductPayload is the shop vertical's content shape.
type ProductPayload struct {
	Name        string `bson:"name" json:"name"`
	Description string `bson:"description,omitempty" json:"description,omitempty"` // sanitized HTML
	PriceCents  int64  `bson:"price_cents" json:"price_cents"`
	SKU         string `bson:"sku,omitempty" json:"sku,omitempty"`
	ImageURL    string `bson:"image_url,omitempty" json:"image_url,omitempty"`
	InStock     bool   `bson:"in_stock" json:"in_stock"`
}

// TourPayload is the travel vertical's content shape.
type TourPayload struct {
	Name         string   `bson:"name" json:"name"`
	Description  string   `bson:"description,omitempty" json:"description,omitempty"` // sanitized HTML
	DurationDays int      `bson:"duration_days" json:"duration_days"`
	PriceCents   int64    `bson:"price_cents" json:"price_cents"`
	Destinations []string `bson:"destinations,omitempty" json:"destinations,omitempty"`
	ImageURL     string   `bson:"image_url,omitempty" json:"image_url,omitempty"`
}

// MenuItemPayload is the restaurant vertical's content shape.
type MenuItemPayload struct {
	Name        string   `bson:"name" json:"name"`
	Description string   `bson:"description,omitempty" json:"description,omitempty"`
	PriceCents  int64    `bson:"price_cents" json:"price_cents"`
	Category    string   `bson:"category,omitempty" json:"category,omitempty"` // e.g. "starter", "main", "dessert"
	Allergens   []string `bson:"allergens,omitempty" json:"allergens,omitempty"`
}

// ServicePayload is the corporate vertical's content shape.
type ServicePayload struct {
	Name     string `bson:"name" json:"name"`
	Summary  string `bson:"summary,omitempty" json:"summary,omitempty"`
	Body     string `bson:"body,omitempty" json:"body,omitempty"` // sanitized HTML
	Icon     string `bson:"icon,omitempty" json:"icon,omitempty"`
	CTALabel string `bson:"cta_label,omitempty" json:"cta_label,omitempty"`
	CTAURL   string `bson:"cta_url,omitempty" json:"cta_url,omitempty"`
}

// SeoMetadata holds search/social metadata for a content item or, on the
// tenant, site-wide defaults. Absent fields fall back to the tenant defaults
// and finally to the content itself (title, canonical path).
type SeoMetadata struct {
	TitleOverride  string `bson:"title_override,omitempty" json:"title_override,omitempty"`
	Description    string `bson:"description,omitempty" json:"description,omitempty"`
	CanonicalPath  string `bson:"canonical_path,omitempty" json:"canonical_path,omitempty"`
	OGImageURL     string `bson:"og_image_url,omitempty" json:"og_image_url,omitempty"`
	StructuredData string `bson:"structured_data,omitempty" json:"structured_data,omitempty"` // template id
}
