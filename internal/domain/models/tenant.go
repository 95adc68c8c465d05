// internal/domain/models/tenant.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Vertical identifies the business domain a tenant's site serves. It decides
// which content type the tenant publishes and which theme renders it.
type Vertical string

// Supported verticals.
const (
	VerticalShop       Vertical = "shop"
	VerticalTravel     Vertical = "travel"
	VerticalRestaurant Vertical = "restaurant"
	VerticalCorporate  Vertical = "corporate"
)

// AllVerticals returns every supported vertical.
func AllVerticals() []Vertical {
	return []Vertical{
		VerticalShop,
		VerticalTravel,
		VerticalRestaurant,
		VerticalCorporate,
	}
}

// IsValidVertical checks if a vertical is supported.
func IsValidVertical(v Vertical) bool {
	for _, known := range AllVerticals() {
		if known == v {
			return true
		}
	}
	return false
}

// Tenant is one customer's site instance: a host/slug identity plus the
// vertical that shapes its content and default theme.
//
// Tenants are created by an operator, rarely mutated, and deactivated rather
// than deleted while content still references them.
type Tenant struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name     string             `bson:"name" json:"name"`
	Slug     string             `bson:"slug" json:"slug"` // path-prefix identifier, e.g. "shop-a"
	Host     string             `bson:"host" json:"host"` // exact host match, e.g. "shop-a.example.com"
	Vertical Vertical           `bson:"vertical" json:"vertical"`
	Locale   string             `bson:"locale" json:"locale"`     // BCP 47, e.g. "en-US"
	Currency string             `bson:"currency" json:"currency"` // ISO 4217, e.g. "USD"
	Active   bool               `bson:"active" json:"active"`

	// ThemeOverride selects a non-default theme by name. Empty means the
	// vertical's default theme.
	ThemeOverride string `bson:"theme_override,omitempty" json:"theme_override,omitempty"`

	// SeoDefaults apply to every content item of this tenant that has no
	// item-level metadata of its own.
	SeoDefaults *SeoMetadata `bson:"seo_defaults,omitempty" json:"seo_defaults,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Default locale and currency for tenants created without them.
const (
	DefaultLocale   = "en-US"
	DefaultCurrency = "USD"
)
