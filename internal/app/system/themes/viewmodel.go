// internal/app/system/themes/viewmodel.go
package themes

import (
	"fmt"
	"html/template"
)

// Meta is the resolved metadata block attached to a rendered page after
// merging item-level SEO over the tenant's site-wide defaults.
type Meta struct {
	Title          string `json:"title"`
	Description    string `json:"description,omitempty"`
	CanonicalPath  string `json:"canonical_path"`
	OGImageURL     string `json:"og_image_url,omitempty"`
	StructuredData string `json:"structured_data,omitempty"`
	Locale         string `json:"locale"`
}

// ViewModel is the theme-ready projection of a content item. Data holds the
// vertical-specific view model (ProductVM, TourVM, MenuItemVM or ServiceVM).
type ViewModel struct {
	SiteName string
	Slug     string
	Title    string
	Meta     Meta
	Data     any
}

// ProductVM is what the storefront theme's template consumes.
type ProductVM struct {
	Name        string
	Description template.HTML
	Price       string // formatted, e.g. "49.00 USD"
	SKU         string
	ImageURL    string
	InStock     bool
}

// TourVM is what the wanderer theme's template consumes.
type TourVM struct {
	Name         string
	Description  template.HTML
	Duration     string // formatted, e.g. "7 days"
	Price        string
	Destinations []string
	ImageURL     string
}

// MenuItemVM is what the bistro theme's template consumes.
type MenuItemVM struct {
	Name        string
	Description string
	Price       string
	Category    string
	Allergens   []string
}

// ServiceVM is what the atrium theme's template consumes.
type ServiceVM struct {
	Name     string
	Summary  string
	Body     template.HTML
	Icon     string
	CTALabel string
	CTAURL   string
}

// formatPrice renders minor units with the tenant currency, e.g. "49.00 USD".
// The admin API rejects negative prices; pre-existing bad rows still render a
// well-formed amount rather than sign-per-component output.
func formatPrice(cents int64, currency string) string {
	sign := ""
	if cents < 0 {
		sign, cents = "-", -cents
	}
	return fmt.Sprintf("%s%d.%02d %s", sign, cents/100, cents%100, currency)
}

// formatDuration renders a day count for the travel theme.
func formatDuration(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}
