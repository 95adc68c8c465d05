// internal/app/system/themes/adapters.go
package themes

import (
	"fmt"
	"html/template"

	"github.com/polysite/polysite/internal/domain/models"
)

// Adapter projects one payload variant into its theme's view model. One
// implementation is registered per vertical; Registry.Adapt dispatches on the
// tenant's vertical.
//
// Adapters never drop a theme-required field silently: anything the payload
// lacks is filled with the defaults documented on each implementation.
type Adapter interface {
	Adapt(item models.ContentItem, tenant models.Tenant) (ViewModel, error)
}

// errWrongPayload is returned for an item whose payload variant does not match
// its type tag. Well-formed items never hit this; the admin API rejects them
// on write.
func errWrongPayload(item models.ContentItem) error {
	return fmt.Errorf("content item %s: missing %s payload", item.Slug, item.Type)
}

// productAdapter adapts "product" payloads for the shop vertical.
//
// Defaults: Name falls back to the item title; InStock defaults to the stored
// value (false when never set); Price is always present because the payload
// field is required at write time.
type productAdapter struct{}

func (productAdapter) Adapt(item models.ContentItem, tenant models.Tenant) (ViewModel, error) {
	p := item.Product
	if p == nil {
		return ViewModel{}, errWrongPayload(item)
	}
	name := p.Name
	if name == "" {
		name = item.Title
	}
	vm := baseViewModel(item, tenant)
	vm.Data = ProductVM{
		Name:        name,
		Description: template.HTML(p.Description),
		Price:       formatPrice(p.PriceCents, tenant.Currency),
		SKU:         p.SKU,
		ImageURL:    p.ImageURL,
		InStock:     p.InStock,
	}
	return vm, nil
}

// tourAdapter adapts "tour" payloads for the travel vertical.
//
// Defaults: Name falls back to the item title; a zero duration renders as
// "0 days" rather than disappearing, so a template never sees a hole.
type tourAdapter struct{}

func (tourAdapter) Adapt(item models.ContentItem, tenant models.Tenant) (ViewModel, error) {
	p := item.Tour
	if p == nil {
		return ViewModel{}, errWrongPayload(item)
	}
	name := p.Name
	if name == "" {
		name = item.Title
	}
	vm := baseViewModel(item, tenant)
	vm.Data = TourVM{
		Name:         name,
		Description:  template.HTML(p.Description),
		Duration:     formatDuration(p.DurationDays),
		Price:        formatPrice(p.PriceCents, tenant.Currency),
		Destinations: p.Destinations,
		ImageURL:     p.ImageURL,
	}
	return vm, nil
}

// menuItemAdapter adapts "menu_item" payloads for the restaurant vertical.
//
// Defaults: Name falls back to the item title; Category defaults to "main"
// because the bistro theme groups every item under a category heading.
type menuItemAdapter struct{}

func (menuItemAdapter) Adapt(item models.ContentItem, tenant models.Tenant) (ViewModel, error) {
	p := item.MenuItem
	if p == nil {
		return ViewModel{}, errWrongPayload(item)
	}
	name := p.Name
	if name == "" {
		name = item.Title
	}
	category := p.Category
	if category == "" {
		category = "main"
	}
	vm := baseViewModel(item, tenant)
	vm.Data = MenuItemVM{
		Name:        name,
		Description: p.Description,
		Price:       formatPrice(p.PriceCents, tenant.Currency),
		Category:    category,
		Allergens:   p.Allergens,
	}
	return vm, nil
}

// serviceAdapter adapts "service" payloads for the corporate vertical.
//
// Defaults: Name falls back to the item title; CTALabel defaults to
// "Contact us" whenever a CTA URL is present without a label.
type serviceAdapter struct{}

func (serviceAdapter) Adapt(item models.ContentItem, tenant models.Tenant) (ViewModel, error) {
	p := item.Service
	if p == nil {
		return ViewModel{}, errWrongPayload(item)
	}
	name := p.Name
	if name == "" {
		name = item.Title
	}
	label := p.CTALabel
	if label == "" && p.CTAURL != "" {
		label = "Contact us"
	}
	vm := baseViewModel(item, tenant)
	vm.Data = ServiceVM{
		Name:     name,
		Summary:  p.Summary,
		Body:     template.HTML(p.Body),
		Icon:     p.Icon,
		CTALabel: label,
		CTAURL:   p.CTAURL,
	}
	return vm, nil
}

// baseViewModel fills the fields shared by every vertical, including the
// merged metadata block.
func baseViewModel(item models.ContentItem, tenant models.Tenant) ViewModel {
	return ViewModel{
		SiteName: tenant.Name,
		Slug:     item.Slug,
		Title:    item.Title,
		Meta:     MergeSeo(item, tenant),
	}
}

// MergeSeo resolves the metadata block for an item: item-level SEO fields win,
// absent ones fall back to the tenant defaults, and the final fallbacks are
// the item title and "/"+slug.
func MergeSeo(item models.ContentItem, tenant models.Tenant) Meta {
	meta := Meta{
		Title:         item.Title,
		CanonicalPath: "/" + item.Slug,
		Locale:        tenant.Locale,
	}

	apply := func(seo *models.SeoMetadata) {
		if seo == nil {
			return
		}
		if seo.TitleOverride != "" {
			meta.Title = seo.TitleOverride
		}
		if seo.Description != "" {
			meta.Description = seo.Description
		}
		if seo.CanonicalPath != "" {
			meta.CanonicalPath = seo.CanonicalPath
		}
		if seo.OGImageURL != "" {
			meta.OGImageURL = seo.OGImageURL
		}
		if seo.StructuredData != "" {
			meta.StructuredData = seo.StructuredData
		}
	}

	// Tenant defaults first, then the item's own metadata on top.
	apply(tenant.SeoDefaults)
	apply(item.Seo)
	return meta
}
