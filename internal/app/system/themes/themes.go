// internal/app/system/themes/themes.go

// Package themes selects the rendering theme for a tenant and adapts content
// payloads into the view models its templates understand.
//
// Each vertical has exactly one default theme and one adapter. The adapter is
// the seam to extend when a new vertical or theme is added: register the
// variant here and every downstream consumer picks it up.
package themes

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/polysite/polysite/internal/domain/models"
)

// Descriptor identifies which template set renders a given vertical's content.
type Descriptor struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// String returns the cache-key form of the descriptor, e.g. "storefront@3".
func (d Descriptor) String() string {
	return d.Name + "@" + d.Version
}

// Theme bundles a descriptor with its parsed template set and the vertical
// whose view models its templates expect.
type Theme struct {
	Descriptor Descriptor
	Vertical   models.Vertical
	tmpl       *template.Template
}

// Built-in theme names. Versions bump when a template changes incompatibly,
// which retires old cache entries by changing the cache key.
const (
	ThemeStorefront = "storefront" // shop
	ThemeWanderer   = "wanderer"   // travel
	ThemeBistro     = "bistro"     // restaurant
	ThemeAtrium     = "atrium"     // corporate
)

// Registry holds the theme catalog and the adapter lookup table.
type Registry struct {
	themes   map[string]*Theme
	defaults map[models.Vertical]string
	adapters map[models.Vertical]Adapter
}

// NewRegistry builds the registry with all built-in themes and adapters.
func NewRegistry() (*Registry, error) {
	r := &Registry{
		themes: make(map[string]*Theme),
		defaults: map[models.Vertical]string{
			models.VerticalShop:       ThemeStorefront,
			models.VerticalTravel:     ThemeWanderer,
			models.VerticalRestaurant: ThemeBistro,
			models.VerticalCorporate:  ThemeAtrium,
		},
		adapters: map[models.Vertical]Adapter{
			models.VerticalShop:       productAdapter{},
			models.VerticalTravel:     tourAdapter{},
			models.VerticalRestaurant: menuItemAdapter{},
			models.VerticalCorporate:  serviceAdapter{},
		},
	}

	verticals := make(map[string]models.Vertical, len(r.defaults))
	for vertical, name := range r.defaults {
		verticals[name] = vertical
	}

	for name, version := range builtinVersions {
		tmpl, err := parseThemeTemplate(name)
		if err != nil {
			return nil, fmt.Errorf("theme %s: %w", name, err)
		}
		r.themes[name] = &Theme{
			Descriptor: Descriptor{Name: name, Version: version},
			Vertical:   verticals[name],
			tmpl:       tmpl,
		}
	}
	return r, nil
}

// Has reports whether a theme with the given name is registered. Admin
// handlers use it to reject an override that names no known theme.
func (r *Registry) Has(name string) bool {
	_, ok := r.themes[name]
	return ok
}

// Compatible reports whether the named theme exists and renders the given
// vertical's view models. A theme built for another vertical would fail at
// template execution, so overrides crossing verticals are rejected before
// they are stored.
func (r *Registry) Compatible(name string, vertical models.Vertical) bool {
	th, ok := r.themes[name]
	return ok && th.Vertical == vertical
}

// SelectTheme maps a tenant to its theme. A tenant-level override wins when it
// names a known theme for the tenant's vertical; otherwise the vertical's
// default applies. The mapping is total over valid verticals, so the only
// error path is an unknown vertical, which startup validation already rejects.
func (r *Registry) SelectTheme(tenant models.Tenant) (Descriptor, error) {
	if tenant.ThemeOverride != "" {
		if th, ok := r.themes[tenant.ThemeOverride]; ok && th.Vertical == tenant.Vertical {
			return th.Descriptor, nil
		}
	}
	name, ok := r.defaults[tenant.Vertical]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q", models.ErrUnsupportedVertical, tenant.Vertical)
	}
	return r.themes[name].Descriptor, nil
}

// Adapt projects a content item's payload into the view model the tenant's
// theme expects, filling theme-required fields that the payload lacks with
// the adapter's documented defaults.
func (r *Registry) Adapt(item models.ContentItem, tenant models.Tenant) (ViewModel, error) {
	adapter, ok := r.adapters[tenant.Vertical]
	if !ok {
		return ViewModel{}, fmt.Errorf("%w: %q", models.ErrUnsupportedVertical, tenant.Vertical)
	}
	return adapter.Adapt(item, tenant)
}

// Render executes the named theme template over a view model and returns the
// produced HTML.
func (r *Registry) Render(desc Descriptor, vm ViewModel) (string, error) {
	th, ok := r.themes[desc.Name]
	if !ok {
		return "", fmt.Errorf("unknown theme %q", desc.Name)
	}
	var buf bytes.Buffer
	if err := th.tmpl.Execute(&buf, vm); err != nil {
		return "", fmt.Errorf("render theme %s: %w", desc, err)
	}
	return buf.String(), nil
}

// ValidateTenants checks that every tenant's vertical has a registered adapter
// and theme, and that any theme override matches the tenant's vertical. Called
// at startup so a misconfigured tenant fails the boot instead of surfacing per
// request.
func (r *Registry) ValidateTenants(tenants []models.Tenant) error {
	for _, t := range tenants {
		if _, ok := r.adapters[t.Vertical]; !ok {
			return fmt.Errorf("%w: tenant %q has vertical %q", models.ErrUnsupportedVertical, t.Slug, t.Vertical)
		}
		if t.ThemeOverride != "" && !r.Compatible(t.ThemeOverride, t.Vertical) {
			return fmt.Errorf("tenant %q: theme %q does not serve vertical %q", t.Slug, t.ThemeOverride, t.Vertical)
		}
		if _, err := r.SelectTheme(t); err != nil {
			return fmt.Errorf("tenant %q: %w", t.Slug, err)
		}
	}
	return nil
}
