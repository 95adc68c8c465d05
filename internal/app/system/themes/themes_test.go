// internal/app/system/themes/themes_test.go
package themes

import (
	"strings"
	"testing"

	"github.com/polysite/polysite/internal/domain/models"
)

func testTenant(vertical models.Vertical) models.Tenant {
	return models.Tenant{
		Name:     "Acme " + string(vertical),
		Slug:     "acme-" + string(vertical),
		Host:     string(vertical) + ".acme.test",
		Vertical: vertical,
		Locale:   "en-US",
		Currency: "USD",
		Active:   true,
	}
}

func testItem(vertical models.Vertical) models.ContentItem {
	item := models.ContentItem{
		Slug:   "example",
		Title:  "Example Title",
		Status: models.StatusPublished,
	}
	switch vertical {
	case models.VerticalShop:
		item.Type = models.TypeProduct
		item.Product = &models.ProductPayload{Name: "Widget", PriceCents: 1999, SKU: "W-1", InStock: true}
	case models.VerticalTravel:
		item.Type = models.TypeTour
		item.Tour = &models.TourPayload{Name: "Coast Trip", DurationDays: 5, PriceCents: 129900, Destinations: []string{"Lisbon", "Porto"}}
	case models.VerticalRestaurant:
		item.Type = models.TypeMenuItem
		item.MenuItem = &models.MenuItemPayload{Name: "Risotto", PriceCents: 1450, Category: "mains", Allergens: []string{"dairy"}}
	case models.VerticalCorporate:
		item.Type = models.TypeService
		item.Service = &models.ServicePayload{Name: "Consulting", Summary: "We consult.", Body: "<p>Details</p>"}
	}
	return item
}

func TestNewRegistryParsesAllThemes(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	for name := range builtinVersions {
		if _, ok := r.themes[name]; !ok {
			t.Errorf("theme %q not registered", name)
		}
	}
}

func TestSelectTheme(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	defaults := map[models.Vertical]string{
		models.VerticalShop:       ThemeStorefront,
		models.VerticalTravel:     ThemeWanderer,
		models.VerticalRestaurant: ThemeBistro,
		models.VerticalCorporate:  ThemeAtrium,
	}
	for vertical, want := range defaults {
		desc, err := r.SelectTheme(testTenant(vertical))
		if err != nil {
			t.Fatalf("SelectTheme(%s): %v", vertical, err)
		}
		if desc.Name != want {
			t.Errorf("SelectTheme(%s) = %q, want %q", vertical, desc.Name, want)
		}
		if desc.Version == "" {
			t.Errorf("SelectTheme(%s) has empty version", vertical)
		}
	}

	t.Run("override wins when it serves the vertical", func(t *testing.T) {
		tenant := testTenant(models.VerticalShop)
		tenant.ThemeOverride = ThemeStorefront
		desc, err := r.SelectTheme(tenant)
		if err != nil {
			t.Fatalf("SelectTheme: %v", err)
		}
		if desc.Name != ThemeStorefront {
			t.Errorf("got %q, want %q", desc.Name, ThemeStorefront)
		}
	})

	t.Run("unknown override falls back to vertical default", func(t *testing.T) {
		tenant := testTenant(models.VerticalShop)
		tenant.ThemeOverride = "no-such-theme"
		desc, err := r.SelectTheme(tenant)
		if err != nil {
			t.Fatalf("SelectTheme: %v", err)
		}
		if desc.Name != ThemeStorefront {
			t.Errorf("got %q, want %q", desc.Name, ThemeStorefront)
		}
	})

	t.Run("cross-vertical override falls back to vertical default", func(t *testing.T) {
		// A restaurant theme cannot execute over shop view models, so the
		// override is ignored instead of failing every render.
		tenant := testTenant(models.VerticalShop)
		tenant.ThemeOverride = ThemeBistro
		desc, err := r.SelectTheme(tenant)
		if err != nil {
			t.Fatalf("SelectTheme: %v", err)
		}
		if desc.Name != ThemeStorefront {
			t.Errorf("got %q, want %q", desc.Name, ThemeStorefront)
		}
	})

	t.Run("unknown vertical errors", func(t *testing.T) {
		tenant := testTenant(models.VerticalShop)
		tenant.Vertical = "karaoke"
		if _, err := r.SelectTheme(tenant); err == nil {
			t.Fatal("expected error for unknown vertical")
		}
	})
}

func TestAdaptCoversEveryVertical(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	for _, vertical := range models.AllVerticals() {
		vm, err := r.Adapt(testItem(vertical), testTenant(vertical))
		if err != nil {
			t.Fatalf("Adapt(%s): %v", vertical, err)
		}
		if vm.Data == nil {
			t.Errorf("Adapt(%s) returned empty data", vertical)
		}
		if vm.Meta.Title == "" {
			t.Errorf("Adapt(%s) returned empty meta title", vertical)
		}
	}
}

func TestAdaptMissingPayload(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	item := testItem(models.VerticalShop)
	item.Product = nil
	if _, err := r.Adapt(item, testTenant(models.VerticalShop)); err == nil {
		t.Fatal("expected error for missing payload")
	}
}

func TestAdapterDefaults(t *testing.T) {
	tenant := testTenant(models.VerticalShop)

	t.Run("product name falls back to title", func(t *testing.T) {
		item := testItem(models.VerticalShop)
		item.Product.Name = ""
		vm, err := productAdapter{}.Adapt(item, tenant)
		if err != nil {
			t.Fatalf("Adapt: %v", err)
		}
		if got := vm.Data.(ProductVM).Name; got != item.Title {
			t.Errorf("name = %q, want %q", got, item.Title)
		}
	})

	t.Run("price formats cents with currency", func(t *testing.T) {
		item := testItem(models.VerticalShop)
		vm, err := productAdapter{}.Adapt(item, tenant)
		if err != nil {
			t.Fatalf("Adapt: %v", err)
		}
		if got := vm.Data.(ProductVM).Price; got != "19.99 USD" {
			t.Errorf("price = %q, want %q", got, "19.99 USD")
		}
	})

	t.Run("negative price keeps a single sign", func(t *testing.T) {
		if got := formatPrice(-150, "USD"); got != "-1.50 USD" {
			t.Errorf("price = %q, want %q", got, "-1.50 USD")
		}
	})

	t.Run("menu category defaults to main", func(t *testing.T) {
		item := testItem(models.VerticalRestaurant)
		item.MenuItem.Category = ""
		vm, err := menuItemAdapter{}.Adapt(item, testTenant(models.VerticalRestaurant))
		if err != nil {
			t.Fatalf("Adapt: %v", err)
		}
		if got := vm.Data.(MenuItemVM).Category; got != "main" {
			t.Errorf("category = %q, want %q", got, "main")
		}
	})

	t.Run("cta label defaults when url present", func(t *testing.T) {
		item := testItem(models.VerticalCorporate)
		item.Service.CTAURL = "https://acme.test/contact"
		item.Service.CTALabel = ""
		vm, err := serviceAdapter{}.Adapt(item, testTenant(models.VerticalCorporate))
		if err != nil {
			t.Fatalf("Adapt: %v", err)
		}
		if got := vm.Data.(ServiceVM).CTALabel; got != "Contact us" {
			t.Errorf("cta label = %q, want %q", got, "Contact us")
		}
	})
}

func TestMergeSeo(t *testing.T) {
	tenant := testTenant(models.VerticalShop)
	item := testItem(models.VerticalShop)

	t.Run("falls back to title and slug path", func(t *testing.T) {
		meta := MergeSeo(item, tenant)
		if meta.Title != item.Title {
			t.Errorf("title = %q, want %q", meta.Title, item.Title)
		}
		if meta.CanonicalPath != "/example" {
			t.Errorf("canonical = %q, want %q", meta.CanonicalPath, "/example")
		}
		if meta.Locale != "en-US" {
			t.Errorf("locale = %q, want %q", meta.Locale, "en-US")
		}
	})

	t.Run("tenant defaults fill missing fields", func(t *testing.T) {
		tenant := tenant
		tenant.SeoDefaults = &models.SeoMetadata{Description: "Tenant description", OGImageURL: "https://acme.test/og.png"}
		meta := MergeSeo(item, tenant)
		if meta.Description != "Tenant description" {
			t.Errorf("description = %q", meta.Description)
		}
		if meta.OGImageURL != "https://acme.test/og.png" {
			t.Errorf("og image = %q", meta.OGImageURL)
		}
	})

	t.Run("item metadata wins over tenant defaults", func(t *testing.T) {
		tenant := tenant
		tenant.SeoDefaults = &models.SeoMetadata{Description: "Tenant description"}
		item := item
		item.Seo = &models.SeoMetadata{TitleOverride: "Custom Title", Description: "Item description"}
		meta := MergeSeo(item, tenant)
		if meta.Title != "Custom Title" {
			t.Errorf("title = %q, want %q", meta.Title, "Custom Title")
		}
		if meta.Description != "Item description" {
			t.Errorf("description = %q, want %q", meta.Description, "Item description")
		}
	})
}

func TestRenderProducesThemedHTML(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	for _, vertical := range models.AllVerticals() {
		tenant := testTenant(vertical)
		item := testItem(vertical)
		desc, err := r.SelectTheme(tenant)
		if err != nil {
			t.Fatalf("SelectTheme(%s): %v", vertical, err)
		}
		vm, err := r.Adapt(item, tenant)
		if err != nil {
			t.Fatalf("Adapt(%s): %v", vertical, err)
		}
		html, err := r.Render(desc, vm)
		if err != nil {
			t.Fatalf("Render(%s): %v", vertical, err)
		}
		if !strings.Contains(html, tenant.Name) {
			t.Errorf("%s output missing site name", desc.Name)
		}
		if !strings.Contains(html, `class="`+desc.Name+`"`) {
			t.Errorf("%s output missing theme body class", desc.Name)
		}
		if !strings.Contains(html, `<link rel="canonical" href="/example">`) {
			t.Errorf("%s output missing canonical link", desc.Name)
		}
	}
}

func TestRenderEscapesUntrustedFields(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	tenant := testTenant(models.VerticalShop)
	item := testItem(models.VerticalShop)
	item.Product.Name = `<script>alert("x")</script>`

	desc, _ := r.SelectTheme(tenant)
	vm, err := r.Adapt(item, tenant)
	if err != nil {
		t.Fatalf("Adapt: %v", err)
	}
	html, err := r.Render(desc, vm)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(html, `<script>alert`) {
		t.Error("product name rendered unescaped")
	}
}

func TestValidateTenants(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	good := []models.Tenant{testTenant(models.VerticalShop), testTenant(models.VerticalCorporate)}
	if err := r.ValidateTenants(good); err != nil {
		t.Fatalf("ValidateTenants: %v", err)
	}

	bad := testTenant(models.VerticalShop)
	bad.Vertical = "karaoke"
	if err := r.ValidateTenants([]models.Tenant{bad}); err == nil {
		t.Fatal("expected error for unsupported vertical")
	}

	crossed := testTenant(models.VerticalShop)
	crossed.ThemeOverride = ThemeBistro
	if err := r.ValidateTenants([]models.Tenant{crossed}); err == nil {
		t.Fatal("expected error for override from another vertical")
	}
}

func TestCompatible(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	cases := []struct {
		name     string
		vertical models.Vertical
		want     bool
	}{
		{ThemeStorefront, models.VerticalShop, true},
		{ThemeWanderer, models.VerticalTravel, true},
		{ThemeBistro, models.VerticalShop, false},
		{ThemeAtrium, models.VerticalShop, false},
		{"no-such-theme", models.VerticalShop, false},
	}
	for _, tc := range cases {
		if got := r.Compatible(tc.name, tc.vertical); got != tc.want {
			t.Errorf("Compatible(%q, %s) = %v, want %v", tc.name, tc.vertical, got, tc.want)
		}
	}
}
