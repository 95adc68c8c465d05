// internal/app/system/seeding/seeding.go
package seeding

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	contentstore "github.com/polysite/polysite/internal/app/store/content"
	tenantstore "github.com/polysite/polysite/internal/app/store/tenants"
	"github.com/polysite/polysite/internal/domain/models"
)

// SeedDemo creates one demo tenant per vertical with a published item each.
// It is idempotent: tenants that already exist are left alone. Only enabled
// via the seed_demo config flag, intended for local development and staging.
func SeedDemo(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	tenants := tenantstore.New(db)
	content := contentstore.New(db)

	for _, seed := range demoSeeds() {
		existing, err := tenants.GetBySlug(ctx, seed.tenant.Slug)
		if err == nil {
			logger.Debug("demo tenant exists, skipping",
				zap.String("tenant", existing.Slug))
			continue
		}
		if !errors.Is(err, models.ErrTenantNotFound) {
			return err
		}

		created, err := tenants.Create(ctx, seed.tenant)
		if err != nil {
			logger.Error("failed to seed demo tenant",
				zap.String("tenant", seed.tenant.Slug),
				zap.Error(err))
			return err
		}
		logger.Info("seeded demo tenant",
			zap.String("tenant", created.Slug),
			zap.String("vertical", string(created.Vertical)))

		for _, item := range seed.items {
			item.TenantID = created.ID
			inserted, err := content.Create(ctx, item)
			if err != nil {
				logger.Error("failed to seed demo content",
					zap.String("tenant", created.Slug),
					zap.String("slug", item.Slug),
					zap.Error(err))
				return err
			}
			if _, err := content.SetStatus(ctx, created.ID, inserted.ID, models.StatusPublished); err != nil {
				return err
			}
			logger.Info("seeded demo content",
				zap.String("tenant", created.Slug),
				zap.String("slug", item.Slug))
		}
	}

	return nil
}

type demoSeed struct {
	tenant models.Tenant
	items  []models.ContentItem
}

func demoSeeds() []demoSeed {
	return []demoSeed{
		{
			tenant: models.Tenant{
				Name:     "Brightside Goods",
				Slug:     "brightside",
				Host:     "shop.localhost",
				Vertical: models.VerticalShop,
				Active:   true,
				SeoDefaults: &models.SeoMetadata{
					Description: "Everyday goods from the Brightside catalog.",
				},
			},
			items: []models.ContentItem{
				{
					Slug:  "enamel-mug",
					Title: "Enamel Camp Mug",
					Type:  models.TypeProduct,
					Product: &models.ProductPayload{
						Name:        "Enamel Camp Mug",
						Description: "<p>A 350ml enamel mug that survives the dishwasher and the campfire.</p>",
						PriceCents:  1800,
						SKU:         "BG-MUG-01",
						InStock:     true,
					},
				},
			},
		},
		{
			tenant: models.Tenant{
				Name:     "Meridian Tours",
				Slug:     "meridian",
				Host:     "travel.localhost",
				Vertical: models.VerticalTravel,
				Active:   true,
			},
			items: []models.ContentItem{
				{
					Slug:  "coastal-camino",
					Title: "Coastal Camino",
					Type:  models.TypeTour,
					Tour: &models.TourPayload{
						Name:         "Coastal Camino",
						Description:  "<p>Seven days walking the Atlantic coast with local guides.</p>",
						DurationDays: 7,
						PriceCents:   149500,
						Destinations: []string{"Porto", "Vigo", "Santiago de Compostela"},
					},
				},
			},
		},
		{
			tenant: models.Tenant{
				Name:     "Casa Verde",
				Slug:     "casa-verde",
				Host:     "restaurant.localhost",
				Vertical: models.VerticalRestaurant,
				Active:   true,
			},
			items: []models.ContentItem{
				{
					Slug:  "mushroom-risotto",
					Title: "Mushroom Risotto",
					Type:  models.TypeMenuItem,
					MenuItem: &models.MenuItemPayload{
						Name:        "Mushroom Risotto",
						Description: "Arborio rice, porcini, parmesan.",
						PriceCents:  1650,
						Category:    "mains",
						Allergens:   []string{"dairy"},
					},
				},
			},
		},
		{
			tenant: models.Tenant{
				Name:     "Northgate Consulting",
				Slug:     "northgate",
				Host:     "corporate.localhost",
				Vertical: models.VerticalCorporate,
				Active:   true,
			},
			items: []models.ContentItem{
				{
					Slug:  "cloud-migration",
					Title: "Cloud Migration",
					Type:  models.TypeService,
					Service: &models.ServicePayload{
						Name:     "Cloud Migration",
						Summary:  "Move workloads without downtime.",
						Body:     "<p>Assessment, planning, and phased cutover for legacy systems.</p>",
						CTALabel: "Book a call",
						CTAURL:   "https://northgate.example/contact",
					},
				},
			},
		},
	}
}
