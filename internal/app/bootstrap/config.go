// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// EnvVarPrefix is the prefix for environment variables.
const EnvVarPrefix = "POLYSITE"

// appConfigKeys defines the configuration keys for this application.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, redis_addr, etc.
//   - Environment variables: POLYSITE_MONGO_URI, POLYSITE_REDIS_ADDR, etc.
//   - Command-line flags: --mongo_uri, --redis_addr, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "polysite", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Render cache (Redis) configuration
	{Name: "redis_addr", Default: "localhost:6379", Desc: "Redis address for the render cache"},
	{Name: "redis_password", Default: "", Desc: "Redis password (empty for none)"},
	{Name: "redis_db", Default: 0, Desc: "Redis database number"},

	// Admin API configuration
	{Name: "admin_api_key", Default: "", Desc: "API key for the admin API (leave empty to disable the admin surface)"},

	// Rendering configuration
	{Name: "render_timeout", Default: "2s", Desc: "Per-request render deadline"},
	{Name: "render_ttl_shop", Default: "5m", Desc: "Render cache TTL for shop tenants"},
	{Name: "render_ttl_travel", Default: "15m", Desc: "Render cache TTL for travel tenants"},
	{Name: "render_ttl_restaurant", Default: "2m", Desc: "Render cache TTL for restaurant tenants"},
	{Name: "render_ttl_corporate", Default: "1h", Desc: "Render cache TTL for corporate tenants"},
	{Name: "stale_while_revalidate", Default: "0s", Desc: "Serve-stale grace window after TTL expiry (0 disables)"},

	// Preview session configuration
	{Name: "preview_cookie_key", Default: "", Desc: "Preview cookie signing key (random per boot when empty)"},
	{Name: "preview_cookie_name", Default: "polysite_preview", Desc: "Preview cookie name"},
	{Name: "preview_ttl", Default: "30m", Desc: "Preview session lifetime"},

	// Demo seeding
	{Name: "seed_demo", Default: false, Desc: "Seed one demo tenant per vertical on startup"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
// CoreConfig comes from the shared WAFFLE layer; AppConfig is specific
// to this app.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, EnvVarPrefix, appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		RedisAddr:     appValues.String("redis_addr"),
		RedisPassword: appValues.String("redis_password"),
		RedisDB:       appValues.Int("redis_db"),

		AdminAPIKey: appValues.String("admin_api_key"),

		RenderTimeout:        appValues.Duration("render_timeout", 2*time.Second),
		RenderTTLShop:        appValues.Duration("render_ttl_shop", 5*time.Minute),
		RenderTTLTravel:      appValues.Duration("render_ttl_travel", 15*time.Minute),
		RenderTTLRestaurant:  appValues.Duration("render_ttl_restaurant", 2*time.Minute),
		RenderTTLCorporate:   appValues.Duration("render_ttl_corporate", time.Hour),
		StaleWhileRevalidate: appValues.Duration("stale_while_revalidate", 0),

		PreviewCookieKey:  appValues.String("preview_cookie_key"),
		PreviewCookieName: appValues.String("preview_cookie_name"),
		PreviewTTL:        appValues.Duration("preview_ttl", 30*time.Minute),

		SeedDemo: appValues.Bool("seed_demo"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if appCfg.RenderTimeout <= 0 {
		return fmt.Errorf("render_timeout must be positive, got %s", appCfg.RenderTimeout)
	}
	if appCfg.StaleWhileRevalidate < 0 {
		return fmt.Errorf("stale_while_revalidate cannot be negative, got %s", appCfg.StaleWhileRevalidate)
	}
	if coreCfg.Env == "prod" && appCfg.AdminAPIKey == "" {
		logger.Warn("admin_api_key is empty; the admin API will not be mounted")
	}
	return nil
}
