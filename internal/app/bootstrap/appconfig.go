// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP/HTTPS
// ports, TLS, logging level and format, and request body size limits.
// AppConfig is everything specific to this application: backing stores,
// render cache tuning, and the admin surface.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Maximum connections in pool (default: 100)
	MongoMinPoolSize uint64 // Minimum connections to keep warm (default: 10)

	// Render cache (Redis) configuration
	RedisAddr     string // Redis address (host:port)
	RedisPassword string // Redis password (empty for none)
	RedisDB       int    // Redis database number

	// Admin API authentication. When empty, the admin routes are not
	// mounted at all; the delivery surface keeps serving.
	AdminAPIKey string

	// Rendering configuration. The per-vertical TTLs reflect how volatile
	// each vertical's content is: restaurant menus churn, corporate pages
	// do not.
	RenderTimeout        time.Duration // per-request render deadline
	RenderTTLShop        time.Duration
	RenderTTLTravel      time.Duration
	RenderTTLRestaurant  time.Duration
	RenderTTLCorporate   time.Duration
	StaleWhileRevalidate time.Duration // serve-stale grace window, 0 disables

	// Preview session configuration
	PreviewCookieKey  string        // signing key; random per boot when empty
	PreviewCookieName string        // cookie name (default: polysite_preview)
	PreviewTTL        time.Duration // preview session lifetime (default: 30m)

	// SeedDemo creates one demo tenant per vertical on startup. Intended
	// for local development and demos only.
	SeedDemo bool
}
