// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	contentadminfeature "github.com/polysite/polysite/internal/app/features/contentadmin"
	contentapifeature "github.com/polysite/polysite/internal/app/features/contentapi"
	healthfeature "github.com/polysite/polysite/internal/app/features/health"
	renderfeature "github.com/polysite/polysite/internal/app/features/render"
	tenantadminfeature "github.com/polysite/polysite/internal/app/features/tenantadmin"
	contentstore "github.com/polysite/polysite/internal/app/store/content"
	tenantstore "github.com/polysite/polysite/internal/app/store/tenants"
	"github.com/polysite/polysite/internal/app/system/apicors"
	"github.com/polysite/polysite/internal/app/system/apikey"
	"github.com/polysite/polysite/internal/app/system/preview"
	"github.com/polysite/polysite/internal/app/system/renderer"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed, so the theme registry, resolver, and
// render cache built in Startup are ready to wire.
//
// Route map:
//   - /health, /ready, /readyz, /livez      service health
//   - /api/content                          public read-only delivery API
//   - /api/admin                            tenant + content management (API key)
//   - /t/{tenant}/...                       path-based page delivery
//   - /{slug}                               host-based page delivery (catch-all)
//
// The page routes are mounted last: everything else claims its prefix first,
// and any remaining path is treated as a content slug for the resolved tenant.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tenants := tenantstore.New(deps.MongoDatabase)
	content := contentstore.New(deps.MongoDatabase)

	pageRenderer := renderer.New(content, themeRegistry, renderCache, renderer.Config{
		Timeout:    appCfg.RenderTimeout,
		TTLs:       renderTTLs(appCfg),
		StaleGrace: appCfg.StaleWhileRevalidate,
	}, logger)

	previewMgr := preview.New(appCfg.PreviewCookieKey, appCfg.PreviewCookieName, appCfg.PreviewTTL, logger)

	r := chi.NewRouter()

	// Global middleware. CORS must run early so preflight requests are
	// answered before anything else touches them.
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.CORSFromConfig(coreCfg))
	r.Use(middleware.SecurityHeadersFromConfig(coreCfg))

	// Health endpoints, for load balancers and Kubernetes probes.
	healthHandler := healthfeature.NewHandler(deps.MongoClient, deps.RedisClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	healthfeature.MountRootEndpoints(r, healthHandler)

	// Public delivery API: read-only JSON views of published content.
	contentapiHandler := contentapifeature.NewHandler(hostResolver, content, logger)
	r.Mount("/api/content", contentapifeature.Routes(contentapiHandler))

	// Admin API: mounted only when a key is configured. Without one there
	// is no way to authenticate, so exposing the routes would just 401.
	if appCfg.AdminAPIKey != "" {
		tenantadminHandler := tenantadminfeature.NewHandler(tenants, themeRegistry, hostResolver, pageRenderer, logger)
		contentadminHandler := contentadminfeature.NewHandler(tenants, content, pageRenderer, previewMgr, logger)

		r.Route("/api/admin", func(r chi.Router) {
			r.Use(apicors.Middleware())
			r.Use(apikey.Middleware(appCfg.AdminAPIKey, logger))
			r.Mount("/tenants", tenantadminfeature.Routes(tenantadminHandler))
			r.Mount("/content", contentadminfeature.Routes(contentadminHandler))
		})
	} else {
		logger.Warn("admin_api_key not set, admin API disabled")
	}

	// Page delivery. The path-based prefix serves tenants that have no
	// dedicated host yet; the root mount resolves by Host header.
	renderHandler := renderfeature.NewHandler(hostResolver, pageRenderer, previewMgr, logger)
	r.Mount("/t", renderfeature.PathRoutes(renderHandler))
	r.Mount("/", renderfeature.Routes(renderHandler))

	return r, nil
}
