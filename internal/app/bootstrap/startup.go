// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/polysite/polysite/internal/app/store/rendercache"
	tenantstore "github.com/polysite/polysite/internal/app/store/tenants"
	"github.com/polysite/polysite/internal/app/system/resolver"
	"github.com/polysite/polysite/internal/app/system/tasks"
	"github.com/polysite/polysite/internal/app/system/themes"
	"github.com/polysite/polysite/internal/app/system/timeouts"
	"github.com/polysite/polysite/internal/domain/models"
)

// Shared components built during Startup and consumed by BuildHandler and
// Shutdown. WAFFLE's hooks do not carry app state between phases, so these
// live at package level like the task runner does.
var (
	themeRegistry *themes.Registry
	hostResolver  *resolver.Resolver
	renderCache   *rendercache.Store
	taskRunner    *tasks.Runner
)

// Startup runs once after DB connections and schema/index setup are complete,
// but before the HTTP handler is built and requests are served.
//
// It parses the built-in themes, validates that every stored tenant maps to a
// known vertical and theme, and starts the background maintenance jobs. A
// tenant with an unknown vertical fails the boot here instead of 500ing per
// request later.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{Render: appCfg.RenderTimeout})
	timeouts.ConfigureFromEnv()

	registry, err := themes.NewRegistry()
	if err != nil {
		logger.Error("theme registry build failed", zap.Error(err))
		return err
	}
	themeRegistry = registry

	tenants := tenantstore.New(deps.MongoDatabase)
	all, err := tenants.List(ctx)
	if err != nil {
		logger.Error("failed to load tenants for validation", zap.Error(err))
		return err
	}
	if err := registry.ValidateTenants(all); err != nil {
		logger.Error("tenant validation failed", zap.Error(err))
		return err
	}
	logger.Info("validated tenant theme mappings", zap.Int("tenants", len(all)))

	hostResolver = resolver.New(tenants)
	renderCache = rendercache.New(deps.RedisClient)

	startTaskRunner(deps, logger)
	return nil
}

// startTaskRunner initializes and starts the background task runner.
func startTaskRunner(deps DBDeps, logger *zap.Logger) {
	taskRunner = tasks.New(logger)

	// Drop cached renders whose tenant no longer exists or is inactive.
	taskRunner.Register(tasks.OrphanCachePurgeJob(deps.MongoDatabase, renderCache, logger))

	// Periodically clear the resolver's host cache so host reassignments
	// done outside the admin API still converge.
	taskRunner.Register(tasks.ResolverCacheResetJob(hostResolver, logger))

	taskRunner.Start()
}

// renderTTLs maps the configured per-vertical TTLs into the renderer's shape.
func renderTTLs(appCfg AppConfig) map[models.Vertical]time.Duration {
	return map[models.Vertical]time.Duration{
		models.VerticalShop:       appCfg.RenderTTLShop,
		models.VerticalTravel:     appCfg.RenderTTLTravel,
		models.VerticalRestaurant: appCfg.RenderTTLRestaurant,
		models.VerticalCorporate:  appCfg.RenderTTLCorporate,
	}
}
