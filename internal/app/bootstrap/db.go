// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/polysite/polysite/internal/app/system/indexes"
	"github.com/polysite/polysite/internal/app/system/seeding"
	"github.com/polysite/polysite/internal/app/system/validators"
)

// ConnectDB connects to MongoDB and Redis.
//
// WAFFLE calls this after configuration is loaded but before EnsureSchema and
// Startup. MongoDB is required; a failed connect aborts startup. Redis is
// best-effort at this stage: the client is created and pinged, but a failed
// ping only logs a warning, because the renderer works without the cache.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	poolCfg := wafflemongo.DefaultPoolConfig()
	if appCfg.MongoMaxPoolSize > 0 {
		poolCfg.MaxPoolSize = appCfg.MongoMaxPoolSize
	}
	if appCfg.MongoMinPoolSize > 0 {
		poolCfg.MinPoolSize = appCfg.MongoMinPoolSize
	}

	client, err := wafflemongo.ConnectWithPool(ctx, appCfg.MongoURI, appCfg.MongoDatabase, poolCfg)
	if err != nil {
		return DBDeps{}, err
	}
	db := client.Database(appCfg.MongoDatabase)

	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase),
		zap.Uint64("max_pool_size", poolCfg.MaxPoolSize),
		zap.Uint64("min_pool_size", poolCfg.MinPoolSize),
	)

	rdb := redis.NewClient(&redis.Options{
		Addr:     appCfg.RedisAddr,
		Password: appCfg.RedisPassword,
		DB:       appCfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not reachable, render cache disabled until it recovers",
			zap.String("addr", appCfg.RedisAddr), zap.Error(err))
	} else {
		logger.Info("connected to Redis", zap.String("addr", appCfg.RedisAddr))
	}

	return DBDeps{
		MongoClient:   client,
		MongoDatabase: db,
		RedisClient:   rdb,
	}, nil
}

// EnsureSchema sets up collections, validators, and indexes.
//
// This runs after ConnectDB succeeds but before Startup and before the HTTP
// handler is built. The context has a timeout based on
// coreCfg.IndexBootTimeout, so long-running work should respect cancellation.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.MongoDatabase

	// Collections and JSON-Schema validators first, so indexes are created
	// on existing collections.
	logger.Info("ensuring collections and validators")
	if err := validators.EnsureAll(ctx, db); err != nil {
		logger.Error("failed to ensure validators", zap.Error(err))
		return err
	}

	logger.Info("ensuring database indexes")
	if err := indexes.EnsureAll(ctx, db); err != nil {
		logger.Error("failed to ensure indexes", zap.Error(err))
		return err
	}

	if appCfg.SeedDemo {
		logger.Info("seeding demo tenants")
		if err := seeding.SeedDemo(ctx, db, logger); err != nil {
			logger.Error("failed to seed demo tenants", zap.Error(err))
			return err
		}
	}

	logger.Info("database schema ensured successfully")
	return nil
}
