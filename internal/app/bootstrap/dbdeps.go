// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database and backend dependencies for this WAFFLE app.
//
// This struct is created in ConnectDB and passed to subsequent lifecycle
// hooks: EnsureSchema, Startup, BuildHandler, and Shutdown. The Shutdown
// hook is responsible for closing these connections gracefully when the
// application terminates.
type DBDeps struct {
	// MongoDB client and database; system of record for tenants and content.
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// Redis client backing the render cache. The service runs without it,
	// rendering every request from Mongo, so a Redis outage degrades
	// latency rather than availability.
	RedisClient *redis.Client
}
