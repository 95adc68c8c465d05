// internal/app/system/tasks/jobs.go
package tasks

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/polysite/polysite/internal/app/store/rendercache"
)

// hostCacheResetter is the slice of the tenant resolver the reset job needs.
type hostCacheResetter interface {
	Reset()
}

// OrphanCachePurgeJob creates a job that sweeps cached renders belonging to
// tenants that no longer exist or have been deactivated. Eager invalidation
// handles the normal paths; this catches direct database edits and crashed
// purge calls.
func OrphanCachePurgeJob(db *mongo.Database, cache *rendercache.Store, logger *zap.Logger) Job {
	return Job{
		Name:           "orphan-cache-purge",
		Interval:       15 * time.Minute,
		SkipInitialRun: true,
		Run: func(ctx context.Context) error {
			cur, err := db.Collection("tenants").Find(ctx,
				bson.M{"active": true},
				options.Find().SetProjection(bson.M{"_id": 1}))
			if err != nil {
				return err
			}
			defer cur.Close(ctx)

			keep := make(map[string]bool)
			for cur.Next(ctx) {
				var doc struct {
					ID primitive.ObjectID `bson:"_id"`
				}
				if err := cur.Decode(&doc); err != nil {
					return err
				}
				keep[doc.ID.Hex()] = true
			}
			if err := cur.Err(); err != nil {
				return err
			}

			removed, err := cache.PurgeOrphans(ctx, keep)
			if err != nil {
				return err
			}
			if removed > 0 {
				logger.Info("purged orphaned render cache entries",
					zap.Int64("removed", removed))
			}
			return nil
		},
	}
}

// ResolverCacheResetJob creates a job that periodically drops the in-memory
// host cache so tenant changes made outside the admin API converge without a
// restart.
func ResolverCacheResetJob(resolver hostCacheResetter, logger *zap.Logger) Job {
	return Job{
		Name:           "resolver-cache-reset",
		Interval:       5 * time.Minute,
		SkipInitialRun: true,
		Run: func(ctx context.Context) error {
			resolver.Reset()
			logger.Debug("resolver host cache reset")
			return nil
		},
	}
}
