package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureIndexes creates the indexes the query paths rely on. Index creation
// is idempotent, so this runs unconditionally at every startup.
func EnsureIndexes(ctx context.Context, svc *Service, logger *zap.Logger) error {
	indexes := map[*mongo.Collection][]mongo.IndexModel{
		svc.Products(): {
			{Keys: bson.D{{Key: "name", Value: 1}}},
			{Keys: bson.D{{Key: "sizes.size", Value: 1}}},
		},
		svc.Orders(): {
			{Keys: bson.D{{Key: "userId", Value: 1}}},
		},
	}

	for coll, models := range indexes {
		names, err := coll.Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", coll.Name(), err)
		}
		logger.Info("Ensured collection indexes",
			zap.String("collection", coll.Name()),
			zap.Strings("indexes", names),
		)
	}

	return nil
}
