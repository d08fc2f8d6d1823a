package seed

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// Clean deletes every document from each collection. There is no
// confirmation step and no transaction.
func Clean(ctx context.Context, logger *zap.Logger, colls ...Collection) error {
	for _, c := range colls {
		res, err := c.DeleteMany(ctx, bson.M{})
		if err != nil {
			return fmt.Errorf("clear %s: %w", c.Name(), err)
		}
		logger.Info("cleared collection", zap.String("collection", c.Name()), zap.Int64("deleted", res.DeletedCount))
	}
	return nil
}

// Reseed clears coll and inserts docs. A failure between the two phases
// leaves the collection empty.
func Reseed(ctx context.Context, logger *zap.Logger, coll Collection, docs []interface{}) (int64, error) {
	if err := Clean(ctx, logger, coll); err != nil {
		return 0, err
	}
	if len(docs) > 0 {
		if _, err := coll.InsertMany(ctx, docs); err != nil {
			return 0, fmt.Errorf("insert into %s: %w", coll.Name(), err)
		}
	}
	count, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", coll.Name(), err)
	}
	logger.Info("reseeded collection", zap.String("collection", coll.Name()), zap.Int64("count", count))
	return count, nil
}
