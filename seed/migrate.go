// Package seed loads static sample data into MongoDB: the mock-data
// migration, clean-and-reseed loaders for portfolios and program
// documentation, and the import/destroy seeder.
package seed

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Collection is the subset of *mongo.Collection the loaders need.
type Collection interface {
	Name() string
	DeleteMany(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)
	InsertMany(ctx context.Context, documents []interface{}, opts ...*options.InsertManyOptions) (*mongo.InsertManyResult, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
}

// Result counts are derived from the driver's inserted-id list, not from a
// per-row ledger. Indeterminate is set when the bulk insert failed as a whole:
// with ordered:false some rows may still have been written, and the counts
// then say nothing about how many.
type Result struct {
	Processed     int  `json:"processed"`
	Inserted      int  `json:"inserted"`
	Errors        int  `json:"errors"`
	Indeterminate bool `json:"indeterminate,omitempty"`
}

type Migrator struct {
	logger *zap.Logger
	now    func() time.Time
}

func NewMigrator(logger *zap.Logger) *Migrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Migrator{logger: logger, now: time.Now}
}

// MigrateDataAssets transforms and inserts data.DataAssets. A nil data means
// the mock file could not be loaded; the step is skipped and nil returned.
func (m *Migrator) MigrateDataAssets(ctx context.Context, coll Collection, data *MockData) *Result {
	if data == nil {
		m.logger.Info("no mock data loaded, skipping data asset migration")
		return nil
	}
	assets := TransformDataAssets(data.DataAssets, m.now().UTC())
	docs := make([]interface{}, 0, len(assets))
	for i := range assets {
		docs = append(docs, &assets[i])
	}
	m.logger.Info("migrating data assets", zap.Int("count", len(docs)))
	return m.insertUnordered(ctx, coll, docs)
}

// MigrateDomains inserts data.Domains as they are, stamped with timestamps.
func (m *Migrator) MigrateDomains(ctx context.Context, coll Collection, data *MockData) *Result {
	if data == nil {
		m.logger.Info("no mock data loaded, skipping domain migration")
		return nil
	}
	now := m.now().UTC()
	docs := make([]interface{}, 0, len(data.Domains))
	for i := range data.Domains {
		d := data.Domains[i]
		d.Touch(now)
		docs = append(docs, &d)
	}
	m.logger.Info("migrating domains", zap.Int("count", len(docs)))
	return m.insertUnordered(ctx, coll, docs)
}

func (m *Migrator) insertUnordered(ctx context.Context, coll Collection, docs []interface{}) *Result {
	if len(docs) == 0 {
		return &Result{}
	}

	res, err := coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil {
		m.logger.Error("bulk insert failed", zap.String("collection", coll.Name()), zap.Error(err))
		var bwe mongo.BulkWriteException
		if errors.As(err, &bwe) {
			for _, we := range bwe.WriteErrors {
				m.logger.Warn("document write error",
					zap.String("collection", coll.Name()),
					zap.Int("index", we.Index),
					zap.Int("code", we.Code),
					zap.String("message", we.Message),
				)
			}
		}
		m.logger.Warn("insert counts are indeterminate; some documents may have been written",
			zap.String("collection", coll.Name()))
		return &Result{Processed: 0, Inserted: 0, Errors: 1, Indeterminate: true}
	}

	inserted := len(res.InsertedIDs)
	result := &Result{Processed: len(docs), Inserted: inserted, Errors: len(docs) - inserted}
	m.logger.Info("bulk insert complete",
		zap.String("collection", coll.Name()),
		zap.Int("processed", result.Processed),
		zap.Int("inserted", result.Inserted),
		zap.Int("errors", result.Errors),
	)
	return result
}
