// database/database.go
package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Collection names match the pluralised model names the front end and the
// existing data already use.
const (
	DataAssets            = "dataassets"
	Domains               = "domains"
	Policies              = "policies"
	Portfolios            = "portfolios"
	ProgramDocumentations = "programdocumentations"
	Users                 = "users"
	TeamMembers           = "teammembers"
)

// DB is a scoped MongoDB connection. Open it with Connect and release it with
// Close; nothing else holds the client.
type DB struct {
	Client   *mongo.Client
	Database *mongo.Database
	logger   *zap.Logger
}

func Connect(ctx context.Context, uri, dbName string, logger *zap.Logger) (*DB, error) {
	if uri == "" {
		return nil, errors.New("MONGO_URI is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	clientOptions := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(20 * time.Second).
		SetServerSelectionTimeout(15 * time.Second).
		SetSocketTimeout(20 * time.Second).
		SetMaxPoolSize(50)

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to create MongoDB client: %w", err)
	}

	pingCtx, cancelPing := context.WithTimeout(ctx, 10*time.Second)
	defer cancelPing()

	if err = client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logger.Info("connected to MongoDB", zap.String("database", dbName))
	return &DB{Client: client, Database: client.Database(dbName), logger: logger}, nil
}

// WithConnection opens a connection, runs fn and always closes it.
func WithConnection(ctx context.Context, uri, dbName string, logger *zap.Logger, fn func(*DB) error) (err error) {
	db, err := Connect(ctx, uri, dbName, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(context.Background()); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return fn(db)
}

func (db *DB) Collection(name string) *mongo.Collection {
	return db.Database.Collection(name)
}

func (db *DB) Ping(ctx context.Context) error {
	if db == nil || db.Client == nil {
		return errors.New("database not connected")
	}
	return db.Client.Ping(ctx, readpref.Primary())
}

// EnsureIndexes creates the unique index on users.email.
func (db *DB) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	_, err := db.Collection(Users).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return fmt.Errorf("create users.email index: %w", err)
	}
	return nil
}

func (db *DB) Close(ctx context.Context) error {
	if db == nil || db.Client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.Client.Disconnect(ctx); err != nil {
		db.logger.Warn("MongoDB disconnect warning", zap.Error(err))
		return fmt.Errorf("disconnect MongoDB: %w", err)
	}
	db.logger.Info("MongoDB connection closed")
	return nil
}
