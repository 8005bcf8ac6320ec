package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pricofy/emotion-analyzer/internal/domain"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoConnectTimeout = 10 * time.Second

// insertOneAPI is the subset of *mongo.Collection used by MongoStore.
type insertOneAPI interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
}

// MongoConfig configures a MongoStore.
type MongoConfig struct {
	URI          string
	Username     string
	Password     string
	DatabaseID   string
	CollectionID string
}

// MongoStore writes records to a MongoDB collection.
type MongoStore struct {
	client     *mongo.Client
	collection insertOneAPI
}

// NewMongoStore connects to MongoDB. The connection is reused for the life of the process.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(mongoConnectTimeout)
	if cfg.Username != "" {
		opts.SetAuth(options.Credential{
			Username: cfg.Username,
			Password: cfg.Password,
		})
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	slog.Info("[MongoDB] Store initialized",
		slog.String("database", cfg.DatabaseID),
		slog.String("collection", cfg.CollectionID))

	return &MongoStore{
		client:     client,
		collection: client.Database(cfg.DatabaseID).Collection(cfg.CollectionID),
	}, nil
}

// Create inserts a new record. Duplicate ids are rejected by the _id index.
func (s *MongoStore) Create(ctx context.Context, record domain.AnalysisRecord) error {
	if _, err := s.collection.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("%w: [MongoDB] failed to insert record %s: %v", domain.ErrPersistenceFailure, record.ID, err)
	}
	return nil
}

// Close disconnects the underlying client.
func (s *MongoStore) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}
