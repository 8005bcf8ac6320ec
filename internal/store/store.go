// Package store persists analysis records to the hosted document database.
package store

import (
	"context"
	"fmt"

	"github.com/pricofy/emotion-analyzer/internal/config"
	"github.com/pricofy/emotion-analyzer/internal/domain"
)

// Store creates analysis records. Records are write-once.
type Store interface {
	Create(ctx context.Context, record domain.AnalysisRecord) error
}

// Open connects the store selected by cfg.DBDriver.
func Open(ctx context.Context, cfg config.Config) (Store, error) {
	switch cfg.DBDriver {
	case config.DriverDynamoDB:
		return NewDynamoStore(ctx, DynamoConfig{
			Endpoint:     cfg.DBEndpoint,
			AccessKeyID:  cfg.DBProjectID,
			SecretKey:    cfg.DBAPIKey,
			DatabaseID:   cfg.DBDatabaseID,
			CollectionID: cfg.DBCollectionID,
		})
	case config.DriverMongo:
		return NewMongoStore(ctx, MongoConfig{
			URI:          cfg.DBEndpoint,
			Username:     cfg.DBProjectID,
			Password:     cfg.DBAPIKey,
			DatabaseID:   cfg.DBDatabaseID,
			CollectionID: cfg.DBCollectionID,
		})
	default:
		return nil, fmt.Errorf("%w: unknown DB_DRIVER %q", domain.ErrConfigurationMissing, cfg.DBDriver)
	}
}
