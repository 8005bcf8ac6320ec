package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/pricofy/emotion-analyzer/internal/domain"
)

// putItemAPI is the subset of the DynamoDB client used by DynamoStore.
type putItemAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// DynamoConfig configures a DynamoStore.
type DynamoConfig struct {
	Endpoint     string
	AccessKeyID  string
	SecretKey    string
	DatabaseID   string
	CollectionID string
}

// DynamoStore writes records to a DynamoDB table named "<database>-<collection>".
type DynamoStore struct {
	client putItemAPI
	table  string
}

// NewDynamoStore creates a DynamoStore from the default AWS config with
// static credentials and an endpoint override.
func NewDynamoStore(ctx context.Context, cfg DynamoConfig) (*DynamoStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	s := newDynamoStore(client, TableName(cfg.DatabaseID, cfg.CollectionID))
	slog.Info("[DynamoDB] Store initialized", slog.String("table", s.table))
	return s, nil
}

func newDynamoStore(client putItemAPI, table string) *DynamoStore {
	return &DynamoStore{client: client, table: table}
}

// TableName joins the database and collection identifiers into a table name.
func TableName(databaseID, collectionID string) string {
	return databaseID + "-" + collectionID
}

// Create puts a new record. An existing item with the same id is never overwritten.
func (s *DynamoStore) Create(ctx context.Context, record domain.AnalysisRecord) error {
	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal record: %v", domain.ErrPersistenceFailure, err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	})
	if err != nil {
		return fmt.Errorf("%w: [DynamoDB] failed to put record %s: %v", domain.ErrPersistenceFailure, record.ID, err)
	}
	return nil
}
