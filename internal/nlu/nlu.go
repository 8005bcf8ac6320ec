// Package nlu scores text for emotion and sentiment.
package nlu

import (
	"context"

	"github.com/pricofy/emotion-analyzer/internal/domain"
)

// Analyzer scores a document-level text blob.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (domain.Emotions, domain.Sentiment, error)
	// Model identifies the scoring source stored on each record.
	Model() string
}
