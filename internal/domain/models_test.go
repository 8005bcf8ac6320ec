package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLabel(t *testing.T) {
	tests := []struct {
		label    string
		expected string
	}{
		{"positive", LabelPositive},
		{"negative", LabelNegative},
		{"neutral", LabelNeutral},
		{"", LabelNeutral},
		{"mixed", LabelNeutral},
		{"POSITIVE", LabelNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeLabel(tt.label))
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"nil", nil, http.StatusOK},
		{"invalid payload", fmt.Errorf("%w: text is required", ErrInvalidPayload), http.StatusBadRequest},
		{"config", fmt.Errorf("%w: NLU_URL", ErrConfigurationMissing), http.StatusInternalServerError},
		{"upstream", fmt.Errorf("%w: boom", ErrUpstreamFailure), http.StatusInternalServerError},
		{"persistence", ErrPersistenceFailure, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusFor(tt.err))
		})
	}
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, "UpstreamFailure", KindOf(fmt.Errorf("call: %w", ErrUpstreamFailure)))
	assert.Equal(t, "PersistenceFailure", KindOf(ErrPersistenceFailure))
	assert.Equal(t, "Unknown", KindOf(errors.New("other")))
}

func TestAnalysisRecord_Emotions(t *testing.T) {
	r := AnalysisRecord{Joy: 0.1, Sadness: 0.2, Anger: 0.3, Fear: 0.4, Disgust: 0.5}
	assert.Equal(t, Emotions{Joy: 0.1, Sadness: 0.2, Anger: 0.3, Fear: 0.4, Disgust: 0.5}, r.Emotions())
}
