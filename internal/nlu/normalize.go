package nlu

import (
	"fmt"

	"github.com/pricofy/emotion-analyzer/internal/domain"
	"github.com/tidwall/gjson"
)

// Response paths in the provider's analyze payload.
const (
	emotionPath        = "emotion.document.emotion"
	sentimentScorePath = "sentiment.document.score"
	sentimentLabelPath = "sentiment.document.label"
)

// Normalize extracts emotion and sentiment scores from a provider response.
// Missing fields default to 0 and the neutral label; only a body that is not
// JSON at all is an error.
func Normalize(body []byte) (domain.Emotions, domain.Sentiment, error) {
	if !gjson.ValidBytes(body) {
		return domain.Emotions{}, domain.NeutralSentiment(), fmt.Errorf("%w: response is not valid JSON", domain.ErrUpstreamFailure)
	}

	doc := gjson.ParseBytes(body)
	emotion := doc.Get(emotionPath)

	emotions := domain.Emotions{
		Joy:     unit(emotion.Get("joy")),
		Sadness: unit(emotion.Get("sadness")),
		Anger:   unit(emotion.Get("anger")),
		Fear:    unit(emotion.Get("fear")),
		Disgust: unit(emotion.Get("disgust")),
	}

	sentiment := domain.Sentiment{
		Score: doc.Get(sentimentScorePath).Float(),
		Label: domain.NormalizeLabel(doc.Get(sentimentLabelPath).String()),
	}

	return emotions, sentiment, nil
}

// unit reads a numeric score clamped to [0,1].
func unit(r gjson.Result) float64 {
	if r.Type != gjson.Number {
		return 0
	}
	v := r.Float()
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
