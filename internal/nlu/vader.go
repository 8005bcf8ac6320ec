package nlu

import (
	"context"
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/pricofy/emotion-analyzer/internal/domain"
	"github.com/russross/blackfriday/v2"
)

// ModelVader tags records scored by the offline VADER analyzer.
const ModelVader = "vader"

// VADER compound thresholds for the sentiment label.
const (
	vaderPositive = 0.20
	vaderNegative = -0.20
)

var (
	markdownLink = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	bareURL      = regexp.MustCompile(`https?://\S+|www\.\S+`)
	htmlTag      = regexp.MustCompile(`<[^>]*>`)
)

// Vader scores sentiment locally with no network calls. It has no emotion
// model, so every emotion score is 0.
type Vader struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVader creates a new Vader analyzer.
func NewVader() *Vader {
	return &Vader{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Model returns the model tag for this analyzer.
func (v *Vader) Model() string {
	return ModelVader
}

// Analyze scores text. It only fails if ctx is already done.
func (v *Vader) Analyze(ctx context.Context, text string) (domain.Emotions, domain.Sentiment, error) {
	if err := ctx.Err(); err != nil {
		return domain.Emotions{}, domain.NeutralSentiment(), err
	}

	score := v.analyzer.PolarityScores(plainText(text)).Compound

	label := domain.LabelNeutral
	if score >= vaderPositive {
		label = domain.LabelPositive
	} else if score <= vaderNegative {
		label = domain.LabelNegative
	}

	return domain.Emotions{}, domain.Sentiment{Score: score, Label: label}, nil
}

// plainText renders markdown and strips markup and links.
func plainText(input string) string {
	input = markdownLink.ReplaceAllString(input, "$1")
	rendered := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	text := htmlTag.ReplaceAllString(string(rendered), " ")
	text = bareURL.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}
