// Package domain contains the core domain types for the emotion analyzer.
package domain

// Sentiment labels stored on an AnalysisRecord.
const (
	LabelPositive = "positive"
	LabelNeutral  = "neutral"
	LabelNegative = "negative"
)

// NoteTooShort marks records that skipped the NLU call.
const NoteTooShort = "too_short"

// ModelNone is the model tag for records that were never scored.
const ModelNone = "none"

// Request is the input to the emotion analyzer.
type Request struct {
	ResponseID string  `json:"responseId"`
	QuestionID *string `json:"questionId"`
	Text       string  `json:"text"`
}

// Emotions holds document-level emotion scores, each in [0,1].
type Emotions struct {
	Joy     float64 `json:"joy"`
	Sadness float64 `json:"sadness"`
	Anger   float64 `json:"anger"`
	Fear    float64 `json:"fear"`
	Disgust float64 `json:"disgust"`
}

// Sentiment is a document-level sentiment score and label.
type Sentiment struct {
	Score float64 `json:"score"`
	Label string  `json:"label"`
}

// NeutralSentiment is the zero-valued sentiment.
func NeutralSentiment() Sentiment {
	return Sentiment{Score: 0, Label: LabelNeutral}
}

// NormalizeLabel maps a provider label onto the stored enum.
func NormalizeLabel(label string) string {
	switch label {
	case LabelPositive, LabelNegative, LabelNeutral:
		return label
	default:
		return LabelNeutral
	}
}

// AnalysisRecord is the single persisted entity. It is written once and never updated.
type AnalysisRecord struct {
	ID             string  `json:"id" bson:"_id" dynamodbav:"id"`
	ResponseID     string  `json:"responseId" bson:"responseId" dynamodbav:"responseId"`
	QuestionID     *string `json:"questionId" bson:"questionId" dynamodbav:"questionId"`
	Joy            float64 `json:"joy" bson:"joy" dynamodbav:"joy"`
	Sadness        float64 `json:"sadness" bson:"sadness" dynamodbav:"sadness"`
	Anger          float64 `json:"anger" bson:"anger" dynamodbav:"anger"`
	Fear           float64 `json:"fear" bson:"fear" dynamodbav:"fear"`
	Disgust        float64 `json:"disgust" bson:"disgust" dynamodbav:"disgust"`
	Sentiment      float64 `json:"sentiment" bson:"sentiment" dynamodbav:"sentiment"`
	SentimentLabel string  `json:"sentiment_label" bson:"sentiment_label" dynamodbav:"sentiment_label"`
	Model          string  `json:"model" bson:"model" dynamodbav:"model"`
	ProcessedAt    string  `json:"processedAt" bson:"processedAt" dynamodbav:"processedAt"`
	CreatedAt      string  `json:"createdAt" bson:"createdAt" dynamodbav:"createdAt"`
	TextLen        int     `json:"textLen" bson:"textLen" dynamodbav:"textLen"`
	Note           string  `json:"note,omitempty" bson:"note,omitempty" dynamodbav:"note,omitempty"`
}

// Emotions returns the record's emotion scores.
func (r AnalysisRecord) Emotions() Emotions {
	return Emotions{
		Joy:     r.Joy,
		Sadness: r.Sadness,
		Anger:   r.Anger,
		Fear:    r.Fear,
		Disgust: r.Disgust,
	}
}

// Response is the output from the emotion analyzer.
type Response struct {
	Success    bool       `json:"success"`
	AnalysisID string     `json:"analysisId,omitempty"`
	Emotions   *Emotions  `json:"emotions,omitempty"`
	Sentiment  *Sentiment `json:"sentiment,omitempty"`
	Note       string     `json:"note,omitempty"`
	Error      string     `json:"error,omitempty"`
}
