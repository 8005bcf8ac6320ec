// Package handler provides the emotion analysis handler.
package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/pricofy/emotion-analyzer/internal/domain"
	"github.com/pricofy/emotion-analyzer/internal/nlu"
	"github.com/pricofy/emotion-analyzer/internal/retry"
	"github.com/pricofy/emotion-analyzer/internal/store"
	"github.com/pricofy/emotion-analyzer/internal/textbounds"
)

// isoLayout is ISO-8601 with millisecond precision.
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

// maxStackLen bounds the stack trace written to failure logs.
const maxStackLen = 2000

// Deps are the collaborators of a Handler. Analyzer and Store are required.
type Deps struct {
	Analyzer      nlu.Analyzer
	Store         store.Store
	Policy        retry.Policy
	MinTextLength int
	Logger        *slog.Logger
	Now           func() time.Time
	NewID         func() string
}

// Handler validates a payload, scores it and persists exactly one record.
type Handler struct {
	analyzer nlu.Analyzer
	store    store.Store
	policy   retry.Policy
	minLen   int
	logger   *slog.Logger
	now      func() time.Time
	newID    func() string
}

// New creates a new Handler, filling unset optional dependencies with defaults.
func New(d Deps) *Handler {
	h := &Handler{
		analyzer: d.Analyzer,
		store:    d.Store,
		policy:   d.Policy,
		minLen:   d.MinTextLength,
		logger:   d.Logger,
		now:      d.Now,
		newID:    d.NewID,
	}
	if h.policy.Attempts == 0 {
		h.policy = retry.DefaultPolicy
	}
	if h.minLen <= 0 {
		h.minLen = textbounds.DefaultMinChars
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}
	if h.now == nil {
		h.now = time.Now
	}
	if h.newID == nil {
		h.newID = uuid.NewString
	}
	return h
}

type analysis struct {
	emotions  domain.Emotions
	sentiment domain.Sentiment
}

// Handle processes one raw request body and returns the status code and response.
// Errors never escape: they are logged and folded into the response.
func (h *Handler) Handle(ctx context.Context, raw []byte) (int, domain.Response) {
	h.logger.Info("[Handler] Analysis started", slog.Int("bodyBytes", len(raw)))

	req, err := Parse(raw)
	if err != nil {
		h.logger.Warn("[Handler] Invalid payload", slog.String("error", err.Error()))
		return h.Failure(err)
	}

	text := textbounds.Truncate(textbounds.Normalize(req.Text), textbounds.MaxChars)
	textLen := textbounds.Len(text)

	log := h.logger.With(
		slog.String("responseId", req.ResponseID),
		slog.Any("questionId", req.QuestionID),
	)
	log.Info("[Handler] Payload accepted",
		slog.Int("textLen", textLen),
		slog.Int("approxTokens", textbounds.EstimateTokens(text)))

	if textbounds.TooShort(text, h.minLen) {
		record := h.newRecord(req, textLen, domain.ModelNone, analysis{sentiment: domain.NeutralSentiment()})
		record.Note = domain.NoteTooShort

		if err := h.store.Create(ctx, record); err != nil {
			return h.Failure(errors.WithStack(err))
		}

		log.Info("[Handler] Short text saved without analysis",
			slog.String("analysisId", record.ID),
			slog.Int("minTextLength", h.minLen))

		emotions := record.Emotions()
		return http.StatusOK, domain.Response{
			Success:    true,
			AnalysisID: record.ID,
			Emotions:   &emotions,
			Note:       record.Note,
		}
	}

	policy := h.policy
	policy.OnRetry = func(attempt int, err error) {
		log.Warn("[Handler] NLU call failed, retrying",
			slog.Int("attempt", attempt),
			slog.Duration("delay", policy.Delay),
			slog.String("error", err.Error()))
	}

	result, err := retry.Do(ctx, policy, func(ctx context.Context) (analysis, error) {
		emotions, sentiment, err := h.analyzer.Analyze(ctx, text)
		if err != nil {
			return analysis{}, err
		}
		return analysis{emotions: emotions, sentiment: sentiment}, nil
	})
	if err != nil {
		return h.Failure(errors.WithStack(upstream(err)))
	}

	record := h.newRecord(req, textLen, h.analyzer.Model(), result)
	if err := h.store.Create(ctx, record); err != nil {
		return h.Failure(errors.WithStack(err))
	}

	log.Info("[Handler] Analysis saved",
		slog.String("analysisId", record.ID),
		slog.String("model", record.Model),
		slog.String("sentimentLabel", record.SentimentLabel))

	emotions := record.Emotions()
	sentiment := domain.Sentiment{Score: record.Sentiment, Label: record.SentimentLabel}
	return http.StatusOK, domain.Response{
		Success:    true,
		AnalysisID: record.ID,
		Emotions:   &emotions,
		Sentiment:  &sentiment,
	}
}

// Failure logs err and returns the uniform failure response for it.
func (h *Handler) Failure(err error) (int, domain.Response) {
	return Fail(h.logger, err)
}

// Fail is Failure for callers that have no Handler, such as when the handler
// could not be built because configuration is missing.
func Fail(logger *slog.Logger, err error) (int, domain.Response) {
	status := domain.StatusFor(err)
	if status >= 500 {
		logger.Error("[Handler] Analysis failed",
			slog.String("kind", domain.KindOf(err)),
			slog.String("error", err.Error()),
			slog.String("stack", stackOf(err)))
	}
	return status, domain.Response{Success: false, Error: err.Error()}
}

func (h *Handler) newRecord(req domain.Request, textLen int, model string, a analysis) domain.AnalysisRecord {
	ts := h.now().UTC().Format(isoLayout)
	return domain.AnalysisRecord{
		ID:             h.newID(),
		ResponseID:     req.ResponseID,
		QuestionID:     req.QuestionID,
		Joy:            a.emotions.Joy,
		Sadness:        a.emotions.Sadness,
		Anger:          a.emotions.Anger,
		Fear:           a.emotions.Fear,
		Disgust:        a.emotions.Disgust,
		Sentiment:      a.sentiment.Score,
		SentimentLabel: domain.NormalizeLabel(a.sentiment.Label),
		Model:          model,
		ProcessedAt:    ts,
		CreatedAt:      ts,
		TextLen:        textLen,
	}
}

// upstream marks err as an NLU failure unless it already carries that kind.
func upstream(err error) error {
	if errors.Is(err, domain.ErrUpstreamFailure) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrUpstreamFailure, err)
}

func stackOf(err error) string {
	s := fmt.Sprintf("%+v", err)
	if len(s) > maxStackLen {
		return s[:maxStackLen]
	}
	return s
}
