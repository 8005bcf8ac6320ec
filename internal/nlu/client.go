package nlu

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/pricofy/emotion-analyzer/internal/domain"
)

const (
	// ModelWatson tags records scored by the hosted NLU provider.
	ModelWatson = "watson-nlu"

	analyzePath    = "/v1/analyze"
	apiVersion     = "2022-04-07"
	maxErrorBody   = 512
	defaultTimeout = 10 * time.Second
)

// Client calls the hosted NLU provider's analyze endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	language   string
}

// ClientConfig configures a Client.
type ClientConfig struct {
	BaseURL  string
	APIKey   string
	Language string
	Timeout  time.Duration
	// HTTPClient overrides the default client. Timeout is ignored when set.
	HTTPClient *http.Client
}

// analyzeRequest is the request body for the analyze endpoint.
type analyzeRequest struct {
	Text     string          `json:"text"`
	Language string          `json:"language,omitempty"`
	Features analyzeFeatures `json:"features"`
}

type analyzeFeatures struct {
	Emotion   documentFeature `json:"emotion"`
	Sentiment documentFeature `json:"sentiment"`
}

type documentFeature struct {
	Document bool `json:"document"`
}

// NewClient creates a new Client.
func NewClient(cfg ClientConfig) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	slog.Info("[NLUClient] Initializing client",
		slog.String("url", cfg.BaseURL),
		slog.String("language", cfg.Language),
		slog.Duration("timeout", httpClient.Timeout))

	return &Client{
		httpClient: httpClient,
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		language:   cfg.Language,
	}
}

// Model returns the model tag for this provider.
func (c *Client) Model() string {
	return ModelWatson
}

// Analyze requests document-level emotion and sentiment for text.
// Transport errors, timeouts and non-2xx responses are returned as ErrUpstreamFailure.
func (c *Client) Analyze(ctx context.Context, text string) (domain.Emotions, domain.Sentiment, error) {
	body, err := json.Marshal(analyzeRequest{
		Text:     text,
		Language: c.language,
		Features: analyzeFeatures{
			Emotion:   documentFeature{Document: true},
			Sentiment: documentFeature{Document: true},
		},
	})
	if err != nil {
		return domain.Emotions{}, domain.Sentiment{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := c.baseURL + analyzePath + "?version=" + apiVersion
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return domain.Emotions{}, domain.Sentiment{}, fmt.Errorf("%w: failed to build request: %v", domain.ErrUpstreamFailure, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth("apikey", c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Emotions{}, domain.Sentiment{}, fmt.Errorf("%w: request failed: %v", domain.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Emotions{}, domain.Sentiment{}, fmt.Errorf("%w: failed to read response: %v", domain.ErrUpstreamFailure, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.Emotions{}, domain.Sentiment{}, fmt.Errorf("%w: status %d: %s",
			domain.ErrUpstreamFailure, resp.StatusCode, preview(respBody))
	}

	slog.Debug("[NLUClient] Analyze request successful",
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(start)))

	return Normalize(respBody)
}

func preview(body []byte) string {
	if len(body) > maxErrorBody {
		return string(body[:maxErrorBody])
	}
	return string(body)
}
