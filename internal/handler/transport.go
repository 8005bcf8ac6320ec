package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/pricofy/emotion-analyzer/internal/domain"
)

// maxBodyBytes bounds request bodies read over HTTP.
const maxBodyBytes = 1 << 20

// proxyEnvelope holds the fields shared by API Gateway REST and HTTP API events.
type proxyEnvelope struct {
	Body            *string         `json:"body"`
	IsBase64Encoded bool            `json:"isBase64Encoded"`
	RequestContext  json.RawMessage `json:"requestContext"`
}

// RequestBody extracts the request payload from a Lambda event. API Gateway
// proxy events carry it in "body"; a direct invocation is the payload itself.
func RequestBody(event json.RawMessage) ([]byte, error) {
	var env proxyEnvelope
	if err := json.Unmarshal(event, &env); err != nil {
		return event, nil
	}
	if env.Body == nil && len(env.RequestContext) == 0 {
		return event, nil
	}
	if env.Body == nil {
		return []byte{}, nil
	}
	if env.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(*env.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: body is not valid base64", domain.ErrInvalidPayload)
		}
		return decoded, nil
	}
	return []byte(*env.Body), nil
}

// ProxyResponse renders a status and response as an API Gateway proxy response.
func ProxyResponse(status int, resp domain.Response) events.APIGatewayProxyResponse {
	body, err := json.Marshal(resp)
	if err != nil {
		status = http.StatusInternalServerError
		body = []byte(`{"success":false,"error":"failed to encode response"}`)
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}
}

// HandleEvent runs the handler for a raw Lambda event.
func (h *Handler) HandleEvent(ctx context.Context, event json.RawMessage) events.APIGatewayProxyResponse {
	body, err := RequestBody(event)
	if err != nil {
		return ProxyResponse(h.Failure(err))
	}
	return ProxyResponse(h.Handle(ctx, body))
}

// ServeHTTP serves the handler over plain HTTP.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		WriteJSON(w, h.logger)(h.Failure(fmt.Errorf("%w: failed to read body", domain.ErrInvalidPayload)))
		return
	}
	WriteJSON(w, h.logger)(h.Handle(r.Context(), raw))
}

// WriteJSON returns a writer that serializes a status and response to w.
func WriteJSON(w http.ResponseWriter, logger *slog.Logger) func(int, domain.Response) {
	return func(status int, resp domain.Response) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if err := json.NewEncoder(w).Encode(resp); err != nil && logger != nil {
			logger.Error("[HTTP] Failed to encode response", slog.String("error", err.Error()))
		}
	}
}
