package handler

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pricofy/emotion-analyzer/internal/domain"
)

// Parse decodes and validates a request body. A body that is not a JSON
// object with the expected field types is an invalid payload, the same as a
// missing field.
func Parse(raw []byte) (domain.Request, error) {
	var req domain.Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return domain.Request{}, fmt.Errorf("%w: body must be a JSON object with string fields", domain.ErrInvalidPayload)
	}

	if err := validateRequest(req); err != nil {
		return domain.Request{}, err
	}

	req.ResponseID = strings.TrimSpace(req.ResponseID)
	if req.QuestionID != nil && strings.TrimSpace(*req.QuestionID) == "" {
		req.QuestionID = nil
	}
	return req, nil
}

// validateRequest checks the request is valid.
func validateRequest(req domain.Request) error {
	if strings.TrimSpace(req.ResponseID) == "" {
		return fmt.Errorf("%w: responseId is required", domain.ErrInvalidPayload)
	}
	if strings.TrimSpace(req.Text) == "" {
		return fmt.Errorf("%w: text must be a non-empty string", domain.ErrInvalidPayload)
	}
	return nil
}
