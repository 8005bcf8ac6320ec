package domain

import (
	"errors"
	"net/http"
)

// Error kinds. Callers wrap these with fmt.Errorf("%w") and test with errors.Is.
var (
	ErrConfigurationMissing = errors.New("configuration missing")
	ErrInvalidPayload       = errors.New("invalid payload")
	ErrUpstreamFailure      = errors.New("upstream failure")
	ErrPersistenceFailure   = errors.New("persistence failure")
)

// StatusFor maps an error to the HTTP status returned to the caller.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidPayload):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// KindOf returns a short name for the error kind, used in log lines.
func KindOf(err error) string {
	switch {
	case errors.Is(err, ErrConfigurationMissing):
		return "ConfigurationMissing"
	case errors.Is(err, ErrInvalidPayload):
		return "InvalidPayload"
	case errors.Is(err, ErrUpstreamFailure):
		return "UpstreamFailure"
	case errors.Is(err, ErrPersistenceFailure):
		return "PersistenceFailure"
	default:
		return "Unknown"
	}
}
