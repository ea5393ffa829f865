// Package httpx holds the error envelope and the error classification used
// by the HTTP handlers.
package httpx

import (
	"errors"
	"net/http"

	"claimsapi/internal/service"
)

// FilesInitiatedMessage is the body returned once file generation succeeded.
const FilesInitiatedMessage = "Files generation initiated successfully"

// ErrorBody is the standardized error response body.
type ErrorBody struct {
	RequestID string      `json:"request_id"`
	Error     ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine-readable code and a safe message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Classify maps a service error onto an HTTP status, code and client-safe message.
// Validation messages are echoed; anything unclassified is a 500.
func Classify(err error) (status int, code, msg string) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, "VALIDATION_FAILED", ve.Error()
	case errors.Is(err, service.ErrIDRequired):
		return http.StatusBadRequest, "INVALID_ID", "claim id is required"
	case errors.Is(err, service.ErrReaderNil):
		return http.StatusBadRequest, "BAD_REQUEST", "request body is required"
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "claim not found"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error"
	}
}
