// Package responses writes the JSON envelopes every HTTP handler returns:
// {"data": ...} on success and {"error": {"code", "message", "details"}} on failure.
package responses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/light-bringer/promo-engine/internal/pkg/logger"
)

// Error codes shared by every handler.
const (
	CodeBadRequest       = "bad_request"
	CodeValidationFailed = "validation_failed"
	CodeNotFound         = "not_found"
	CodeConflict         = "conflict"
	CodeInternal         = "internal"
)

// APIError is an error with its HTTP rendering attached.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.cause
}

// NewError builds an APIError.
func NewError(status int, code, message string) *APIError {
	return &APIError{Status: status, Code: code, Message: message}
}

// BadRequest wraps a malformed request error.
func BadRequest(err error, details any) *APIError {
	return &APIError{Status: http.StatusBadRequest, Code: CodeBadRequest, Message: err.Error(), Details: details, cause: err}
}

// Internal hides err behind a generic message.
func Internal(err error) *APIError {
	return &APIError{Status: http.StatusInternalServerError, Code: CodeInternal, Message: "internal server error", cause: err}
}

type successEnvelope struct {
	Data any `json:"data"`
}

type errorEnvelope struct {
	Error *APIError `json:"error"`
}

// WriteSuccess writes data with status 200.
func WriteSuccess(w http.ResponseWriter, data any) {
	WriteSuccessStatus(w, http.StatusOK, data)
}

// WriteSuccessStatus writes data with the given status.
func WriteSuccessStatus(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, successEnvelope{Data: data})
}

// WriteError renders err. Errors that are not an *APIError become a 500.
// Server errors are logged with their cause.
func WriteError(ctx context.Context, log *logger.Logger, w http.ResponseWriter, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		apiErr = Internal(err)
	}

	if log != nil {
		if apiErr.Status >= http.StatusInternalServerError {
			log.Error(ctx, "request.error", err)
		} else {
			log.InfoFields(ctx, "request.rejected", map[string]any{"error_code": apiErr.Code, "error": apiErr.Message})
		}
	}

	writeJSON(w, apiErr.Status, errorEnvelope{Error: apiErr})
}

// WriteNoContent writes status 204.
func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
