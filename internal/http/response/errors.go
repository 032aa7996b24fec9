package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Kr4ToS117/Site-Location/internal/domain"
	"github.com/Kr4ToS117/Site-Location/pkg/logger"
)

// ErrorResponse is the structured JSON error body returned by every
// failing endpoint.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Common error codes
const (
	CodeValidation       = "VALIDATION_ERROR"
	CodeInvalidDateRange = "INVALID_DATE_RANGE"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeNotFound         = "NOT_FOUND"
	CodeDatesUnavailable = "DATES_UNAVAILABLE"
	CodeStorageError     = "STORAGE_ERROR"
	CodeInternalError    = "INTERNAL_ERROR"
)

// WriteError writes a structured JSON error response
func WriteError(w http.ResponseWriter, statusCode int, message, code string) {
	writeBody(w, statusCode, ErrorResponse{Error: message, Code: code})
}

// WriteValidationError includes the per-field detail.
func WriteValidationError(w http.ResponseWriter, verr *domain.ValidationError) {
	writeBody(w, http.StatusUnprocessableEntity, ErrorResponse{
		Error:  verr.Error(),
		Code:   CodeValidation,
		Fields: verr.Fields,
	})
}

// WriteDomainError maps a domain error onto the HTTP taxonomy. Unknown
// errors become a 500 without leaking internals.
func WriteDomainError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	var serr *domain.StorageError

	switch {
	case errors.As(err, &verr):
		WriteValidationError(w, verr)
	case errors.Is(err, domain.ErrInvalidDateRange):
		WriteError(w, http.StatusBadRequest, err.Error(), CodeInvalidDateRange)
	case errors.Is(err, domain.ErrInvalidInput):
		WriteError(w, http.StatusBadRequest, err.Error(), CodeInvalidInput)
	case errors.Is(err, domain.ErrDatesUnavailable):
		WriteError(w, http.StatusBadRequest, err.Error(), CodeDatesUnavailable)
	case errors.Is(err, domain.ErrNotFound):
		WriteError(w, http.StatusNotFound, err.Error(), CodeNotFound)
	case errors.As(err, &serr):
		WriteError(w, http.StatusInternalServerError, "storage failure", CodeStorageError)
	default:
		WriteError(w, http.StatusInternalServerError, "internal error", CodeInternalError)
	}
}

// Convenience writers
func BadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message, CodeInvalidInput)
}

func NotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message, CodeNotFound)
}

func InternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, message, CodeInternalError)
}

func writeBody(w http.ResponseWriter, statusCode int, body ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("failed to encode error response", "error", err)
	}
}
