package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for the ingestion and rebuild flows.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("already exists")
	ErrExtraction   = errors.New("extraction failed")
	ErrStorage      = errors.New("storage failure")
	ErrUpstream     = errors.New("upstream failure")
	ErrNotFound     = errors.New("not found")
)

// AppError represents an application-specific error with an HTTP status code.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// MapError maps a sentinel error to an AppError with an appropriate HTTP
// status code.
func MapError(err error) *AppError {
	if err == nil {
		return nil
	}

	// Check for existing AppError
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	if errors.Is(err, ErrInvalidInput) {
		return NewAppError(http.StatusBadRequest, "Invalid request", err)
	}
	if errors.Is(err, ErrConflict) {
		return NewAppError(http.StatusBadRequest, "Document already exists.", err)
	}
	if errors.Is(err, ErrNotFound) {
		return NewAppError(http.StatusNotFound, "Resource not found", err)
	}
	if errors.Is(err, ErrExtraction) {
		return NewAppError(http.StatusInternalServerError, "Failed to extract text", err)
	}
	if errors.Is(err, ErrUpstream) {
		return NewAppError(http.StatusInternalServerError, "Upstream service failed", err)
	}

	return NewAppError(http.StatusInternalServerError, "Internal server error", err)
}
