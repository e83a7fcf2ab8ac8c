package apperror

import "net/http"

// AppError is an error carrying the HTTP status code it should be reported
// with, plus an optional underlying cause that is never exposed to callers.
type AppError struct {
	Code    int    // HTTP status code (400, 404, 409, ...)
	Message string // User-facing error message
	Err     error  // Underlying error, if any
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Constructors for the engine's error taxonomy: validation (400), missing
// reference (404) and resource-unavailable conflicts (409).

func Validation(message string) *AppError {
	return New(http.StatusBadRequest, message)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message)
}

func Conflict(message string) *AppError {
	return New(http.StatusConflict, message)
}
