package errors

import (
	"errors"
	"fmt"
	"net/http"
)

type AppError struct {
	Code       string
	Message    string
	Detail     string
	StatusCode int
	Err        error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail

	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err

	return e
}

const (
	ErrCodeValidation     = "VALIDATION_ERROR"
	ErrCodeAuth           = "AUTH_ERROR"
	ErrCodeSessionExpired = "SESSION_EXPIRED"
	ErrCodeBadRequest     = "BAD_REQUEST"
	ErrCodeNotFound       = "NOT_FOUND"
	ErrCodeForbidden      = "FORBIDDEN"
	ErrCodeRequestFailed  = "REQUEST_FAILED"
	ErrCodeUnavailable    = "SERVICE_UNAVAILABLE"
)

// ValidationError is a local failure caught before any network call is made.
func ValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message, http.StatusBadRequest)
}

// AuthError covers rejected credentials and expired sessions.
func AuthError(message string) *AppError {
	return NewAppError(ErrCodeAuth, message, http.StatusUnauthorized)
}

func SessionExpiredError(message string) *AppError {
	return NewAppError(ErrCodeSessionExpired, message, http.StatusUnauthorized)
}

func ForbiddenError(message string) *AppError {
	return NewAppError(ErrCodeForbidden, message, http.StatusForbidden)
}

func NotFoundError(message string) *AppError {
	return NewAppError(ErrCodeNotFound, message, http.StatusNotFound)
}

// RequestError is any remote API failure that is not an authentication
// rejection: the status code and server-supplied message are kept as-is
// so the caller can decide between notifying and navigating.
func RequestError(statusCode int, message string) *AppError {
	return NewAppError(ErrCodeRequestFailed, message, statusCode)
}

// UnavailableError reports a call that could not complete at the transport
// level (connection refused, timeout), before any status code existed.
func UnavailableError(message string) *AppError {
	return NewAppError(ErrCodeUnavailable, message, http.StatusServiceUnavailable)
}

// FromStatus maps a non-2xx remote response onto the error taxonomy.
func FromStatus(statusCode int, message string) *AppError {
	switch statusCode {
	case http.StatusUnauthorized:
		return AuthError(message)
	case http.StatusForbidden:
		return ForbiddenError(message)
	case http.StatusNotFound:
		return NotFoundError(message)
	default:
		return RequestError(statusCode, message)
	}
}

func IsAppError(err error) (*AppError, bool) {
	var appError *AppError

	if errors.As(err, &appError) {
		return appError, true
	}

	return nil, false
}

func IsAuthError(err error) bool {
	if appErr, ok := IsAppError(err); ok {
		return appErr.Code == ErrCodeAuth || appErr.Code == ErrCodeSessionExpired
	}

	return false
}

func IsValidationError(err error) bool {
	if appErr, ok := IsAppError(err); ok {
		return appErr.Code == ErrCodeValidation
	}

	return false
}

// field validation error.
func AddValidationError(field, reason string) *AppError {
	return ValidationError(fmt.Sprintf("Invalid field '%s': %s", field, reason))
}

// MessageOr prefers the server-supplied message for user-facing notifications
// and falls back to a generic one when there is none.
func MessageOr(err error, fallback string) string {
	if appErr, ok := IsAppError(err); ok && appErr.Message != "" {
		return appErr.Message
	}

	return fallback
}
