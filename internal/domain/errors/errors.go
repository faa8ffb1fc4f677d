package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound          = errors.New("resource not found")
	ErrAlreadyExists     = errors.New("resource already exists")
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrRateLimited       = errors.New("rate limited")
	ErrTooSoon           = errors.New("resend cooldown active")
	ErrInvalidOrExpired  = errors.New("code invalid or expired")
	ErrPhoneNotVerified  = errors.New("phone not verified")
	ErrSendFailure       = errors.New("external send failure")
	ErrSmsNotConfigured  = errors.New("sms provider not configured")
	ErrInvalidCredential = errors.New("invalid credentials")
)

// Stable machine-readable error codes returned to clients.
const (
	CodeValidationError     = "VALIDATION_ERROR"
	CodeRateLimited         = "RATE_LIMITED"
	CodeTooSoon             = "TOO_SOON"
	CodeInvalidOrExpired    = "INVALID_OR_EXPIRED"
	CodePhoneNotVerified    = "PHONE_NOT_VERIFIED"
	CodeExternalSendFailure = "EXTERNAL_SEND_FAILURE"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeNotFound            = "NOT_FOUND"
	CodeConflict            = "CONFLICT"
	CodeInternalError       = "INTERNAL_ERROR"
)

// AppError is an application error carrying an HTTP status, a stable code
// and a user-facing message. The wrapped error is never serialized.
type AppError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, CodeNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeValidationError, message, ErrInvalidInput)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, CodeUnauthorized, message, ErrUnauthorized)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, CodeConflict, message, ErrAlreadyExists)
}

func RateLimited(message string) *AppError {
	return NewAppError(http.StatusTooManyRequests, CodeRateLimited, message, ErrRateLimited)
}

func TooSoon(message string) *AppError {
	return NewAppError(http.StatusTooManyRequests, CodeTooSoon, message, ErrTooSoon)
}

func InvalidOrExpired(message string) *AppError {
	return NewAppError(http.StatusBadRequest, CodeInvalidOrExpired, message, ErrInvalidOrExpired)
}

func PhoneNotVerified(message string) *AppError {
	return NewAppError(http.StatusForbidden, CodePhoneNotVerified, message, ErrPhoneNotVerified)
}

func ExternalSendFailure(message string) *AppError {
	return NewAppError(http.StatusBadGateway, CodeExternalSendFailure, message, ErrSendFailure)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, CodeInternalError, "Error interno del servidor", err)
}
