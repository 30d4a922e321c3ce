package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound            = errors.New("resource not found")
	ErrAlreadyExists       = errors.New("resource already exists")
	ErrInvalidInput        = errors.New("invalid input")
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrRouteNotConfigured  = errors.New("route not configured")
	ErrUnsupportedProtocol = errors.New("unsupported protocol")
	ErrUnsupportedToken    = errors.New("unsupported token")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrSlippageExceeded    = errors.New("swap output below minimum")
	ErrExternalCall        = errors.New("external call failed")
	ErrTransfersPaused     = errors.New("transfers are paused")
)

// AppError represents application error with HTTP status
type AppError struct {
	Code    int    `json:"code"`
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
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, ErrNotFound)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, ErrInvalidInput)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, message, ErrUnauthorized)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, message, ErrForbidden)
}

// ConfigurationError marks a route/protocol/token that is missing or disabled.
func ConfigurationError(message string) *AppError {
	return NewAppError(http.StatusUnprocessableEntity, message, ErrRouteNotConfigured)
}

// InsufficientFunds marks an allowance or balance shortfall on the pull leg.
func InsufficientFunds(message string) *AppError {
	return NewAppError(http.StatusPaymentRequired, message, ErrInsufficientFunds)
}

// ExternalCallFailure wraps a bridge or swap call that reverted. Propagated,
// never swallowed.
func ExternalCallFailure(err error) *AppError {
	return NewAppError(http.StatusBadGateway, "external call failed", errors.Join(ErrExternalCall, err))
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, "internal server error", err)
}
