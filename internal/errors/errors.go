package errors

import (
	"fmt"
	"net/http"

	"github.com/cryptor-go/internal/cryptor"
)

// ErrorCode represents application error codes
type ErrorCode int

const (
	// Client errors (4xx)
	ErrCodeBadRequest   ErrorCode = 400
	ErrCodeUnauthorized ErrorCode = 401
	ErrCodeForbidden    ErrorCode = 403
	ErrCodeNotFound     ErrorCode = 404

	// Server errors (5xx)
	ErrCodeInternal      ErrorCode = 500
	ErrCodeUnimplemented ErrorCode = 501
	ErrCodeEncryption    ErrorCode = 510
	ErrCodeDecryption    ErrorCode = 511
)

// AppError represents a structured application error
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	HTTPStatus int       `json:"-"`
	Cause      error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewBadRequest creates a bad request error
func NewBadRequest(message string) *AppError {
	return &AppError{
		Code:       ErrCodeBadRequest,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewBadRequestWithCause creates a bad request error with cause
func NewBadRequestWithCause(message string, cause error) *AppError {
	return &AppError{
		Code:       ErrCodeBadRequest,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
		Cause:      cause,
	}
}

// NewUnauthorized creates an unauthorized error
func NewUnauthorized(message string) *AppError {
	return &AppError{
		Code:       ErrCodeUnauthorized,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NewForbidden creates a forbidden error
func NewForbidden(message string) *AppError {
	return &AppError{
		Code:       ErrCodeForbidden,
		Message:    message,
		HTTPStatus: http.StatusForbidden,
	}
}

// NewNotFound creates a not found error
func NewNotFound(message string) *AppError {
	return &AppError{
		Code:       ErrCodeNotFound,
		Message:    message,
		HTTPStatus: http.StatusNotFound,
	}
}

// NewInternal creates an internal server error
func NewInternal(message string) *AppError {
	return &AppError{
		Code:       ErrCodeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

// NewInternalWithCause creates an internal server error with cause
func NewInternalWithCause(message string, cause error) *AppError {
	return &AppError{
		Code:       ErrCodeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// NewEncryptionError creates an encryption error with cause
func NewEncryptionError(message string, cause error) *AppError {
	return &AppError{
		Code:       ErrCodeEncryption,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// NewDecryptionError creates a decryption error with cause
func NewDecryptionError(message string, cause error) *AppError {
	return &AppError{
		Code:       ErrCodeDecryption,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
		Cause:      cause,
	}
}

// FromCipher maps a cipher engine error onto the API error surface.
// Parameter problems are the caller's fault; padding failures surface as
// decryption errors without revealing which byte was wrong.
func FromCipher(err error) *AppError {
	if err == nil {
		return nil
	}
	switch cryptor.StatusOf(err) {
	case cryptor.StatusParamError, cryptor.StatusOverflow, cryptor.StatusAlignmentError:
		return NewBadRequestWithCause("invalid cipher parameters", err)
	case cryptor.StatusDecodeError:
		return NewDecryptionError("decryption failed", err)
	case cryptor.StatusUnimplemented:
		return &AppError{
			Code:       ErrCodeUnimplemented,
			Message:    "requested mode is not supported",
			HTTPStatus: http.StatusNotImplemented,
			Cause:      err,
		}
	default:
		return NewInternalWithCause("cipher operation failed", err)
	}
}

// ToHTTPStatus converts an error to HTTP status code
func ToHTTPStatus(err error) int {
	if appErr, ok := err.(*AppError); ok {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}
