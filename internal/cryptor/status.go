package cryptor

import (
	"errors"
	"fmt"
)

// Status represents an operation result code
type Status int32

const (
	// StatusSuccess indicates the operation completed
	StatusSuccess Status = 0

	// StatusParamError indicates an invalid or incompatible parameter
	StatusParamError Status = -4300
	// StatusBufferTooSmall indicates a caller-supplied output buffer is insufficient
	StatusBufferTooSmall Status = -4301
	// StatusMemoryFailure indicates an allocation failure
	StatusMemoryFailure Status = -4302
	// StatusAlignmentError indicates an input/output alignment violation
	StatusAlignmentError Status = -4303
	// StatusDecodeError indicates malformed input, e.g. bad padding on decrypt
	StatusDecodeError Status = -4304
	// StatusUnimplemented indicates the requested function is not supported
	StatusUnimplemented Status = -4305
	// StatusOverflow indicates length arithmetic overflowed
	StatusOverflow Status = -4306
	// StatusRNGFailure indicates the random generator failed
	StatusRNGFailure Status = -4307
)

// String returns the status name
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusParamError:
		return "param error"
	case StatusBufferTooSmall:
		return "buffer too small"
	case StatusMemoryFailure:
		return "memory failure"
	case StatusAlignmentError:
		return "alignment error"
	case StatusDecodeError:
		return "decode error"
	case StatusUnimplemented:
		return "unimplemented"
	case StatusOverflow:
		return "overflow"
	case StatusRNGFailure:
		return "rng failure"
	default:
		return fmt.Sprintf("status(%d)", int32(s))
	}
}

// Error represents a structured cryptor error carrying a status code
type Error struct {
	Status  Status
	Message string
	Cause   error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Status, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Status, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target carries the same status
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return other.Status == e.Status
	}
	return false
}

// NewParamError creates a parameter error
func NewParamError(format string, args ...interface{}) *Error {
	return &Error{Status: StatusParamError, Message: fmt.Sprintf(format, args...)}
}

// NewDecodeError creates a decode error
func NewDecodeError(message string) *Error {
	return &Error{Status: StatusDecodeError, Message: message}
}

// NewUnimplemented creates an unimplemented error
func NewUnimplemented(format string, args ...interface{}) *Error {
	return &Error{Status: StatusUnimplemented, Message: fmt.Sprintf(format, args...)}
}

// NewOverflow creates an overflow error
func NewOverflow(message string) *Error {
	return &Error{Status: StatusOverflow, Message: message}
}

// NewRNGFailure creates an RNG failure error with cause
func NewRNGFailure(message string, cause error) *Error {
	return &Error{Status: StatusRNGFailure, Message: message, Cause: cause}
}

// StatusOf extracts the status code from an error chain.
// Errors that do not carry a Status map to StatusParamError.
func StatusOf(err error) Status {
	if err == nil {
		return StatusSuccess
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return StatusParamError
}
