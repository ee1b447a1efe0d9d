package schema

import (
	"errors"
	"fmt"
)

// Error codes for structured error reporting.
const (
	ErrCodeEmptyInput            = "EMPTY_INPUT"
	ErrCodeGraphCapacityExceeded = "GRAPH_CAPACITY_EXCEEDED"
	ErrCodeValidationFailed      = "VALIDATION_FAILED"
	ErrCodeInvalidRequest        = "INVALID_REQUEST"
	ErrCodeNormalizationDegraded = "NORMALIZATION_DEGRADED"
	ErrCodeModelUnavailable      = "MODEL_UNAVAILABLE"
	ErrCodeGenerationFailed      = "GENERATION_FAILED"
	ErrCodeCircuitOpen           = "CIRCUIT_OPEN"
	ErrCodeTimeout               = "TIMEOUT"
	ErrCodeNotFound              = "NOT_FOUND"
	ErrCodeStore                 = "STORE_ERROR"
)

// Error is the structured error type shared by every layer of the solver.
type Error struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
	Cause   error          `json:"-"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new Error.
func NewError(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// NewErrorf creates a new Error with a formatted message.
func NewErrorf(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithCause attaches an underlying cause.
func (e *Error) WithCause(err error) *Error {
	e.Cause = err
	return e
}

// WithDetails attaches key-value details.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

// IsRetryable reports whether an operation failing with this error may be retried.
// Only failures of the external generative call are worth another attempt.
func (e *Error) IsRetryable() bool {
	switch e.Code {
	case ErrCodeGenerationFailed, ErrCodeTimeout:
		return true
	default:
		return false
	}
}

// CodeOf returns the code of the first *Error in err's chain, or "" if there is none.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code string) bool {
	return err != nil && CodeOf(err) == code
}
