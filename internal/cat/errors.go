package cat

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes category-layer errors.
type ErrorCode string

const (
	// ErrCodePathMismatch indicates two paths with incompatible endpoints.
	ErrCodePathMismatch ErrorCode = "PATH_MISMATCH"

	// ErrCodeDuplicateGenerator indicates a generator name already in use.
	ErrCodeDuplicateGenerator ErrorCode = "DUPLICATE_GENERATOR"

	// ErrCodeUnknownGenerator indicates a reference to a generator that
	// does not exist in the category.
	ErrCodeUnknownGenerator ErrorCode = "UNKNOWN_GENERATOR"

	// ErrCodeEquationEndpoints indicates an equation between paths whose
	// endpoints disagree.
	ErrCodeEquationEndpoints ErrorCode = "EQUATION_ENDPOINTS"
)

// Error is a category-layer error with a machine-readable code.
// All category errors are data; nothing in this package panics on bad
// caller input except documented unchecked preconditions.
type Error struct {
	Code    ErrorCode
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsPathMismatch reports whether err is a path-endpoint mismatch.
// Uses errors.As to handle wrapped errors.
func IsPathMismatch(err error) bool {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code == ErrCodePathMismatch
	}
	return false
}

func newError(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}
