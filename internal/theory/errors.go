package theory

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes theory-layer errors.
type ErrorCode string

const (
	// ErrCodeReboundName indicates a second binding of an already-bound
	// type name.
	ErrCodeReboundName ErrorCode = "REBOUND_NAME"

	// ErrCodeUnboundBasicType indicates a type expression referencing a
	// generator the type category does not have.
	ErrCodeUnboundBasicType ErrorCode = "UNBOUND_BASIC_TYPE"

	// ErrCodeTypeMismatch indicates a composition of morphism types whose
	// intermediate endpoints disagree.
	ErrCodeTypeMismatch ErrorCode = "TYPE_MISMATCH"

	// ErrCodeOperationType indicates an operation applied to an argument
	// of the wrong type.
	ErrCodeOperationType ErrorCode = "OPERATION_TYPE_ERROR"

	// ErrCodeUnknownOperation indicates an operation name with no
	// registration.
	ErrCodeUnknownOperation ErrorCode = "UNKNOWN_OPERATION"

	// ErrCodeDuplicateOperation indicates a second registration under an
	// operation name.
	ErrCodeDuplicateOperation ErrorCode = "DUPLICATE_OPERATION"
)

// Error is a theory-layer error. Expected and Found carry type expression
// strings for mismatch diagnostics; they are empty otherwise.
type Error struct {
	Code     ErrorCode
	Message  string
	Expected string
	Found    string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Expected != "" || e.Found != "" {
		return fmt.Sprintf("%s: %s (expected %s, found %s)", e.Code, e.Message, e.Expected, e.Found)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsTypeMismatch reports whether err is a composition type mismatch.
func IsTypeMismatch(err error) bool {
	var te *Error
	if errors.As(err, &te) {
		return te.Code == ErrCodeTypeMismatch
	}
	return false
}

// IsOperationTypeError reports whether err is a mis-typed operation
// application.
func IsOperationTypeError(err error) bool {
	var te *Error
	if errors.As(err, &te) {
		return te.Code == ErrCodeOperationType
	}
	return false
}

func newError(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}
