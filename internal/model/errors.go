package model

import (
	"errors"
	"fmt"
)

// MutationErrorCode categorizes model construction errors.
type MutationErrorCode string

const (
	// ErrCodeDuplicateID indicates an object or morphism id already in use.
	ErrCodeDuplicateID MutationErrorCode = "DUPLICATE_ID"

	// ErrCodeUnboundType indicates a type not registered on the theory.
	ErrCodeUnboundType MutationErrorCode = "UNBOUND_TYPE"

	// ErrCodeDanglingReference indicates a dom or cod referencing an
	// object the model does not contain.
	ErrCodeDanglingReference MutationErrorCode = "DANGLING_REFERENCE"
)

// MutationError reports a rejected model mutation. The mutation aborts
// and the model keeps its prior, still-consistent state.
type MutationError struct {
	Code    MutationErrorCode
	Entity  string // id of the object or morphism being added
	Message string
}

// Error implements the error interface.
func (e *MutationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Entity, e.Message)
}

// IsDuplicateID reports whether err is a duplicate-id mutation error.
func IsDuplicateID(err error) bool {
	return hasCode(err, ErrCodeDuplicateID)
}

// IsUnboundType reports whether err is an unbound-type mutation error.
func IsUnboundType(err error) bool {
	return hasCode(err, ErrCodeUnboundType)
}

// IsDanglingReference reports whether err is a dangling-reference
// mutation error.
func IsDanglingReference(err error) bool {
	return hasCode(err, ErrCodeDanglingReference)
}

func hasCode(err error, code MutationErrorCode) bool {
	var me *MutationError
	if errors.As(err, &me) {
		return me.Code == code
	}
	return false
}
