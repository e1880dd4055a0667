package motif

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes motif-search errors.
type ErrorCode string

const (
	// ErrCodeUnsupportedTheory indicates the two models are not
	// comparable: different theories, or a theory family the search does
	// not support.
	ErrCodeUnsupportedTheory ErrorCode = "UNSUPPORTED_THEORY"
)

// SearchError reports a motif search that could not run. The search never
// attempts a partial, unsound match; incomparable inputs fail whole.
type SearchError struct {
	Code    ErrorCode
	Message string
}

// Error implements the error interface.
func (e *SearchError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsUnsupportedTheory reports whether err is an incomparable-models error.
func IsUnsupportedTheory(err error) bool {
	var se *SearchError
	if errors.As(err, &se) {
		return se.Code == ErrCodeUnsupportedTheory
	}
	return false
}
