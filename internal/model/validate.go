package model

import (
	"fmt"

	"github.com/roach88/motif/internal/theory"
)

// Validation error codes (E200-E299)
const (
	ErrMissingDomain   = "E201" // morphism has no declared domain
	ErrMissingCodomain = "E202" // morphism has no declared codomain
	ErrTypeMismatch    = "E203" // endpoint type disagrees with src/tgt of the morphism type
)

// ValidationError reports one violation found by Validate. Expected and
// Found carry type expression strings for E203; they are empty otherwise.
type ValidationError struct {
	Code     string `json:"code"`
	Entity   string `json:"entity"`
	Message  string `json:"message"`
	Expected string `json:"expected,omitempty"`
	Found    string `json:"found,omitempty"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Expected != "" || e.Found != "" {
		return fmt.Sprintf("[%s] %s: %s (expected %s, found %s)", e.Code, e.Entity, e.Message, e.Expected, e.Found)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Entity, e.Message)
}

// Validate checks every morphism of the model for endpoint presence and
// type compatibility. All violations are collected; Validate never stops
// at the first one. A nil result means the model is valid. A model with
// zero objects and zero morphisms is vacuously valid.
//
// For each morphism m with type T:
//   - dom(m) undefined reports E201, else ob_type(dom) must equal src(T)
//   - cod(m) undefined reports E202, else ob_type(cod) must equal tgt(T)
func (m *Model) Validate() []ValidationError {
	var errs []ValidationError

	for _, mor := range m.morphisms {
		errs = append(errs, m.validateEndpoint(mor, mor.Dom, m.theory.Src(mor.Type), ErrMissingDomain, "domain")...)
		errs = append(errs, m.validateEndpoint(mor, mor.Cod, m.theory.Tgt(mor.Type), ErrMissingCodomain, "codomain")...)
	}

	return errs
}

func (m *Model) validateEndpoint(mor Morphism, end *ObjectID, want theory.ObType, missingCode, side string) []ValidationError {
	if end == nil {
		return []ValidationError{{
			Code:    missingCode,
			Entity:  string(mor.ID),
			Message: fmt.Sprintf("morphism has no declared %s", side),
		}}
	}
	got, ok := m.ObType(*end)
	if !ok {
		// Unreachable through AddMor, which rejects dangling endpoints
		// and the model never removes objects.
		return nil
	}
	if !theory.ObTypeEqual(got, want) {
		return []ValidationError{{
			Code:     ErrTypeMismatch,
			Entity:   string(mor.ID),
			Message:  fmt.Sprintf("%s %q has the wrong type", side, *end),
			Expected: want.String(),
			Found:    got.String(),
		}}
	}
	return nil
}
