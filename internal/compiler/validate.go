package compiler

import (
	"fmt"
	"strings"

	"github.com/roach88/motif/internal/model"
	"github.com/roach88/motif/internal/theory"
)

// Validation error codes (E100-E199)
const (
	ErrUnsupportedDecl = "E100" // unsupported declaration type for validation

	// TheoryDecl errors (E101-E109)
	ErrTheoryInvalidKind  = "E101" // unknown theory kind
	ErrTheoryDuplicate    = "E102" // duplicate type name
	ErrTheoryUnknownObRef = "E103" // morphism type endpoint names unknown object type

	// ModelDecl errors (E110-E119)
	ErrModelNoTheory    = "E110" // model names no theory
	ErrModelDuplicateID = "E111" // duplicate object/morphism id
	ErrModelEmptyType   = "E112" // declaration with empty type name
	ErrModelUnknownRef  = "E113" // morphism endpoint names no declared object
)

// ValidationError represents a declaration schema error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate validates compiled declarations against schema rules.
// Returns all errors found (does not fail-fast).
// Supports TheoryDecl and ModelDecl.
func Validate(v any) []ValidationError {
	switch decl := v.(type) {
	case *TheoryDecl:
		return validateTheoryDecl(decl)
	case TheoryDecl:
		return validateTheoryDecl(&decl)
	case *ModelDecl:
		return validateModelDecl(decl)
	case ModelDecl:
		return validateModelDecl(&decl)
	default:
		return []ValidationError{{
			Field:   "type",
			Message: fmt.Sprintf("unsupported declaration type: %T", v),
			Code:    ErrUnsupportedDecl,
		}}
	}
}

func validateTheoryDecl(decl *TheoryDecl) []ValidationError {
	var errs []ValidationError

	if !theory.ValidKinds[theory.Kind(decl.Kind)] {
		errs = append(errs, ValidationError{
			Field:   "kind",
			Message: fmt.Sprintf("unknown theory kind %q", decl.Kind),
			Code:    ErrTheoryInvalidKind,
		})
	}

	seen := map[string]bool{}
	obNames := map[string]bool{}
	for _, ot := range decl.ObjectTypes {
		if seen[ot.Name] {
			errs = append(errs, ValidationError{
				Field:   "object_types." + ot.Name,
				Message: "duplicate type name",
				Code:    ErrTheoryDuplicate,
			})
		}
		seen[ot.Name] = true
		obNames[ot.Name] = true
	}
	for _, mt := range decl.MorphismTypes {
		if seen[mt.Name] {
			errs = append(errs, ValidationError{
				Field:   "morphism_types." + mt.Name,
				Message: "duplicate type name",
				Code:    ErrTheoryDuplicate,
			})
		}
		seen[mt.Name] = true

		for _, ref := range []struct{ field, name string }{
			{"src", mt.Src},
			{"tgt", mt.Tgt},
		} {
			if !obNames[ref.name] {
				errs = append(errs, ValidationError{
					Field:   "morphism_types." + mt.Name + "." + ref.field,
					Message: fmt.Sprintf("unknown object type %q", ref.name),
					Code:    ErrTheoryUnknownObRef,
				})
			}
		}
	}

	return errs
}

func validateModelDecl(decl *ModelDecl) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(decl.Theory) == "" {
		errs = append(errs, ValidationError{
			Field:   "theory",
			Message: "model must name a theory",
			Code:    ErrModelNoTheory,
		})
	}

	obIDs := map[string]bool{}
	for _, od := range decl.Objects {
		id := string(od.ID)
		if obIDs[id] {
			errs = append(errs, ValidationError{
				Field:   "objects." + id,
				Message: "duplicate object id",
				Code:    ErrModelDuplicateID,
			})
		}
		obIDs[id] = true
		if strings.TrimSpace(od.ObTypeName) == "" {
			errs = append(errs, ValidationError{
				Field:   "objects." + id + ".type",
				Message: "empty type name",
				Code:    ErrModelEmptyType,
			})
		}
	}

	morIDs := map[string]bool{}
	for _, md := range decl.Morphisms {
		id := string(md.ID)
		if morIDs[id] {
			errs = append(errs, ValidationError{
				Field:   "morphisms." + id,
				Message: "duplicate morphism id",
				Code:    ErrModelDuplicateID,
			})
		}
		morIDs[id] = true
		if strings.TrimSpace(md.MorTypeName) == "" {
			errs = append(errs, ValidationError{
				Field:   "morphisms." + id + ".type",
				Message: "empty type name",
				Code:    ErrModelEmptyType,
			})
		}
		for _, ref := range []struct {
			field string
			id    *model.ObjectID
		}{
			{"dom", md.Dom},
			{"cod", md.Cod},
		} {
			if ref.id != nil && !obIDs[string(*ref.id)] {
				errs = append(errs, ValidationError{
					Field:   "morphisms." + id + "." + ref.field,
					Message: fmt.Sprintf("references undeclared object %q", string(*ref.id)),
					Code:    ErrModelUnknownRef,
				})
			}
		}
	}

	return errs
}
