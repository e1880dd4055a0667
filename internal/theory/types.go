package theory

import (
	"fmt"
	"strings"
)

// Modality names a type modality (e.g., negation in a signed category).
type Modality string

// ObType is a sealed interface of object type expressions. Only BasicOb
// and ModeAppOb implement it.
type ObType interface {
	obType() // Sealed
	String() string
}

// BasicOb is a basic object type, naming an object generator of the
// theory's type category.
type BasicOb string

func (BasicOb) obType() {}

func (t BasicOb) String() string { return string(t) }

// ModeAppOb applies a modality to an object type.
type ModeAppOb struct {
	Modality Modality
	Arg      ObType
}

func (ModeAppOb) obType() {}

func (t ModeAppOb) String() string {
	return fmt.Sprintf("%s(%s)", t.Modality, t.Arg)
}

// MorType is a sealed interface of morphism type expressions. Only
// BasicMor, HomMor, ModeAppMor, and CompositeMor implement it.
type MorType interface {
	morType() // Sealed
	String() string
}

// BasicMor is a basic morphism type, naming a morphism generator of the
// theory's type category.
type BasicMor string

func (BasicMor) morType() {}

func (t BasicMor) String() string { return string(t) }

// HomMor is the hom construction on an object type: the type of
// endomorphisms over Base. Its src and tgt are both Base.
type HomMor struct {
	Base ObType
}

func (HomMor) morType() {}

func (t HomMor) String() string {
	return fmt.Sprintf("Hom(%s)", t.Base)
}

// ModeAppMor applies a modality to a morphism type. Its endpoints are the
// modality applied to the endpoints of Arg.
type ModeAppMor struct {
	Modality Modality
	Arg      MorType
}

func (ModeAppMor) morType() {}

func (t ModeAppMor) String() string {
	return fmt.Sprintf("%s(%s)", t.Modality, t.Arg)
}

// CompositeMor is a composite of two or more morphism types, produced by
// ComposeTypes. Parts are kept flat: no part is itself a CompositeMor.
type CompositeMor struct {
	Parts []MorType
}

func (CompositeMor) morType() {}

func (t CompositeMor) String() string {
	parts := make([]string, len(t.Parts))
	for i, p := range t.Parts {
		parts[i] = p.String()
	}
	return strings.Join(parts, ";")
}

// ObTypeEqual reports structural equality of object type expressions.
func ObTypeEqual(a, b ObType) bool {
	switch x := a.(type) {
	case BasicOb:
		y, ok := b.(BasicOb)
		return ok && x == y
	case ModeAppOb:
		y, ok := b.(ModeAppOb)
		return ok && x.Modality == y.Modality && ObTypeEqual(x.Arg, y.Arg)
	default:
		return false
	}
}

// MorTypeEqual reports structural equality of morphism type expressions.
func MorTypeEqual(a, b MorType) bool {
	switch x := a.(type) {
	case BasicMor:
		y, ok := b.(BasicMor)
		return ok && x == y
	case HomMor:
		y, ok := b.(HomMor)
		return ok && ObTypeEqual(x.Base, y.Base)
	case ModeAppMor:
		y, ok := b.(ModeAppMor)
		return ok && x.Modality == y.Modality && MorTypeEqual(x.Arg, y.Arg)
	case CompositeMor:
		y, ok := b.(CompositeMor)
		if !ok || len(x.Parts) != len(y.Parts) {
			return false
		}
		for i := range x.Parts {
			if !MorTypeEqual(x.Parts[i], y.Parts[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
