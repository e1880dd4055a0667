package theory

import (
	"github.com/roach88/motif/internal/cat"
)

// Kind tags the family of a double theory.
type Kind string

const (
	// KindDiscrete is a discrete double theory: basic types only, trivial
	// modalities. Motif search is defined for this family.
	KindDiscrete Kind = "discrete"

	// KindModal is a double theory with modalities on types.
	KindModal Kind = "modal"

	// KindTabulator is a double theory with tabulator constructions.
	KindTabulator Kind = "tabulator"
)

// ValidKinds defines allowed theory kinds.
var ValidKinds = map[Kind]bool{
	KindDiscrete:  true,
	KindModal:     true,
	KindTabulator: true,
}

// ObOp is a named unary operation on object types.
type ObOp struct {
	Name   string
	Arg    ObType
	Result ObType
}

// MorOp is a named unary operation on morphism types.
type MorOp struct {
	Name   string
	Arg    MorType
	Result MorType
}

// DoubleTheory is a typed signature: a category of types plus name
// binding tables and typed operations.
//
// A theory is built once, then immutable and shared read-only by every
// model created against it. Construction is single-threaded; after that,
// all methods are safe for concurrent use.
type DoubleTheory struct {
	name  string
	kind  Kind
	types *cat.FpCategory

	obNames  []string
	obTypes  map[string]ObType
	morNames []string
	morTypes map[string]MorType

	obOps  map[string]ObOp
	morOps map[string]MorOp
}

// New creates an empty double theory of the given kind with a fresh type
// category. The category is populated through TypeCategory during theory
// construction.
func New(name string, kind Kind) *DoubleTheory {
	return &DoubleTheory{
		name:     name,
		kind:     kind,
		types:    cat.NewFpCategory(),
		obTypes:  make(map[string]ObType),
		morTypes: make(map[string]MorType),
		obOps:    make(map[string]ObOp),
		morOps:   make(map[string]MorOp),
	}
}

// Name returns the theory's name.
func (t *DoubleTheory) Name() string { return t.name }

// Kind returns the theory's family tag.
func (t *DoubleTheory) Kind() Kind { return t.kind }

// TypeCategory returns the underlying category of types. A theory owns
// exactly one category; mutate it only during theory construction.
func (t *DoubleTheory) TypeCategory() *cat.FpCategory { return t.types }

// BindObType registers a human-facing name for an object type expression.
// Rebinding an already-bound name is an error, as is an expression whose
// basic types are not generators of the type category.
func (t *DoubleTheory) BindObType(name string, ot ObType) error {
	if _, ok := t.obTypes[name]; ok {
		return newError(ErrCodeReboundName, "object type name %q is already bound", name)
	}
	if err := t.checkObType(ot); err != nil {
		return err
	}
	t.obTypes[name] = ot
	t.obNames = append(t.obNames, name)
	return nil
}

// BindMorType registers a human-facing name for a morphism type
// expression. Rebinding an already-bound name is an error.
func (t *DoubleTheory) BindMorType(name string, mt MorType) error {
	if _, ok := t.morTypes[name]; ok {
		return newError(ErrCodeReboundName, "morphism type name %q is already bound", name)
	}
	if err := t.checkMorType(mt); err != nil {
		return err
	}
	t.morTypes[name] = mt
	t.morNames = append(t.morNames, name)
	return nil
}

// ObTypeByName resolves a bound object type name.
func (t *DoubleTheory) ObTypeByName(name string) (ObType, bool) {
	ot, ok := t.obTypes[name]
	return ot, ok
}

// MorTypeByName resolves a bound morphism type name.
func (t *DoubleTheory) MorTypeByName(name string) (MorType, bool) {
	mt, ok := t.morTypes[name]
	return mt, ok
}

// ObTypeNames returns bound object type names in binding order.
func (t *DoubleTheory) ObTypeNames() []string {
	out := make([]string, len(t.obNames))
	copy(out, t.obNames)
	return out
}

// MorTypeNames returns bound morphism type names in binding order.
func (t *DoubleTheory) MorTypeNames() []string {
	out := make([]string, len(t.morNames))
	copy(out, t.morNames)
	return out
}

// ObTypeBound reports whether some bound name resolves to an object type
// structurally equal to ot.
func (t *DoubleTheory) ObTypeBound(ot ObType) bool {
	for _, name := range t.obNames {
		if ObTypeEqual(t.obTypes[name], ot) {
			return true
		}
	}
	return false
}

// MorTypeBound reports whether some bound name resolves to a morphism
// type structurally equal to mt.
func (t *DoubleTheory) MorTypeBound(mt MorType) bool {
	for _, name := range t.morNames {
		if MorTypeEqual(t.morTypes[name], mt) {
			return true
		}
	}
	return false
}

// NameOfObType returns the first bound name resolving to an object type
// structurally equal to ot. Used when persisting models by type name.
func (t *DoubleTheory) NameOfObType(ot ObType) (string, bool) {
	for _, name := range t.obNames {
		if ObTypeEqual(t.obTypes[name], ot) {
			return name, true
		}
	}
	return "", false
}

// NameOfMorType returns the first bound name resolving to a morphism type
// structurally equal to mt.
func (t *DoubleTheory) NameOfMorType(mt MorType) (string, bool) {
	for _, name := range t.morNames {
		if MorTypeEqual(t.morTypes[name], mt) {
			return name, true
		}
	}
	return "", false
}

// Src computes the source object type of a morphism type by walking the
// type category.
// Precondition: mt is well formed over this theory (bound basic names).
func (t *DoubleTheory) Src(mt MorType) ObType {
	switch x := mt.(type) {
	case BasicMor:
		g, ok := t.types.Mor(string(x))
		if !ok {
			return nil
		}
		return BasicOb(t.types.Name(t.types.Dom(g)))
	case HomMor:
		return x.Base
	case ModeAppMor:
		return ModeAppOb{Modality: x.Modality, Arg: t.Src(x.Arg)}
	case CompositeMor:
		return t.Src(x.Parts[0])
	default:
		return nil
	}
}

// Tgt computes the target object type of a morphism type.
// Precondition: mt is well formed over this theory.
func (t *DoubleTheory) Tgt(mt MorType) ObType {
	switch x := mt.(type) {
	case BasicMor:
		g, ok := t.types.Mor(string(x))
		if !ok {
			return nil
		}
		return BasicOb(t.types.Name(t.types.Cod(g)))
	case HomMor:
		return x.Base
	case ModeAppMor:
		return ModeAppOb{Modality: x.Modality, Arg: t.Tgt(x.Arg)}
	case CompositeMor:
		return t.Tgt(x.Parts[len(x.Parts)-1])
	default:
		return nil
	}
}

// SrcOfName resolves a bound morphism type name and computes its source.
func (t *DoubleTheory) SrcOfName(name string) (ObType, bool) {
	mt, ok := t.morTypes[name]
	if !ok {
		return nil, false
	}
	return t.Src(mt), true
}

// TgtOfName resolves a bound morphism type name and computes its target.
func (t *DoubleTheory) TgtOfName(name string) (ObType, bool) {
	mt, ok := t.morTypes[name]
	if !ok {
		return nil, false
	}
	return t.Tgt(mt), true
}

// ComposeTypes composes t1 then t2. Defined only when tgt(t1) == src(t2);
// returns ErrCodeTypeMismatch otherwise. The result is a flat composite.
func (t *DoubleTheory) ComposeTypes(t1, t2 MorType) (MorType, error) {
	tgt, src := t.Tgt(t1), t.Src(t2)
	if !ObTypeEqual(tgt, src) {
		return nil, &Error{
			Code:     ErrCodeTypeMismatch,
			Message:  "morphism types do not compose",
			Expected: tgt.String(),
			Found:    src.String(),
		}
	}
	parts := make([]MorType, 0, 2)
	parts = appendFlat(parts, t1)
	parts = appendFlat(parts, t2)
	return CompositeMor{Parts: parts}, nil
}

func appendFlat(parts []MorType, mt MorType) []MorType {
	if c, ok := mt.(CompositeMor); ok {
		return append(parts, c.Parts...)
	}
	return append(parts, mt)
}

// AddObOp registers an object operation. Duplicate names are an error.
func (t *DoubleTheory) AddObOp(op ObOp) error {
	if _, ok := t.obOps[op.Name]; ok {
		return newError(ErrCodeDuplicateOperation, "object operation %q is already registered", op.Name)
	}
	if err := t.checkObType(op.Arg); err != nil {
		return err
	}
	if err := t.checkObType(op.Result); err != nil {
		return err
	}
	t.obOps[op.Name] = op
	return nil
}

// AddMorOp registers a morphism operation. Duplicate names are an error.
func (t *DoubleTheory) AddMorOp(op MorOp) error {
	if _, ok := t.morOps[op.Name]; ok {
		return newError(ErrCodeDuplicateOperation, "morphism operation %q is already registered", op.Name)
	}
	if err := t.checkMorType(op.Arg); err != nil {
		return err
	}
	if err := t.checkMorType(op.Result); err != nil {
		return err
	}
	t.morOps[op.Name] = op
	return nil
}

// ApplyObOp applies a registered object operation to an argument type.
// Returns ErrCodeOperationType when the argument has the wrong type.
func (t *DoubleTheory) ApplyObOp(name string, arg ObType) (ObType, error) {
	op, ok := t.obOps[name]
	if !ok {
		return nil, newError(ErrCodeUnknownOperation, "object operation %q is not registered", name)
	}
	if !ObTypeEqual(op.Arg, arg) {
		return nil, &Error{
			Code:     ErrCodeOperationType,
			Message:  "object operation " + name + " applied to wrong type",
			Expected: op.Arg.String(),
			Found:    arg.String(),
		}
	}
	return op.Result, nil
}

// ApplyMorOp applies a registered morphism operation to an argument type.
// Returns ErrCodeOperationType when the argument has the wrong type.
func (t *DoubleTheory) ApplyMorOp(name string, arg MorType) (MorType, error) {
	op, ok := t.morOps[name]
	if !ok {
		return nil, newError(ErrCodeUnknownOperation, "morphism operation %q is not registered", name)
	}
	if !MorTypeEqual(op.Arg, arg) {
		return nil, &Error{
			Code:     ErrCodeOperationType,
			Message:  "morphism operation " + name + " applied to wrong type",
			Expected: op.Arg.String(),
			Found:    arg.String(),
		}
	}
	return op.Result, nil
}

// checkObType verifies every basic type in the expression is a generator
// of the type category.
func (t *DoubleTheory) checkObType(ot ObType) error {
	switch x := ot.(type) {
	case BasicOb:
		if _, ok := t.types.Ob(string(x)); !ok {
			return newError(ErrCodeUnboundBasicType, "basic object type %q is not a type generator", string(x))
		}
		return nil
	case ModeAppOb:
		return t.checkObType(x.Arg)
	default:
		return newError(ErrCodeUnboundBasicType, "nil object type expression")
	}
}

// checkMorType verifies every basic type in the expression is a generator
// of the type category.
func (t *DoubleTheory) checkMorType(mt MorType) error {
	switch x := mt.(type) {
	case BasicMor:
		if _, ok := t.types.Mor(string(x)); !ok {
			return newError(ErrCodeUnboundBasicType, "basic morphism type %q is not a type generator", string(x))
		}
		return nil
	case HomMor:
		return t.checkObType(x.Base)
	case ModeAppMor:
		return t.checkMorType(x.Arg)
	case CompositeMor:
		for _, p := range x.Parts {
			if err := t.checkMorType(p); err != nil {
				return err
			}
		}
		return nil
	default:
		return newError(ErrCodeUnboundBasicType, "nil morphism type expression")
	}
}
