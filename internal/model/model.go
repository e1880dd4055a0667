package model

import (
	"fmt"

	"github.com/roach88/motif/internal/theory"
)

// ObjectID identifies an object within one model. Caller supplied.
type ObjectID string

// MorphismID identifies a morphism within one model. Caller supplied.
type MorphismID string

// Object is a typed object of a model.
type Object struct {
	ID   ObjectID
	Type theory.ObType
}

// Morphism is a typed morphism of a model. Dom and Cod are optional:
// a morphism may be declared before its endpoints are known.
type Morphism struct {
	ID   MorphismID
	Type theory.MorType
	Dom  *ObjectID
	Cod  *ObjectID
}

// View is the capability set shared by every model representation,
// whatever family of theory it instantiates. Concrete representations
// (the discrete Model here, or future modal/tabulator variants) sit
// behind this interface rather than behind per-theory generics.
type View interface {
	Theory() *theory.DoubleTheory
	ObType(id ObjectID) (theory.ObType, bool)
	MorType(id MorphismID) (theory.MorType, bool)
	Dom(id MorphismID) (ObjectID, bool)
	Cod(id MorphismID) (ObjectID, bool)
	Objects() []Object
	Morphisms() []Morphism
}

// Model is the discrete-theory model representation: finite sets of typed
// objects and typed morphisms with optional endpoints.
type Model struct {
	theory    *theory.DoubleTheory
	objects   []Object
	morphisms []Morphism
	obIndex   map[ObjectID]int
	morIndex  map[MorphismID]int
}

var _ View = (*Model)(nil)

// New creates an empty model against a theory. The theory is shared
// read-only and must already be fully constructed.
func New(th *theory.DoubleTheory) *Model {
	return &Model{
		theory:   th,
		obIndex:  make(map[ObjectID]int),
		morIndex: make(map[MorphismID]int),
	}
}

// Theory returns the theory this model instantiates.
func (m *Model) Theory() *theory.DoubleTheory {
	return m.theory
}

// AddOb adds a typed object. Fails with DUPLICATE_ID if id is already
// present and UNBOUND_TYPE if obType is not registered on the theory.
func (m *Model) AddOb(id ObjectID, obType theory.ObType) error {
	if _, ok := m.obIndex[id]; ok {
		return &MutationError{
			Code:    ErrCodeDuplicateID,
			Entity:  string(id),
			Message: "object id already present",
		}
	}
	if !m.theory.ObTypeBound(obType) {
		return &MutationError{
			Code:    ErrCodeUnboundType,
			Entity:  string(id),
			Message: fmt.Sprintf("object type %s is not registered on theory %q", obType, m.theory.Name()),
		}
	}
	m.obIndex[id] = len(m.objects)
	m.objects = append(m.objects, Object{ID: id, Type: obType})
	return nil
}

// AddMor adds a typed morphism. Dom and cod are optional; when present
// they must reference existing objects (DANGLING_REFERENCE otherwise).
// The morphism type must be registered (UNBOUND_TYPE otherwise).
//
// Type compatibility of the endpoints is deliberately not checked here;
// that is Validate's job, so models can be built in any order.
func (m *Model) AddMor(id MorphismID, dom, cod *ObjectID, morType theory.MorType) error {
	if _, ok := m.morIndex[id]; ok {
		return &MutationError{
			Code:    ErrCodeDuplicateID,
			Entity:  string(id),
			Message: "morphism id already present",
		}
	}
	if !m.theory.MorTypeBound(morType) {
		return &MutationError{
			Code:    ErrCodeUnboundType,
			Entity:  string(id),
			Message: fmt.Sprintf("morphism type %s is not registered on theory %q", morType, m.theory.Name()),
		}
	}
	for _, end := range []*ObjectID{dom, cod} {
		if end == nil {
			continue
		}
		if _, ok := m.obIndex[*end]; !ok {
			return &MutationError{
				Code:    ErrCodeDanglingReference,
				Entity:  string(id),
				Message: fmt.Sprintf("endpoint %q is not an object of this model", *end),
			}
		}
	}
	m.morIndex[id] = len(m.morphisms)
	m.morphisms = append(m.morphisms, Morphism{ID: id, Type: morType, Dom: cloneID(dom), Cod: cloneID(cod)})
	return nil
}

// Objects returns the objects in insertion order.
func (m *Model) Objects() []Object {
	out := make([]Object, len(m.objects))
	copy(out, m.objects)
	return out
}

// Morphisms returns the morphisms in insertion order.
func (m *Model) Morphisms() []Morphism {
	out := make([]Morphism, len(m.morphisms))
	copy(out, m.morphisms)
	return out
}

// ObType returns the declared type of an object.
func (m *Model) ObType(id ObjectID) (theory.ObType, bool) {
	i, ok := m.obIndex[id]
	if !ok {
		return nil, false
	}
	return m.objects[i].Type, true
}

// MorType returns the declared type of a morphism.
func (m *Model) MorType(id MorphismID) (theory.MorType, bool) {
	i, ok := m.morIndex[id]
	if !ok {
		return nil, false
	}
	return m.morphisms[i].Type, true
}

// Dom returns the declared domain of a morphism, if defined.
func (m *Model) Dom(id MorphismID) (ObjectID, bool) {
	i, ok := m.morIndex[id]
	if !ok || m.morphisms[i].Dom == nil {
		return "", false
	}
	return *m.morphisms[i].Dom, true
}

// Cod returns the declared codomain of a morphism, if defined.
func (m *Model) Cod(id MorphismID) (ObjectID, bool) {
	i, ok := m.morIndex[id]
	if !ok || m.morphisms[i].Cod == nil {
		return "", false
	}
	return *m.morphisms[i].Cod, true
}

// HasOb reports whether id is an object of the model.
func (m *Model) HasOb(id ObjectID) bool {
	_, ok := m.obIndex[id]
	return ok
}

// HasMor reports whether id is a morphism of the model.
func (m *Model) HasMor(id MorphismID) bool {
	_, ok := m.morIndex[id]
	return ok
}

func cloneID(id *ObjectID) *ObjectID {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
