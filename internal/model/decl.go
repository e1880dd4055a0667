package model

// ObjectDecl is the incoming declaration record for an object: the
// boundary contract with the surrounding editing system. The type is
// referenced by its bound name on the theory.
type ObjectDecl struct {
	ID         ObjectID `json:"id"`
	ObTypeName string   `json:"ob_type"`
}

// MorphismDecl is the incoming declaration record for a morphism.
// Dom and Cod are optional.
type MorphismDecl struct {
	ID          MorphismID `json:"id"`
	MorTypeName string     `json:"mor_type"`
	Dom         *ObjectID  `json:"dom,omitempty"`
	Cod         *ObjectID  `json:"cod,omitempty"`
}

// ApplyObjectDecl resolves the declared type name on the theory and adds
// the object. An unknown name is an UNBOUND_TYPE mutation error.
func (m *Model) ApplyObjectDecl(d ObjectDecl) error {
	obType, ok := m.theory.ObTypeByName(d.ObTypeName)
	if !ok {
		return &MutationError{
			Code:    ErrCodeUnboundType,
			Entity:  string(d.ID),
			Message: "object type name " + d.ObTypeName + " is not bound on the theory",
		}
	}
	return m.AddOb(d.ID, obType)
}

// ApplyMorphismDecl resolves the declared type name on the theory and
// adds the morphism. An unknown name is an UNBOUND_TYPE mutation error.
func (m *Model) ApplyMorphismDecl(d MorphismDecl) error {
	morType, ok := m.theory.MorTypeByName(d.MorTypeName)
	if !ok {
		return &MutationError{
			Code:    ErrCodeUnboundType,
			Entity:  string(d.ID),
			Message: "morphism type name " + d.MorTypeName + " is not bound on the theory",
		}
	}
	return m.AddMor(d.ID, d.Dom, d.Cod, morType)
}
