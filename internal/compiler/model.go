package compiler

import (
	"cuelang.org/go/cue"

	"github.com/roach88/motif/internal/model"
	"github.com/roach88/motif/internal/theory"
)

// ModelDecl is a compiled model declaration: the ordered object and
// morphism declaration records the model layer applies one by one.
type ModelDecl struct {
	Name      string               `json:"name"`
	Theory    string               `json:"theory"`
	Objects   []model.ObjectDecl   `json:"objects"`
	Morphisms []model.MorphismDecl `json:"morphisms"`
}

// CompileModel parses a CUE value into a ModelDecl. The value should be
// the model struct itself, e.g. the value at path "model.arrows".
func CompileModel(v cue.Value) (*ModelDecl, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	decl := &ModelDecl{}

	labels := v.Path().Selectors()
	if len(labels) > 0 {
		decl.Name = labels[len(labels)-1].String()
	}

	// Theory reference (required)
	thVal := v.LookupPath(cue.ParsePath("theory"))
	if !thVal.Exists() {
		return nil, &CompileError{
			Field:   "theory",
			Message: "theory is required",
			Pos:     v.Pos(),
		}
	}
	th, err := thVal.String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	decl.Theory = th

	// Objects (optional)
	obVal := v.LookupPath(cue.ParsePath("objects"))
	if obVal.Exists() {
		iter, err := obVal.Fields()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for iter.Next() {
			entry := iter.Value()
			typeVal := entry.LookupPath(cue.ParsePath("type"))
			if !typeVal.Exists() {
				return nil, &CompileError{
					Field:   "objects." + iter.Label() + ".type",
					Message: "type is required",
					Pos:     entry.Pos(),
				}
			}
			typeName, err := typeVal.String()
			if err != nil {
				return nil, formatCUEError(err)
			}
			decl.Objects = append(decl.Objects, model.ObjectDecl{
				ID:         model.ObjectID(iter.Label()),
				ObTypeName: typeName,
			})
		}
	}

	// Morphisms (optional); dom and cod are each optional
	morVal := v.LookupPath(cue.ParsePath("morphisms"))
	if morVal.Exists() {
		iter, err := morVal.Fields()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for iter.Next() {
			entry := iter.Value()
			typeVal := entry.LookupPath(cue.ParsePath("type"))
			if !typeVal.Exists() {
				return nil, &CompileError{
					Field:   "morphisms." + iter.Label() + ".type",
					Message: "type is required",
					Pos:     entry.Pos(),
				}
			}
			typeName, err := typeVal.String()
			if err != nil {
				return nil, formatCUEError(err)
			}
			md := model.MorphismDecl{
				ID:          model.MorphismID(iter.Label()),
				MorTypeName: typeName,
			}
			md.Dom, err = optionalObjectRef(entry, "dom")
			if err != nil {
				return nil, err
			}
			md.Cod, err = optionalObjectRef(entry, "cod")
			if err != nil {
				return nil, err
			}
			decl.Morphisms = append(decl.Morphisms, md)
		}
	}

	return decl, nil
}

func optionalObjectRef(v cue.Value, field string) (*model.ObjectID, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return nil, nil
	}
	s, err := fv.String()
	if err != nil {
		return nil, formatCUEError(err)
	}
	id := model.ObjectID(s)
	return &id, nil
}

// BuildModel constructs a model from a compiled declaration by applying
// its records in declaration order. The first rejected mutation aborts
// the build; partial models are not returned.
func BuildModel(decl *ModelDecl, th *theory.DoubleTheory) (*model.Model, error) {
	m := model.New(th)
	for _, od := range decl.Objects {
		if err := m.ApplyObjectDecl(od); err != nil {
			return nil, err
		}
	}
	for _, md := range decl.Morphisms {
		if err := m.ApplyMorphismDecl(md); err != nil {
			return nil, err
		}
	}
	return m, nil
}
