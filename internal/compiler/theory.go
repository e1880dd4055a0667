package compiler

import (
	"cuelang.org/go/cue"

	"github.com/roach88/motif/internal/theory"
)

// ObTypeDecl declares a basic object type of a theory.
type ObTypeDecl struct {
	Name string `json:"name"`
}

// MorTypeDecl declares a basic morphism type with its endpoints.
type MorTypeDecl struct {
	Name string `json:"name"`
	Src  string `json:"src"`
	Tgt  string `json:"tgt"`
}

// TheoryDecl is a compiled theory declaration.
type TheoryDecl struct {
	Name          string        `json:"name"`
	Kind          string        `json:"kind"`
	ObjectTypes   []ObTypeDecl  `json:"object_types"`
	MorphismTypes []MorTypeDecl `json:"morphism_types"`
}

// CompileTheory parses a CUE value into a TheoryDecl. The value should be
// the theory struct itself, e.g. the value at path "theory.category".
func CompileTheory(v cue.Value) (*TheoryDecl, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	decl := &TheoryDecl{}

	// Theory name from the struct label
	labels := v.Path().Selectors()
	if len(labels) > 0 {
		decl.Name = labels[len(labels)-1].String()
	}

	// Kind defaults to discrete
	kindVal := v.LookupPath(cue.ParsePath("kind"))
	if kindVal.Exists() {
		kind, err := kindVal.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		decl.Kind = kind
	} else {
		decl.Kind = string(theory.KindDiscrete)
	}

	// Object types (optional, can be empty)
	obVal := v.LookupPath(cue.ParsePath("object_types"))
	if obVal.Exists() {
		iter, err := obVal.Fields()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for iter.Next() {
			decl.ObjectTypes = append(decl.ObjectTypes, ObTypeDecl{Name: iter.Label()})
		}
	}

	// Morphism types: each needs src and tgt
	morVal := v.LookupPath(cue.ParsePath("morphism_types"))
	if morVal.Exists() {
		iter, err := morVal.Fields()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for iter.Next() {
			mt := MorTypeDecl{Name: iter.Label()}
			entry := iter.Value()
			for _, field := range []struct {
				name string
				dst  *string
			}{
				{"src", &mt.Src},
				{"tgt", &mt.Tgt},
			} {
				fv := entry.LookupPath(cue.ParsePath(field.name))
				if !fv.Exists() {
					return nil, &CompileError{
						Field:   "morphism_types." + mt.Name + "." + field.name,
						Message: field.name + " is required",
						Pos:     entry.Pos(),
					}
				}
				s, err := fv.String()
				if err != nil {
					return nil, formatCUEError(err)
				}
				*field.dst = s
			}
			decl.MorphismTypes = append(decl.MorphismTypes, mt)
		}
	}

	return decl, nil
}

// BuildTheory constructs a double theory from a compiled declaration.
// Each declared object/morphism type becomes both a generator of the type
// category and a bound name.
func BuildTheory(decl *TheoryDecl) (*theory.DoubleTheory, error) {
	kind := theory.Kind(decl.Kind)
	th := theory.New(decl.Name, kind)
	types := th.TypeCategory()

	for _, ot := range decl.ObjectTypes {
		if _, err := types.AddObGenerator(ot.Name); err != nil {
			return nil, err
		}
		if err := th.BindObType(ot.Name, theory.BasicOb(ot.Name)); err != nil {
			return nil, err
		}
	}
	for _, mt := range decl.MorphismTypes {
		src, ok := types.Ob(mt.Src)
		if !ok {
			return nil, &CompileError{
				Field:   "morphism_types." + mt.Name + ".src",
				Message: "unknown object type " + mt.Src,
			}
		}
		tgt, ok := types.Ob(mt.Tgt)
		if !ok {
			return nil, &CompileError{
				Field:   "morphism_types." + mt.Name + ".tgt",
				Message: "unknown object type " + mt.Tgt,
			}
		}
		if _, err := types.AddMorGenerator(mt.Name, src, tgt); err != nil {
			return nil, err
		}
		if err := th.BindMorType(mt.Name, theory.BasicMor(mt.Name)); err != nil {
			return nil, err
		}
	}

	return th, nil
}
