package motif

import (
	"github.com/roach88/motif/internal/model"
	"github.com/roach88/motif/internal/theory"
)

// Mapping is a pair of partial functions from a domain model's ids to a
// codomain model's ids, represented as finite lookup tables keyed by the
// domain id. A Mapping is not validated at construction; IsMorphism
// reports whether it is a genuine model morphism.
type Mapping struct {
	Ob  map[model.ObjectID]model.ObjectID
	Mor map[model.MorphismID]model.MorphismID
}

// NewMapping creates an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{
		Ob:  make(map[model.ObjectID]model.ObjectID),
		Mor: make(map[model.MorphismID]model.MorphismID),
	}
}

// ApplyOb returns the image of an object id, or false if unmapped.
func (f *Mapping) ApplyOb(id model.ObjectID) (model.ObjectID, bool) {
	out, ok := f.Ob[id]
	return out, ok
}

// ApplyMor returns the image of a morphism id, or false if unmapped.
func (f *Mapping) ApplyMor(id model.MorphismID) (model.MorphismID, bool) {
	out, ok := f.Mor[id]
	return out, ok
}

// Total reports whether f maps every object and morphism of dom.
func (f *Mapping) Total(dom model.View) bool {
	for _, ob := range dom.Objects() {
		if _, ok := f.Ob[ob.ID]; !ok {
			return false
		}
	}
	for _, mor := range dom.Morphisms() {
		if _, ok := f.Mor[mor.ID]; !ok {
			return false
		}
	}
	return true
}

// Monic reports whether f is injective on objects and on morphisms.
func (f *Mapping) Monic() bool {
	obSeen := make(map[model.ObjectID]bool, len(f.Ob))
	for _, img := range f.Ob {
		if obSeen[img] {
			return false
		}
		obSeen[img] = true
	}
	morSeen := make(map[model.MorphismID]bool, len(f.Mor))
	for _, img := range f.Mor {
		if morSeen[img] {
			return false
		}
		morSeen[img] = true
	}
	return true
}

// IsMorphism reports whether f is a genuine model morphism from dom to
// cod: every mapped object keeps its type, and every mapped morphism
// keeps its type and its endpoints. An endpoint defined on one side and
// undefined on the other is a violation, as is a defined endpoint whose
// image disagrees.
func (f *Mapping) IsMorphism(dom, cod model.View) bool {
	for pid, tid := range f.Ob {
		pt, ok := dom.ObType(pid)
		if !ok {
			return false
		}
		tt, ok := cod.ObType(tid)
		if !ok || !theory.ObTypeEqual(pt, tt) {
			return false
		}
	}
	for pid, tid := range f.Mor {
		pt, ok := dom.MorType(pid)
		if !ok {
			return false
		}
		tt, ok := cod.MorType(tid)
		if !ok || !theory.MorTypeEqual(pt, tt) {
			return false
		}
		if !f.endpointPreserved(dom.Dom, cod.Dom, pid, tid) {
			return false
		}
		if !f.endpointPreserved(dom.Cod, cod.Cod, pid, tid) {
			return false
		}
	}
	return true
}

func (f *Mapping) endpointPreserved(
	domEnd func(model.MorphismID) (model.ObjectID, bool),
	codEnd func(model.MorphismID) (model.ObjectID, bool),
	pid, tid model.MorphismID,
) bool {
	pEnd, pOK := domEnd(pid)
	tEnd, tOK := codEnd(tid)
	if pOK != tOK {
		return false
	}
	if !pOK {
		return true
	}
	img, ok := f.Ob[pEnd]
	return ok && img == tEnd
}

func (f *Mapping) clone() *Mapping {
	out := NewMapping()
	for k, v := range f.Ob {
		out.Ob[k] = v
	}
	for k, v := range f.Mor {
		out.Mor[k] = v
	}
	return out
}
