package motif

import (
	"fmt"
	"sort"

	"github.com/roach88/motif/internal/model"
	"github.com/roach88/motif/internal/theory"
)

// Search enumerates every total, monic, type- and endpoint-preserving
// mapping of pattern into target and returns the syntactic images:
// sub-models of the target consisting of exactly the elements hit by a
// mapping, not a downward closure.
//
// The result list is ordered ascending by (object count, morphism count)
// with sorted object ids, then morphism ids, as tie-break, and is
// deduplicated by structural equality. Distinct mappings yielding the
// same image contribute one entry. The order is a function of the two
// models alone, never of internal search order.
//
// A pattern with zero objects and zero morphisms yields exactly one
// empty image: the empty mapping is the unique embedding.
//
// Both models must be instances of the same discrete theory; otherwise
// Search returns UNSUPPORTED_THEORY rather than a partial match.
func Search(pattern, target model.View) ([]*model.Model, error) {
	if pattern.Theory() != target.Theory() {
		return nil, &SearchError{
			Code:    ErrCodeUnsupportedTheory,
			Message: fmt.Sprintf("pattern theory %q and target theory %q are not comparable", pattern.Theory().Name(), target.Theory().Name()),
		}
	}
	if kind := pattern.Theory().Kind(); kind != theory.KindDiscrete {
		return nil, &SearchError{
			Code:    ErrCodeUnsupportedTheory,
			Message: fmt.Sprintf("motif search supports discrete theories, not %q", kind),
		}
	}

	mappings := enumerate(pattern, target)

	images := make([]*model.Model, 0, len(mappings))
	for _, f := range mappings {
		img, err := syntacticImage(f, target)
		if err != nil {
			return nil, fmt.Errorf("motif image: %w", err)
		}
		images = append(images, img)
	}

	sort.SliceStable(images, func(i, j int) bool {
		return compareImages(images[i], images[j]) < 0
	})

	// Pairwise structural dedup. Quadratic on purpose: result sets are
	// small in practice, and the comparison doubles as the structural
	// equality definition.
	var out []*model.Model
	for _, img := range images {
		dup := false
		for _, kept := range out {
			if StructurallyEqual(kept, img) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, img)
		}
	}
	return out, nil
}

// FindMappings enumerates the mappings themselves, in an unspecified
// order. Exposed for callers that need the assignments, not just the
// images. Same comparability requirements as Search.
func FindMappings(pattern, target model.View) ([]*Mapping, error) {
	if pattern.Theory() != target.Theory() || pattern.Theory().Kind() != theory.KindDiscrete {
		return nil, &SearchError{
			Code:    ErrCodeUnsupportedTheory,
			Message: "models are not instances of one discrete theory",
		}
	}
	return enumerate(pattern, target), nil
}

// searcher holds the candidate tables and the mutable partial assignment
// of one backtracking run.
type searcher struct {
	pattern model.View
	target  model.View

	pMors []model.Morphism
	pObs  []model.Object

	morCand map[model.MorphismID][]model.Morphism
	obCand  map[model.ObjectID][]model.ObjectID

	assign  *Mapping
	obUsed  map[model.ObjectID]bool
	morUsed map[model.MorphismID]bool

	results []*Mapping
}

func enumerate(pattern, target model.View) []*Mapping {
	s := &searcher{
		pattern: pattern,
		target:  target,
		pMors:   pattern.Morphisms(),
		pObs:    pattern.Objects(),
		morCand: make(map[model.MorphismID][]model.Morphism),
		obCand:  make(map[model.ObjectID][]model.ObjectID),
		assign:  NewMapping(),
		obUsed:  make(map[model.ObjectID]bool),
		morUsed: make(map[model.MorphismID]bool),
	}

	// Candidate sets per pattern element, filtered by type before the
	// recursion starts. An empty candidate set anywhere means no results.
	for _, pOb := range s.pObs {
		var cand []model.ObjectID
		for _, tOb := range target.Objects() {
			if theory.ObTypeEqual(pOb.Type, tOb.Type) {
				cand = append(cand, tOb.ID)
			}
		}
		if len(cand) == 0 {
			return nil
		}
		s.obCand[pOb.ID] = cand
	}
	for _, pMor := range s.pMors {
		var cand []model.Morphism
		for _, tMor := range target.Morphisms() {
			if !theory.MorTypeEqual(pMor.Type, tMor.Type) {
				continue
			}
			// Endpoint shape must agree: a defined endpoint can only map
			// to a defined endpoint, and vice versa.
			if (pMor.Dom == nil) != (tMor.Dom == nil) || (pMor.Cod == nil) != (tMor.Cod == nil) {
				continue
			}
			cand = append(cand, tMor)
		}
		if len(cand) == 0 {
			return nil
		}
		s.morCand[pMor.ID] = cand
	}

	s.extendMor(0)
	return s.results
}

// extendMor assigns pattern morphisms one at a time. Each morphism
// assignment also forces its endpoint objects, so by the time every
// morphism is placed only isolated pattern objects remain.
func (s *searcher) extendMor(i int) {
	if i == len(s.pMors) {
		s.extendOb(0)
		return
	}

	pMor := s.pMors[i]
	for _, tMor := range s.morCand[pMor.ID] {
		if s.morUsed[tMor.ID] {
			continue
		}
		bound, ok := s.bindEndpoints(pMor, tMor)
		if !ok {
			continue
		}
		s.assign.Mor[pMor.ID] = tMor.ID
		s.morUsed[tMor.ID] = true

		s.extendMor(i + 1)

		delete(s.assign.Mor, pMor.ID)
		delete(s.morUsed, tMor.ID)
		s.unbind(bound)
	}
}

// bindEndpoints reconciles the endpoints of a candidate morphism pair
// with the current assignment. It returns the pattern objects newly bound
// by this assignment (for backtracking) and whether the pair is
// consistent. On inconsistency, any partial binding is rolled back.
func (s *searcher) bindEndpoints(pMor, tMor model.Morphism) ([]model.ObjectID, bool) {
	var bound []model.ObjectID

	ends := [2]struct{ p, t *model.ObjectID }{
		{pMor.Dom, tMor.Dom},
		{pMor.Cod, tMor.Cod},
	}
	for _, end := range ends {
		if end.p == nil {
			continue // shape already filtered, end.t is nil too
		}
		if img, ok := s.assign.Ob[*end.p]; ok {
			if img != *end.t {
				s.unbind(bound)
				return nil, false
			}
			continue
		}
		// New binding: target object must be unused (injectivity) and a
		// legal candidate for the pattern object (type equality).
		if s.obUsed[*end.t] || !s.isCandidate(*end.p, *end.t) {
			s.unbind(bound)
			return nil, false
		}
		s.assign.Ob[*end.p] = *end.t
		s.obUsed[*end.t] = true
		bound = append(bound, *end.p)
	}
	return bound, true
}

func (s *searcher) unbind(bound []model.ObjectID) {
	for _, ob := range bound {
		img := s.assign.Ob[ob]
		delete(s.assign.Ob, ob)
		delete(s.obUsed, img)
	}
}

func (s *searcher) isCandidate(pOb, tOb model.ObjectID) bool {
	for _, cand := range s.obCand[pOb] {
		if cand == tOb {
			return true
		}
	}
	return false
}

// extendOb assigns the pattern objects not already forced by a morphism.
func (s *searcher) extendOb(j int) {
	if j == len(s.pObs) {
		s.results = append(s.results, s.assign.clone())
		return
	}
	pOb := s.pObs[j]
	if _, ok := s.assign.Ob[pOb.ID]; ok {
		s.extendOb(j + 1)
		return
	}
	for _, tOb := range s.obCand[pOb.ID] {
		if s.obUsed[tOb] {
			continue
		}
		s.assign.Ob[pOb.ID] = tOb
		s.obUsed[tOb] = true

		s.extendOb(j + 1)

		delete(s.assign.Ob, pOb.ID)
		delete(s.obUsed, tOb)
	}
}

// syntacticImage builds the sub-model of target hit by f: exactly the
// objects and morphisms that are targets of the mapping. Morphisms of the
// target outside the image are excluded even when their endpoints are in
// it. Elements keep target insertion order.
func syntacticImage(f *Mapping, target model.View) (*model.Model, error) {
	obHit := make(map[model.ObjectID]bool, len(f.Ob))
	for _, img := range f.Ob {
		obHit[img] = true
	}
	morHit := make(map[model.MorphismID]bool, len(f.Mor))
	for _, img := range f.Mor {
		morHit[img] = true
	}

	img := model.New(target.Theory())
	for _, ob := range target.Objects() {
		if !obHit[ob.ID] {
			continue
		}
		if err := img.AddOb(ob.ID, ob.Type); err != nil {
			return nil, err
		}
	}
	for _, mor := range target.Morphisms() {
		if !morHit[mor.ID] {
			continue
		}
		if err := img.AddMor(mor.ID, mor.Dom, mor.Cod, mor.Type); err != nil {
			return nil, err
		}
	}
	return img, nil
}

// compareImages orders images ascending by (object count, morphism count),
// then by sorted object ids and sorted morphism ids. This makes result
// order a function of the models alone.
func compareImages(a, b *model.Model) int {
	if d := len(a.Objects()) - len(b.Objects()); d != 0 {
		return d
	}
	if d := len(a.Morphisms()) - len(b.Morphisms()); d != 0 {
		return d
	}
	aObs, bObs := sortedObIDs(a), sortedObIDs(b)
	for i := range aObs {
		if aObs[i] != bObs[i] {
			if aObs[i] < bObs[i] {
				return -1
			}
			return 1
		}
	}
	aMors, bMors := sortedMorIDs(a), sortedMorIDs(b)
	for i := range aMors {
		if aMors[i] != bMors[i] {
			if aMors[i] < bMors[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// StructurallyEqual reports whether two models have the same object ids
// with equal types and the same morphism ids with equal types and equal
// endpoints.
func StructurallyEqual(a, b model.View) bool {
	aObs, bObs := a.Objects(), b.Objects()
	if len(aObs) != len(bObs) {
		return false
	}
	for _, ob := range aObs {
		t, ok := b.ObType(ob.ID)
		if !ok || !theory.ObTypeEqual(ob.Type, t) {
			return false
		}
	}
	aMors, bMors := a.Morphisms(), b.Morphisms()
	if len(aMors) != len(bMors) {
		return false
	}
	for _, mor := range aMors {
		t, ok := b.MorType(mor.ID)
		if !ok || !theory.MorTypeEqual(mor.Type, t) {
			return false
		}
		if !sameEndpoint(mor.Dom, b.Dom, mor.ID) || !sameEndpoint(mor.Cod, b.Cod, mor.ID) {
			return false
		}
	}
	return true
}

func sameEndpoint(want *model.ObjectID, lookup func(model.MorphismID) (model.ObjectID, bool), id model.MorphismID) bool {
	got, ok := lookup(id)
	if want == nil {
		return !ok
	}
	return ok && got == *want
}

func sortedObIDs(m *model.Model) []string {
	obs := m.Objects()
	out := make([]string, len(obs))
	for i, ob := range obs {
		out[i] = string(ob.ID)
	}
	sort.Strings(out)
	return out
}

func sortedMorIDs(m *model.Model) []string {
	mors := m.Morphisms()
	out := make([]string, len(mors))
	for i, mor := range mors {
		out[i] = string(mor.ID)
	}
	sort.Strings(out)
	return out
}
