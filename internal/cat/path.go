package cat

import "slices"

// Path is one morphism of the free category on a graph of generators:
// either the identity at an object or a non-empty sequence of morphism
// generators whose consecutive codomains and domains agree.
//
// A Path is a pure value. It carries no pointer back to the category that
// owns its generators; endpoint queries and checked composition live on
// FpCategory, which knows dom and cod of each edge.
type Path struct {
	at    Gen   // identity object, meaningful only when len(edges) == 0
	edges []Gen // read left to right: edges[0] is applied first
}

// Id returns the identity path at an object generator.
func Id(ob Gen) Path {
	return Path{at: ob}
}

// Seq returns the path composing the given morphism generators in order.
// Callers are responsible for composability of consecutive edges; use
// FpCategory.Concat / Cons / Snoc for checked construction.
func Seq(first Gen, rest ...Gen) Path {
	edges := make([]Gen, 0, 1+len(rest))
	edges = append(edges, first)
	edges = append(edges, rest...)
	return Path{at: NoGen, edges: edges}
}

// IsId reports whether p is an identity path.
func (p Path) IsId() bool {
	return len(p.edges) == 0
}

// Len returns the number of edges; zero for identities.
func (p Path) Len() int {
	return len(p.edges)
}

// Edges returns the edge sequence as a copy. Empty for identities.
func (p Path) Edges() []Gen {
	return slices.Clone(p.edges)
}

// At returns the object of an identity path.
// Precondition: p.IsId().
func (p Path) At() Gen {
	return p.at
}

// Equal reports syntactic equality: equality as elements of the free
// category. Two paths related only by declared equations of a presented
// category compare unequal here; deciding presented-category equality is
// the caller's responsibility.
func (p Path) Equal(q Path) bool {
	if p.IsId() != q.IsId() {
		return false
	}
	if p.IsId() {
		return p.at == q.at
	}
	return slices.Equal(p.edges, q.edges)
}
