package cat

// Equation relates two parallel paths of a presented category. Equations
// are rewrite data for callers that decide presented-category equality;
// this package records them and checks their endpoints, nothing more.
type Equation struct {
	Lhs Path
	Rhs Path
}

type genKind uint8

const (
	kindOb genKind = iota
	kindMor
)

// FpCategory is a finitely presented category: object generators, morphism
// generators with dom/cod, and path equations.
//
// Generators are interned in a private arena at insertion time and are
// immutable thereafter. No operation removes a generator, and two
// categories are never merged.
//
// FpCategory is not safe for concurrent mutation; once construction is
// done it is safe for concurrent reads.
type FpCategory struct {
	arena *Arena
	obs   []Gen
	mors  []Gen
	kind  map[Gen]genKind
	dom   map[Gen]Gen
	cod   map[Gen]Gen
	eqs   []Equation
}

// NewFpCategory creates an empty finitely presented category.
func NewFpCategory() *FpCategory {
	return &FpCategory{
		arena: NewArena(),
		kind:  make(map[Gen]genKind),
		dom:   make(map[Gen]Gen),
		cod:   make(map[Gen]Gen),
	}
}

// AddObGenerator adds an object generator named id.
// Returns ErrCodeDuplicateGenerator if id already names a generator.
func (c *FpCategory) AddObGenerator(id string) (Gen, error) {
	if _, ok := c.arena.Lookup(id); ok {
		return NoGen, newError(ErrCodeDuplicateGenerator, "generator %q already exists", id)
	}
	g := c.arena.Intern(id)
	c.kind[g] = kindOb
	c.obs = append(c.obs, g)
	return g, nil
}

// AddMorGenerator adds a morphism generator named id with the given
// endpoints. Both endpoints must be existing object generators.
func (c *FpCategory) AddMorGenerator(id string, dom, cod Gen) (Gen, error) {
	if _, ok := c.arena.Lookup(id); ok {
		return NoGen, newError(ErrCodeDuplicateGenerator, "generator %q already exists", id)
	}
	if !c.HasOb(dom) {
		return NoGen, newError(ErrCodeUnknownGenerator, "dom of %q is not an object generator", id)
	}
	if !c.HasOb(cod) {
		return NoGen, newError(ErrCodeUnknownGenerator, "cod of %q is not an object generator", id)
	}
	g := c.arena.Intern(id)
	c.kind[g] = kindMor
	c.mors = append(c.mors, g)
	c.dom[g] = dom
	c.cod[g] = cod
	return g, nil
}

// Dom returns the domain object of a morphism generator.
// Precondition: m is a morphism generator of c. Unchecked.
func (c *FpCategory) Dom(m Gen) Gen {
	return c.dom[m]
}

// Cod returns the codomain object of a morphism generator.
// Precondition: m is a morphism generator of c. Unchecked.
func (c *FpCategory) Cod(m Gen) Gen {
	return c.cod[m]
}

// HasOb reports whether g is an object generator of c.
func (c *FpCategory) HasOb(g Gen) bool {
	return g >= 0 && c.kind[g] == kindOb && int(g) < c.arena.Len()
}

// HasMor reports whether g is a morphism generator of c.
func (c *FpCategory) HasMor(g Gen) bool {
	if g < 0 || int(g) >= c.arena.Len() {
		return false
	}
	k, ok := c.kind[g]
	return ok && k == kindMor
}

// ObGenerators returns object generators in insertion order.
func (c *FpCategory) ObGenerators() []Gen {
	out := make([]Gen, len(c.obs))
	copy(out, c.obs)
	return out
}

// MorGenerators returns morphism generators in insertion order.
func (c *FpCategory) MorGenerators() []Gen {
	out := make([]Gen, len(c.mors))
	copy(out, c.mors)
	return out
}

// Ob looks up an object generator by name.
func (c *FpCategory) Ob(name string) (Gen, bool) {
	g, ok := c.arena.Lookup(name)
	if !ok || c.kind[g] != kindOb {
		return NoGen, false
	}
	return g, true
}

// Mor looks up a morphism generator by name.
func (c *FpCategory) Mor(name string) (Gen, bool) {
	g, ok := c.arena.Lookup(name)
	if !ok || c.kind[g] != kindMor {
		return NoGen, false
	}
	return g, true
}

// Name returns the name a generator was added under.
// Precondition: g belongs to c. Unchecked.
func (c *FpCategory) Name(g Gen) string {
	return c.arena.Name(g)
}

// PathDom returns the domain object of a path over c.
// Precondition: p is well formed over c.
func (c *FpCategory) PathDom(p Path) Gen {
	if p.IsId() {
		return p.At()
	}
	return c.dom[p.edges[0]]
}

// PathCod returns the codomain object of a path over c.
// Precondition: p is well formed over c.
func (c *FpCategory) PathCod(p Path) Gen {
	if p.IsId() {
		return p.At()
	}
	return c.cod[p.edges[len(p.edges)-1]]
}

// Concat composes p then q. Identity paths are left and right units.
// Returns ErrCodePathMismatch when cod(p) != dom(q).
func (c *FpCategory) Concat(p, q Path) (Path, error) {
	if c.PathCod(p) != c.PathDom(q) {
		return Path{}, newError(ErrCodePathMismatch,
			"cannot compose: cod %q != dom %q",
			c.Name(c.PathCod(p)), c.Name(c.PathDom(q)))
	}
	if p.IsId() {
		return q, nil
	}
	if q.IsId() {
		return p, nil
	}
	edges := make([]Gen, 0, len(p.edges)+len(q.edges))
	edges = append(edges, p.edges...)
	edges = append(edges, q.edges...)
	return Path{at: NoGen, edges: edges}, nil
}

// Cons prepends a morphism generator to a path.
// Returns ErrCodePathMismatch when cod(g) != dom(p).
func (c *FpCategory) Cons(g Gen, p Path) (Path, error) {
	return c.Concat(Seq(g), p)
}

// Snoc appends a morphism generator to a path.
// Returns ErrCodePathMismatch when cod(p) != dom(g).
func (c *FpCategory) Snoc(p Path, g Gen) (Path, error) {
	return c.Concat(p, Seq(g))
}

// AddEquation declares lhs = rhs in the presented category. Both paths
// must be well formed over c and share both endpoints.
//
// Equations are recorded, not applied: this category performs no term
// rewriting or normalization, so Path.Equal stays syntactic. Callers that
// need presented-category equality must decide it themselves.
func (c *FpCategory) AddEquation(lhs, rhs Path) error {
	for _, p := range []Path{lhs, rhs} {
		if p.IsId() {
			if !c.HasOb(p.At()) {
				return newError(ErrCodeUnknownGenerator, "equation identity object is not in this category")
			}
			continue
		}
		for _, e := range p.Edges() {
			if !c.HasMor(e) {
				return newError(ErrCodeUnknownGenerator, "equation path edge is not in this category")
			}
		}
	}
	if c.PathDom(lhs) != c.PathDom(rhs) || c.PathCod(lhs) != c.PathCod(rhs) {
		return newError(ErrCodeEquationEndpoints,
			"equation relates paths %q -> %q and %q -> %q",
			c.Name(c.PathDom(lhs)), c.Name(c.PathCod(lhs)),
			c.Name(c.PathDom(rhs)), c.Name(c.PathCod(rhs)))
	}
	c.eqs = append(c.eqs, Equation{Lhs: lhs, Rhs: rhs})
	return nil
}

// Equations returns declared equations in insertion order.
func (c *FpCategory) Equations() []Equation {
	out := make([]Equation, len(c.eqs))
	copy(out, c.eqs)
	return out
}
