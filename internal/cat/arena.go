package cat

// Gen identifies a basic object or morphism generator. A Gen is a stable
// index into the arena that created it: cheap to copy, cheap to compare,
// and totally ordered by creation order.
type Gen int32

// NoGen is the zero-value sentinel for "no generator".
const NoGen Gen = -1

// Arena interns generator names and hands out stable indices.
//
// Paths and categories store Gens, not strings, so sub-paths share storage
// without any shared-ownership pointers.
type Arena struct {
	names  []string
	byName map[string]Gen
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{byName: make(map[string]Gen)}
}

// Intern returns the Gen for name, allocating a new index on first use.
func (a *Arena) Intern(name string) Gen {
	if g, ok := a.byName[name]; ok {
		return g
	}
	g := Gen(len(a.names))
	a.names = append(a.names, name)
	a.byName[name] = g
	return g
}

// Lookup returns the Gen previously interned for name.
func (a *Arena) Lookup(name string) (Gen, bool) {
	g, ok := a.byName[name]
	return g, ok
}

// Name returns the name a Gen was interned under.
// Precondition: g was produced by this arena.
func (a *Arena) Name(g Gen) string {
	return a.names[g]
}

// Len returns the number of interned generators.
func (a *Arena) Len() int {
	return len(a.names)
}
