package cat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helper building the walking-composable-pair category:
// x --f--> y --g--> z
func makeTestCategory(t *testing.T) (*FpCategory, Gen, Gen, Gen, Gen, Gen) {
	t.Helper()

	c := NewFpCategory()
	x, err := c.AddObGenerator("x")
	require.NoError(t, err)
	y, err := c.AddObGenerator("y")
	require.NoError(t, err)
	z, err := c.AddObGenerator("z")
	require.NoError(t, err)
	f, err := c.AddMorGenerator("f", x, y)
	require.NoError(t, err)
	g, err := c.AddMorGenerator("g", y, z)
	require.NoError(t, err)
	return c, x, y, z, f, g
}

func TestConcat_ComposablePair(t *testing.T) {
	c, x, _, z, f, g := makeTestCategory(t)

	p, err := c.Concat(Seq(f), Seq(g))
	require.NoError(t, err)

	assert.Equal(t, 2, p.Len())
	assert.Equal(t, x, c.PathDom(p))
	assert.Equal(t, z, c.PathCod(p))
	assert.True(t, p.Equal(Seq(f, g)))
}

func TestConcat_Mismatch(t *testing.T) {
	c, _, _, _, f, g := makeTestCategory(t)

	// g ends at z, f starts at x
	_, err := c.Concat(Seq(g), Seq(f))
	require.Error(t, err)
	assert.True(t, IsPathMismatch(err))
}

func TestConcat_IdentityLaws(t *testing.T) {
	c, x, y, _, f, _ := makeTestCategory(t)

	p := Seq(f)

	left, err := c.Concat(Id(x), p)
	require.NoError(t, err)
	assert.True(t, left.Equal(p), "left identity law")

	right, err := c.Concat(p, Id(y))
	require.NoError(t, err)
	assert.True(t, right.Equal(p), "right identity law")

	// Identity at the wrong object is still a mismatch
	_, err = c.Concat(Id(y), p)
	assert.True(t, IsPathMismatch(err))
}

func TestConcat_IdentityWithIdentity(t *testing.T) {
	c, x, y, _, _, _ := makeTestCategory(t)

	p, err := c.Concat(Id(x), Id(x))
	require.NoError(t, err)
	assert.True(t, p.IsId())
	assert.Equal(t, x, p.At())

	_, err = c.Concat(Id(x), Id(y))
	assert.True(t, IsPathMismatch(err))
}

func TestConsSnoc(t *testing.T) {
	c, _, _, _, f, g := makeTestCategory(t)

	p, err := c.Cons(f, Seq(g))
	require.NoError(t, err)
	assert.True(t, p.Equal(Seq(f, g)))

	q, err := c.Snoc(Seq(f), g)
	require.NoError(t, err)
	assert.True(t, q.Equal(Seq(f, g)))

	_, err = c.Cons(g, Seq(f))
	assert.True(t, IsPathMismatch(err))

	_, err = c.Snoc(Seq(g), f)
	assert.True(t, IsPathMismatch(err))
}

func TestPathEqual_Syntactic(t *testing.T) {
	_, x, y, _, f, g := makeTestCategory(t)

	assert.True(t, Seq(f, g).Equal(Seq(f, g)))
	assert.False(t, Seq(f).Equal(Seq(g)))
	assert.False(t, Seq(f).Equal(Id(x)))
	assert.True(t, Id(x).Equal(Id(x)))
	assert.False(t, Id(x).Equal(Id(y)))
}

func TestEdges_ReturnsCopy(t *testing.T) {
	_, _, _, _, f, g := makeTestCategory(t)

	p := Seq(f, g)
	edges := p.Edges()
	edges[0] = g

	assert.True(t, p.Equal(Seq(f, g)), "mutating the returned slice must not affect the path")
}
