package motif_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/motif/internal/model"
	"github.com/roach88/motif/internal/motif"
	"github.com/roach88/motif/internal/testutil"
)

func TestMapping_Apply(t *testing.T) {
	f := motif.NewMapping()
	f.Ob["a"] = "x"
	f.Mor["p"] = "f"

	got, ok := f.ApplyOb("a")
	require.True(t, ok)
	assert.Equal(t, model.ObjectID("x"), got)

	_, ok = f.ApplyOb("b")
	assert.False(t, ok, "unmapped ids return false")

	gotMor, ok := f.ApplyMor("p")
	require.True(t, ok)
	assert.Equal(t, model.MorphismID("f"), gotMor)
}

func TestMapping_TotalAndMonic(t *testing.T) {
	th := testutil.CategoryTheory(t)
	pattern := model.New(th)
	testutil.MustAddOb(t, pattern, "a", "Object")
	testutil.MustAddOb(t, pattern, "b", "Object")

	f := motif.NewMapping()
	f.Ob["a"] = "x"
	assert.False(t, f.Total(pattern), "b is unmapped")

	f.Ob["b"] = "x"
	assert.True(t, f.Total(pattern))
	assert.False(t, f.Monic(), "a and b collide on x")

	f.Ob["b"] = "y"
	assert.True(t, f.Monic())
}

func TestMapping_IsMorphism(t *testing.T) {
	th := testutil.CategoryTheory(t)
	target := testutil.ArrowModel(t, th)

	pattern := model.New(th)
	testutil.MustAddOb(t, pattern, "a", "Object")
	testutil.MustAddOb(t, pattern, "b", "Object")
	testutil.MustAddMor(t, pattern, "p", "a", "b", "Hom")

	f := motif.NewMapping()
	f.Ob["a"] = "x"
	f.Ob["b"] = "y"
	f.Mor["p"] = "f"
	assert.True(t, f.IsMorphism(pattern, target))

	// Endpoints no longer line up: p maps to g but a maps to x
	f.Mor["p"] = "g"
	assert.False(t, f.IsMorphism(pattern, target))

	// g: y -> z lines up once the objects move with it
	f.Ob["a"] = "y"
	f.Ob["b"] = "z"
	assert.True(t, f.IsMorphism(pattern, target))
}

func TestMapping_IsMorphism_UnknownTarget(t *testing.T) {
	th := testutil.CategoryTheory(t)
	target := testutil.ArrowModel(t, th)

	pattern := model.New(th)
	testutil.MustAddOb(t, pattern, "a", "Object")

	f := motif.NewMapping()
	f.Ob["a"] = "ghost"
	assert.False(t, f.IsMorphism(pattern, target))
}
