// Package testutil provides shared theory and model fixtures for tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/motif/internal/model"
	"github.com/roach88/motif/internal/theory"
)

// CategoryTheory builds the theory of categories: one object type Object
// and one morphism type Hom with src = tgt = Object.
//
// This is the canonical discrete fixture used across package tests.
func CategoryTheory(t *testing.T) *theory.DoubleTheory {
	t.Helper()

	th := theory.New("category", theory.KindDiscrete)
	types := th.TypeCategory()
	ob, err := types.AddObGenerator("Object")
	require.NoError(t, err)
	_, err = types.AddMorGenerator("Hom", ob, ob)
	require.NoError(t, err)
	require.NoError(t, th.BindObType("Object", theory.BasicOb("Object")))
	require.NoError(t, th.BindMorType("Hom", theory.BasicMor("Hom")))
	return th
}

// SchemaTheory builds a two-sorted discrete theory:
// Entity --Attr--> AttrType.
func SchemaTheory(t *testing.T) *theory.DoubleTheory {
	t.Helper()

	th := theory.New("schema", theory.KindDiscrete)
	types := th.TypeCategory()
	ent, err := types.AddObGenerator("Entity")
	require.NoError(t, err)
	at, err := types.AddObGenerator("AttrType")
	require.NoError(t, err)
	_, err = types.AddMorGenerator("Attr", ent, at)
	require.NoError(t, err)
	require.NoError(t, th.BindObType("Entity", theory.BasicOb("Entity")))
	require.NoError(t, th.BindObType("AttrType", theory.BasicOb("AttrType")))
	require.NoError(t, th.BindMorType("Attr", theory.BasicMor("Attr")))
	return th
}

// ModalTheory builds a signed-category style modal theory: object type
// Object, morphism types Pos and Neg over it.
func ModalTheory(t *testing.T) *theory.DoubleTheory {
	t.Helper()

	th := theory.New("signed", theory.KindModal)
	types := th.TypeCategory()
	ob, err := types.AddObGenerator("Object")
	require.NoError(t, err)
	_, err = types.AddMorGenerator("Pos", ob, ob)
	require.NoError(t, err)
	require.NoError(t, th.BindObType("Object", theory.BasicOb("Object")))
	require.NoError(t, th.BindMorType("Pos", theory.BasicMor("Pos")))
	require.NoError(t, th.BindMorType("Neg", theory.ModeAppMor{Modality: "Neg", Arg: theory.BasicMor("Pos")}))
	return th
}

// MustAddOb adds an object by bound type name, failing the test on error.
func MustAddOb(t *testing.T, m *model.Model, id, typeName string) {
	t.Helper()
	require.NoError(t, m.ApplyObjectDecl(model.ObjectDecl{ID: model.ObjectID(id), ObTypeName: typeName}))
}

// MustAddMor adds a morphism by bound type name with defined endpoints,
// failing the test on error.
func MustAddMor(t *testing.T, m *model.Model, id, dom, cod, typeName string) {
	t.Helper()
	d := model.ObjectID(dom)
	c := model.ObjectID(cod)
	require.NoError(t, m.ApplyMorphismDecl(model.MorphismDecl{
		ID:          model.MorphismID(id),
		MorTypeName: typeName,
		Dom:         &d,
		Cod:         &c,
	}))
}

// ArrowModel builds the two-composable-arrows model over CategoryTheory:
// objects x, y, z typed Object; morphisms f: x -> y and g: y -> z typed
// Hom. This is the standard motif-search target fixture.
func ArrowModel(t *testing.T, th *theory.DoubleTheory) *model.Model {
	t.Helper()

	m := model.New(th)
	for _, ob := range []string{"x", "y", "z"} {
		MustAddOb(t, m, ob, "Object")
	}
	MustAddMor(t, m, "f", "x", "y", "Hom")
	MustAddMor(t, m, "g", "y", "z", "Hom")
	return m
}
