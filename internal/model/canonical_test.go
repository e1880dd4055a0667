package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/motif/internal/model"
	"github.com/roach88/motif/internal/testutil"
)

func TestMarshalCanonical_Deterministic(t *testing.T) {
	th := testutil.CategoryTheory(t)

	// Same structure, different insertion order
	m1 := model.New(th)
	for _, ob := range []string{"x", "y"} {
		testutil.MustAddOb(t, m1, ob, "Object")
	}
	testutil.MustAddMor(t, m1, "f", "x", "y", "Hom")

	m2 := model.New(th)
	for _, ob := range []string{"y", "x"} {
		testutil.MustAddOb(t, m2, ob, "Object")
	}
	testutil.MustAddMor(t, m2, "f", "x", "y", "Hom")

	b1, err := model.MarshalCanonical(m1)
	require.NoError(t, err)
	b2, err := model.MarshalCanonical(m2)
	require.NoError(t, err)

	assert.Equal(t, string(b1), string(b2), "structurally equal models marshal byte-identically")
}

func TestMarshalCanonical_EmptyModel(t *testing.T) {
	th := testutil.CategoryTheory(t)

	b, err := model.MarshalCanonical(model.New(th))
	require.NoError(t, err)
	assert.JSONEq(t, `{"theory":"category","objects":[],"morphisms":[]}`, string(b))
}

func TestMarshalCanonical_IncludesEndpoints(t *testing.T) {
	th := testutil.CategoryTheory(t)
	m := testutil.ArrowModel(t, th)

	b, err := model.MarshalCanonical(m)
	require.NoError(t, err)

	assert.Contains(t, string(b), `{"id":"f","type":"Hom","dom":"x","cod":"y"}`)
}
