package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/motif/internal/model"
	"github.com/roach88/motif/internal/testutil"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "motif.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveModel_LoadModel_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	th := testutil.CategoryTheory(t)
	m := testutil.ArrowModel(t, th)

	id, err := s.SaveModel(ctx, "arrows", m)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	loaded, err := s.LoadModel(ctx, id, th)
	require.NoError(t, err)

	want, err := model.MarshalCanonical(m)
	require.NoError(t, err)
	got, err := model.MarshalCanonical(loaded)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))

	// Insertion order survives the round trip, not just the element sets.
	var wantObs, gotObs []model.ObjectID
	for _, ob := range m.Objects() {
		wantObs = append(wantObs, ob.ID)
	}
	for _, ob := range loaded.Objects() {
		gotObs = append(gotObs, ob.ID)
	}
	assert.Equal(t, wantObs, gotObs)
}

func TestSaveModel_DanglingEndpointSurvives(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	th := testutil.CategoryTheory(t)
	m := model.New(th)
	testutil.MustAddOb(t, m, "a", "Object")
	require.NoError(t, m.ApplyMorphismDecl(model.MorphismDecl{
		ID:          "p",
		MorTypeName: "Hom",
	}))

	id, err := s.SaveModel(ctx, "partial", m)
	require.NoError(t, err)

	loaded, err := s.LoadModel(ctx, id, th)
	require.NoError(t, err)

	mors := loaded.Morphisms()
	require.Len(t, mors, 1)
	assert.Nil(t, mors[0].Dom)
	assert.Nil(t, mors[0].Cod)
}

func TestLoadModel_NotFound(t *testing.T) {
	s := openTestStore(t)
	th := testutil.CategoryTheory(t)

	_, err := s.LoadModel(context.Background(), "no-such-id", th)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadModel_TheoryMismatch(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	th := testutil.CategoryTheory(t)
	m := testutil.ArrowModel(t, th)
	id, err := s.SaveModel(ctx, "arrows", m)
	require.NoError(t, err)

	other := testutil.SchemaTheory(t)
	_, err = s.LoadModel(ctx, id, other)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "theory")
}

func TestListModels_CreationOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	th := testutil.CategoryTheory(t)
	m := testutil.ArrowModel(t, th)

	first, err := s.SaveModel(ctx, "first", m)
	require.NoError(t, err)
	second, err := s.SaveModel(ctx, "second", m)
	require.NoError(t, err)

	infos, err := s.ListModels(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, first, infos[0].ID)
	assert.Equal(t, "first", infos[0].Name)
	assert.Equal(t, second, infos[1].ID)
	assert.Equal(t, "category", infos[1].Theory)
}

func TestSaveMotifRun_ReadMotifRun(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	th := testutil.CategoryTheory(t)
	target := testutil.ArrowModel(t, th)

	pattern := model.New(th)
	testutil.MustAddOb(t, pattern, "a", "Object")
	testutil.MustAddOb(t, pattern, "b", "Object")
	testutil.MustAddMor(t, pattern, "p", "a", "b", "Hom")

	patternID, err := s.SaveModel(ctx, "arrow", pattern)
	require.NoError(t, err)
	targetID, err := s.SaveModel(ctx, "arrows", target)
	require.NoError(t, err)

	image := model.New(th)
	testutil.MustAddOb(t, image, "x", "Object")
	testutil.MustAddOb(t, image, "y", "Object")
	testutil.MustAddMor(t, image, "f", "x", "y", "Hom")

	runID, err := s.SaveMotifRun(ctx, patternID, targetID, []*model.Model{image})
	require.NoError(t, err)

	run, err := s.ReadMotifRun(ctx, runID)
	require.NoError(t, err)
	assert.Equal(t, patternID, run.PatternID)
	assert.Equal(t, targetID, run.TargetID)
	assert.Equal(t, 1, run.ImageCount)

	wantImage, err := model.MarshalCanonical(image)
	require.NoError(t, err)
	assert.JSONEq(t, "["+string(wantImage)+"]", run.ImagesJSON)
}

func TestSaveMotifRun_NoImages(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	th := testutil.CategoryTheory(t)
	m := testutil.ArrowModel(t, th)
	id, err := s.SaveModel(ctx, "arrows", m)
	require.NoError(t, err)

	runID, err := s.SaveMotifRun(ctx, id, id, nil)
	require.NoError(t, err)

	run, err := s.ReadMotifRun(ctx, runID)
	require.NoError(t, err)
	assert.Equal(t, 0, run.ImageCount)
	assert.Equal(t, "[]", run.ImagesJSON)
}

func TestReadMotifRun_NotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.ReadMotifRun(context.Background(), "no-such-run")
	assert.ErrorIs(t, err, ErrNotFound)
}
