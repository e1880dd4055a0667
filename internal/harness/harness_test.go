package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/motif/internal/motif"
)

func loadTestScenario(t *testing.T, name string) *Scenario {
	t.Helper()
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", name+".yaml"))
	require.NoError(t, err)
	return scenario
}

func TestRunWalkingArrow(t *testing.T) {
	result, err := Run(loadTestScenario(t, "walking_arrow"))
	require.NoError(t, err)

	assert.True(t, result.Pass, "failures: %v", result.Failures)
	require.Len(t, result.Images, 2)

	// Smallest-first order with the tie broken by object ids
	first := result.Images[0]
	var firstMors []string
	for _, mor := range first.Morphisms() {
		firstMors = append(firstMors, string(mor.ID))
	}
	assert.Equal(t, []string{"f"}, firstMors)
}

func TestRunEmptyPattern(t *testing.T) {
	result, err := Run(loadTestScenario(t, "empty_pattern"))
	require.NoError(t, err)

	assert.True(t, result.Pass, "failures: %v", result.Failures)
	require.Len(t, result.Images, 1)
	assert.Empty(t, result.Images[0].Objects())
	assert.Empty(t, result.Images[0].Morphisms())
}

func TestRunModalUnsupported(t *testing.T) {
	result, err := Run(loadTestScenario(t, "modal_unsupported"))
	require.NoError(t, err)

	assert.True(t, result.Pass, "failures: %v", result.Failures)
	assert.True(t, motif.IsUnsupportedTheory(result.SearchErr))
	assert.Nil(t, result.Images)
}

func TestRunReportsExpectationFailures(t *testing.T) {
	scenario := loadTestScenario(t, "walking_arrow")
	wrong := 5
	scenario.Expect.ImageCount = &wrong
	scenario.Expect.Images = nil

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Failures, 1)
	assert.Contains(t, result.Failures[0], "expected 5 image(s), found 2")
}

func TestRunReportsWrongImage(t *testing.T) {
	scenario := loadTestScenario(t, "walking_arrow")
	scenario.Expect.ImageCount = nil
	scenario.Expect.Images = []ImageExpect{
		{Objects: []string{"x", "y"}, Morphisms: []string{"f"}},
		{Objects: []string{"x", "z"}, Morphisms: []string{"g"}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Failures, 1)
	assert.Contains(t, result.Failures[0], "image 1")
}

func TestRunUnknownModel(t *testing.T) {
	scenario := loadTestScenario(t, "walking_arrow")
	scenario.Pattern = "ghost"

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `model "ghost" not declared`)
}

func TestRunUnexpectedSuccess(t *testing.T) {
	// Expecting an error from a search that succeeds is a failure.
	scenario := loadTestScenario(t, "walking_arrow")
	scenario.Expect = ExpectClause{Error: "UNSUPPORTED_THEORY"}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Failures, 1)
	assert.Contains(t, result.Failures[0], "search succeeded")
}
