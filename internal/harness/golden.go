package harness

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/motif/internal/model"
)

// RunWithGolden executes a scenario and compares its result list against
// a golden file at testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// The snapshot uses canonical model serialization, so it is byte-stable
// across runs and a golden diff always means a behavior change.
//
// Returns an error on setup or search failure; an expectation or golden
// mismatch fails the test directly.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	if result.SearchErr != nil {
		return result.SearchErr
	}

	for _, failure := range result.Failures {
		t.Errorf("scenario %s: %s", scenario.Name, failure)
	}

	snapshot, err := buildSnapshot(scenario, result.Images)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, snapshot)

	return nil
}

// buildSnapshot serializes a result list as one canonical JSON document.
// Key order is fixed and each image uses model.MarshalCanonical, so equal
// results produce identical bytes.
func buildSnapshot(scenario *Scenario, images []*model.Model) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `{"scenario_name":%q,"pattern":%q,"target":%q,"images":[`,
		scenario.Name, scenario.Pattern, scenario.Target)
	for i, img := range images {
		if i > 0 {
			buf.WriteByte(',')
		}
		b, err := model.MarshalCanonical(img)
		if err != nil {
			return nil, fmt.Errorf("image %d: %w", i, err)
		}
		buf.Write(b)
	}
	buf.WriteString("]}")
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
