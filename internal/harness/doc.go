// Package harness provides conformance testing for motif search.
//
// The harness loads theory and model declarations, runs one motif search
// per scenario, and checks the result list against declared expectations
// and golden snapshots.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	specs:
//	  - path/to/specs.cue
//	pattern: arrow
//	target: arrows
//	expect:
//	  image_count: 2
//	  images:
//	    - objects: [x, y]
//	      morphisms: [f]
//	    - objects: [y, z]
//	      morphisms: [g]
//
// Spec paths are relative to the scenario file. The images list, when
// present, is matched in order against the search result; element ids are
// compared as sets within each image. A scenario may instead expect a
// failure:
//
//	expect:
//	  error: UNSUPPORTED_THEORY
//
// # Golden Snapshots
//
// RunWithGolden serializes the whole result list as canonical JSON and
// compares it against testdata/golden/{name}.golden. Regenerate with:
//
//	go test ./internal/harness -update
//
// Canonical serialization makes snapshots byte-stable across runs, so any
// golden diff is a real behavior change.
package harness
