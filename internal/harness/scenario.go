package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/motif/internal/motif"
)

// Scenario defines one conformance scenario: a pattern searched in a
// target, with expectations on the resulting image list.
type Scenario struct {
	// Name uniquely identifies this scenario. Also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Specs lists paths to CUE spec files declaring the theories and
	// models. Paths are relative to the scenario file location.
	Specs []string `yaml:"specs"`

	// Pattern names the pattern model declared in the specs.
	Pattern string `yaml:"pattern"`

	// Target names the target model declared in the specs.
	Target string `yaml:"target"`

	// Expect declares the expected outcome.
	Expect ExpectClause `yaml:"expect"`
}

// ExpectClause specifies the expected search outcome. Exactly one of the
// success fields (image_count, images) or the error field must be set.
type ExpectClause struct {
	// ImageCount is the expected number of images, if set.
	ImageCount *int `yaml:"image_count,omitempty"`

	// Images is the expected ordered image list, if set.
	Images []ImageExpect `yaml:"images,omitempty"`

	// Error is the expected search error code (e.g. UNSUPPORTED_THEORY).
	Error string `yaml:"error,omitempty"`
}

// ImageExpect describes one expected image by its element ids.
// Ids are compared as sets.
type ImageExpect struct {
	Objects   []string `yaml:"objects"`
	Morphisms []string `yaml:"morphisms"`
}

// LoadScenario reads and parses a scenario YAML file. Spec paths are
// resolved relative to the scenario file's directory. Returns an error if
// the file is malformed, contains unknown fields (typos), or is missing
// required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "expects:" vs "expect:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	base := filepath.Dir(path)
	for i, specPath := range scenario.Specs {
		if !filepath.IsAbs(specPath) {
			scenario.Specs[i] = filepath.Join(base, specPath)
		}
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Specs) == 0 {
		return fmt.Errorf("specs list is required and must be non-empty")
	}

	for _, specPath := range s.Specs {
		if _, err := os.Stat(specPath); os.IsNotExist(err) {
			return fmt.Errorf("spec file not found: %s", specPath)
		}
	}

	if s.Pattern == "" {
		return fmt.Errorf("pattern is required")
	}
	if s.Target == "" {
		return fmt.Errorf("target is required")
	}

	return validateExpect(&s.Expect)
}

// validateExpect checks the expectation clause.
func validateExpect(e *ExpectClause) error {
	if e.Error != "" {
		if e.ImageCount != nil || len(e.Images) > 0 {
			return fmt.Errorf("expect: error cannot be combined with image expectations")
		}
		if motif.ErrorCode(e.Error) != motif.ErrCodeUnsupportedTheory {
			return fmt.Errorf("expect: unknown error code %q", e.Error)
		}
		return nil
	}

	if e.ImageCount == nil && len(e.Images) == 0 {
		return fmt.Errorf("expect: image_count, images, or error is required")
	}
	if e.ImageCount != nil && *e.ImageCount < 0 {
		return fmt.Errorf("expect: image_count must be non-negative")
	}
	if e.ImageCount != nil && len(e.Images) > 0 && *e.ImageCount != len(e.Images) {
		return fmt.Errorf("expect: image_count %d disagrees with %d listed image(s)", *e.ImageCount, len(e.Images))
	}

	return nil
}
