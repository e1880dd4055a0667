package harness

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/motif/internal/compiler"
	"github.com/roach88/motif/internal/model"
	"github.com/roach88/motif/internal/motif"
	"github.com/roach88/motif/internal/theory"
)

// Result is the outcome of running one scenario.
type Result struct {
	// Pass is true when every expectation held.
	Pass bool

	// Failures lists every expectation that did not hold.
	Failures []string

	// Images is the search result, nil when the search failed.
	Images []*model.Model

	// SearchErr is the search error, nil on success.
	SearchErr error
}

// Run executes a scenario: compile its specs, build the pattern and
// target models, run the search, and check every expectation.
// A setup problem (bad specs, unknown model names) is returned as an
// error; expectation mismatches go into Result.Failures.
func Run(scenario *Scenario) (*Result, error) {
	pattern, target, err := buildModels(scenario)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	result.Images, result.SearchErr = motif.Search(pattern, target)
	result.Failures = checkExpectations(&scenario.Expect, result)
	result.Pass = len(result.Failures) == 0
	return result, nil
}

// buildModels compiles the scenario's spec files and constructs the
// pattern and target models.
func buildModels(scenario *Scenario) (pattern, target *model.Model, err error) {
	value, err := compileSpecFiles(scenario.Specs)
	if err != nil {
		return nil, nil, err
	}

	theories, models, err := extractDecls(value)
	if err != nil {
		return nil, nil, err
	}

	built := make(map[string]*theory.DoubleTheory, len(theories))
	for _, decl := range theories {
		th, buildErr := compiler.BuildTheory(decl)
		if buildErr != nil {
			return nil, nil, fmt.Errorf("building theory %q: %w", decl.Name, buildErr)
		}
		built[decl.Name] = th
	}

	pattern, err = buildNamedModel(scenario.Pattern, models, built)
	if err != nil {
		return nil, nil, err
	}
	target, err = buildNamedModel(scenario.Target, models, built)
	if err != nil {
		return nil, nil, err
	}
	return pattern, target, nil
}

// compileSpecFiles compiles every spec file and unifies the results.
func compileSpecFiles(paths []string) (cue.Value, error) {
	ctx := cuecontext.New()

	var value cue.Value
	for i, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return cue.Value{}, fmt.Errorf("reading spec %s: %w", path, err)
		}
		v := ctx.CompileBytes(data, cue.Filename(path))
		if err := v.Err(); err != nil {
			return cue.Value{}, fmt.Errorf("compiling spec %s: %w", path, err)
		}
		if i == 0 {
			value = v
		} else {
			value = value.Unify(v)
		}
	}
	if err := value.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("unifying specs: %w", err)
	}
	return value, nil
}

// extractDecls compiles every theory and model declaration in the value.
func extractDecls(value cue.Value) ([]*compiler.TheoryDecl, []*compiler.ModelDecl, error) {
	var theories []*compiler.TheoryDecl
	theoriesVal := value.LookupPath(cue.ParsePath("theory"))
	if theoriesVal.Exists() {
		iter, err := theoriesVal.Fields()
		if err != nil {
			return nil, nil, fmt.Errorf("iterating theories: %w", err)
		}
		for iter.Next() {
			decl, err := compiler.CompileTheory(iter.Value())
			if err != nil {
				return nil, nil, fmt.Errorf("theory %s: %w", iter.Label(), err)
			}
			theories = append(theories, decl)
		}
	}

	var models []*compiler.ModelDecl
	modelsVal := value.LookupPath(cue.ParsePath("model"))
	if modelsVal.Exists() {
		iter, err := modelsVal.Fields()
		if err != nil {
			return nil, nil, fmt.Errorf("iterating models: %w", err)
		}
		for iter.Next() {
			decl, err := compiler.CompileModel(iter.Value())
			if err != nil {
				return nil, nil, fmt.Errorf("model %s: %w", iter.Label(), err)
			}
			models = append(models, decl)
		}
	}

	return theories, models, nil
}

// buildNamedModel finds and constructs one declared model.
func buildNamedModel(name string, decls []*compiler.ModelDecl, theories map[string]*theory.DoubleTheory) (*model.Model, error) {
	for _, decl := range decls {
		if decl.Name != name {
			continue
		}
		th, ok := theories[decl.Theory]
		if !ok {
			return nil, fmt.Errorf("model %q references unknown theory %q", name, decl.Theory)
		}
		return compiler.BuildModel(decl, th)
	}
	return nil, fmt.Errorf("model %q not declared in specs", name)
}

// checkExpectations evaluates the expect clause against the search result.
func checkExpectations(expect *ExpectClause, result *Result) []string {
	var failures []string

	if expect.Error != "" {
		if result.SearchErr == nil {
			return []string{fmt.Sprintf("expected error %s, search succeeded with %d image(s)", expect.Error, len(result.Images))}
		}
		var se *motif.SearchError
		if !errors.As(result.SearchErr, &se) || string(se.Code) != expect.Error {
			return []string{fmt.Sprintf("expected error %s, got: %v", expect.Error, result.SearchErr)}
		}
		return nil
	}

	if result.SearchErr != nil {
		return []string{fmt.Sprintf("search failed: %v", result.SearchErr)}
	}

	if expect.ImageCount != nil && len(result.Images) != *expect.ImageCount {
		failures = append(failures, fmt.Sprintf("expected %d image(s), found %d", *expect.ImageCount, len(result.Images)))
	}

	if len(expect.Images) > 0 {
		if len(result.Images) != len(expect.Images) {
			failures = append(failures, fmt.Sprintf("expected %d listed image(s), found %d", len(expect.Images), len(result.Images)))
		} else {
			for i, want := range expect.Images {
				failures = append(failures, checkImage(i, want, result.Images[i])...)
			}
		}
	}

	return failures
}

// checkImage compares one expected image against one found image,
// position by position. Ids are compared as sorted sets.
func checkImage(index int, want ImageExpect, got *model.Model) []string {
	var failures []string

	gotObs := make([]string, 0, len(got.Objects()))
	for _, ob := range got.Objects() {
		gotObs = append(gotObs, string(ob.ID))
	}
	gotMors := make([]string, 0, len(got.Morphisms()))
	for _, mor := range got.Morphisms() {
		gotMors = append(gotMors, string(mor.ID))
	}

	if !sameIDSet(want.Objects, gotObs) {
		failures = append(failures, fmt.Sprintf("image %d: expected objects %v, found %v", index, want.Objects, gotObs))
	}
	if !sameIDSet(want.Morphisms, gotMors) {
		failures = append(failures, fmt.Sprintf("image %d: expected morphisms %v, found %v", index, want.Morphisms, gotMors))
	}

	return failures
}

func sameIDSet(want, got []string) bool {
	if len(want) != len(got) {
		return false
	}
	w := append([]string(nil), want...)
	g := append([]string(nil), got...)
	sort.Strings(w)
	sort.Strings(g)
	for i := range w {
		if w[i] != g[i] {
			return false
		}
	}
	return true
}
