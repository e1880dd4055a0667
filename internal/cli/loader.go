package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"

	"github.com/roach88/motif/internal/compiler"
	"github.com/roach88/motif/internal/model"
	"github.com/roach88/motif/internal/theory"
)

// LoadMode controls how errors are handled during spec loading.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all errors before returning.
	LoadModeCollectAll
)

// LoadResult contains the results of loading specs from a directory.
type LoadResult struct {
	Theories  []*compiler.TheoryDecl
	Models    []*compiler.ModelDecl
	CUEValue  cue.Value // The raw CUE value for additional processing
	FileCount int       // Number of CUE files found
}

// LoadError represents an error that occurred during spec loading.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadSpecs loads and compiles CUE theory and model declarations from a
// directory. If mode is LoadModeFailFast, returns on first error.
// If mode is LoadModeCollectAll, collects all errors.
func LoadSpecs(dir string, mode LoadMode) (*LoadResult, []error) {
	var errs []error

	// Verify directory exists
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("specs directory not found: %s", dir)}}
	}
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing specs directory: %v", err)}}
	}
	if !info.IsDir() {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}}
	}

	// Find CUE files
	cueFiles, err := FindCUEFiles(dir)
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}}
	}
	if len(cueFiles) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}}
	}

	// Load CUE instances
	ctx := cuecontext.New()
	cfg := &load.Config{Dir: dir}
	instances := load.Instances([]string{"."}, cfg)
	if len(instances) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}}
	}

	inst := instances[0]
	if inst.Err != nil {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, []error{&LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err)}}
	}

	result := &LoadResult{
		CUEValue:  value,
		FileCount: len(cueFiles),
	}

	// Extract theories
	theoriesVal := value.LookupPath(cue.ParsePath("theory"))
	if theoriesVal.Exists() {
		iter, iterErr := theoriesVal.Fields()
		if iterErr != nil {
			errs = append(errs, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("iterating theories: %v", iterErr)})
			if mode == LoadModeFailFast {
				return result, errs
			}
		} else {
			for iter.Next() {
				decl, compileErr := compiler.CompileTheory(iter.Value())
				if compileErr != nil {
					errs = append(errs, convertCompileError(compileErr, "theory."+iter.Label()))
					if mode == LoadModeFailFast {
						return result, errs
					}
					continue
				}
				result.Theories = append(result.Theories, decl)
			}
		}
	}

	// Extract models
	modelsVal := value.LookupPath(cue.ParsePath("model"))
	if modelsVal.Exists() {
		iter, iterErr := modelsVal.Fields()
		if iterErr != nil {
			errs = append(errs, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("iterating models: %v", iterErr)})
			if mode == LoadModeFailFast {
				return result, errs
			}
		} else {
			for iter.Next() {
				decl, compileErr := compiler.CompileModel(iter.Value())
				if compileErr != nil {
					errs = append(errs, convertCompileError(compileErr, "model."+iter.Label()))
					if mode == LoadModeFailFast {
						return result, errs
					}
					continue
				}
				result.Models = append(result.Models, decl)
			}
		}
	}

	if len(result.Theories) == 0 && len(result.Models) == 0 && len(errs) == 0 {
		errs = append(errs, &LoadError{Code: ErrCodeGeneric, Message: "no theories or models found in specs"})
	}

	return result, errs
}

// FindCUEFiles walks the directory and returns all .cue file paths.
func FindCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// BuildTheories constructs every loaded theory, keyed by name.
func (r *LoadResult) BuildTheories() (map[string]*theory.DoubleTheory, error) {
	theories := make(map[string]*theory.DoubleTheory, len(r.Theories))
	for _, decl := range r.Theories {
		th, err := compiler.BuildTheory(decl)
		if err != nil {
			return nil, fmt.Errorf("building theory %q: %w", decl.Name, err)
		}
		theories[decl.Name] = th
	}
	return theories, nil
}

// BuildModel constructs the named model against its declared theory.
func (r *LoadResult) BuildModel(name string, theories map[string]*theory.DoubleTheory) (*model.Model, error) {
	for _, decl := range r.Models {
		if decl.Name != name {
			continue
		}
		th, ok := theories[decl.Theory]
		if !ok {
			return nil, fmt.Errorf("model %q references unknown theory %q", name, decl.Theory)
		}
		return compiler.BuildModel(decl, th)
	}
	return nil, fmt.Errorf("model %q not found (have: %s)", name, strings.Join(r.ModelNames(), ", "))
}

// ModelNames returns the sorted names of all loaded model declarations.
func (r *LoadResult) ModelNames() []string {
	names := make([]string, 0, len(r.Models))
	for _, decl := range r.Models {
		names = append(names, decl.Name)
	}
	sort.Strings(names)
	return names
}

// convertCompileError converts a compiler error to a LoadError with position info.
func convertCompileError(err error, context string) *LoadError {
	var compileErr *compiler.CompileError
	if errors.As(err, &compileErr) {
		return &LoadError{
			Code:    MapFieldToErrorCode(compileErr.Field),
			Message: compileErr.Message,
			Pos:     compileErr.Pos,
		}
	}
	return &LoadError{
		Code:    ErrCodeGeneric,
		Message: fmt.Sprintf("%s: %v", context, err),
	}
}

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No CUE files found
	ErrCodeLoadFailed  = "E004" // CUE load failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // CUE build failed
	ErrCodeWriteFailed = "E007" // File write error
)

// MapFieldToErrorCode maps a compiler error field to an error code.
// Declaration-level codes come from the compiler package (E1xx).
func MapFieldToErrorCode(field string) string {
	switch {
	case field == "kind":
		return compiler.ErrTheoryInvalidKind
	case field == "theory":
		return compiler.ErrModelNoTheory
	case strings.HasSuffix(field, ".src"), strings.HasSuffix(field, ".tgt"):
		return compiler.ErrTheoryUnknownObRef
	case strings.HasSuffix(field, ".type"):
		return compiler.ErrModelEmptyType
	case strings.HasSuffix(field, ".dom"), strings.HasSuffix(field, ".cod"):
		return compiler.ErrModelUnknownRef
	default:
		return ErrCodeGeneric
	}
}
