package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/motif/internal/compiler"
)

// ValidationFinding is one validation error, from either the declaration
// schema pass or the semantic model pass.
type ValidationFinding struct {
	Source  string `json:"source"` // "theory", "model"
	Name    string `json:"name"`   // declaration name
	Code    string `json:"code"`
	Where   string `json:"where"` // field or entity the error is about
	Message string `json:"message"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid    bool                `json:"valid"`
	Findings []ValidationFinding `json:"findings,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <specs-dir>",
		Short: "Validate theories and models",
		Long: `Validate CUE theory and model specs.

Runs two passes and collects every error from both: the declaration
schema pass (unknown kinds, duplicate names, dangling references) and
the semantic pass (each model is built and checked for missing or
mistyped morphism endpoints).`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, specsDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	loadResult, loadErrors := LoadSpecs(specsDir, LoadModeCollectAll)

	// Handle load errors (directory not found, no files, etc.)
	if loadResult == nil && len(loadErrors) > 0 {
		var loadErr *LoadError
		if errors.As(loadErrors[0], &loadErr) {
			return outputValidateError(formatter, loadErr.Code, loadErr.Message)
		}
		return outputValidateError(formatter, ErrCodeGeneric, loadErrors[0].Error())
	}

	formatter.VerboseLog("Found %d CUE file(s) in %s", loadResult.FileCount, specsDir)

	var findings []ValidationFinding
	for _, err := range loadErrors {
		code, message := parseCompileError(err)
		findings = append(findings, ValidationFinding{
			Source:  "load",
			Code:    code,
			Message: message,
		})
	}
	findings = append(findings, validateDecls(loadResult, formatter)...)

	if len(findings) > 0 {
		return outputValidationFindings(formatter, findings)
	}

	return outputValidateSuccess(formatter)
}

// validateDecls runs the declaration schema pass on every theory and
// model, then the semantic pass on every model whose declarations passed.
func validateDecls(loadResult *LoadResult, formatter *OutputFormatter) []ValidationFinding {
	var findings []ValidationFinding

	for _, decl := range loadResult.Theories {
		formatter.VerboseLog("Validating theory: %s", decl.Name)
		for _, verr := range compiler.Validate(decl) {
			findings = append(findings, ValidationFinding{
				Source:  "theory",
				Name:    decl.Name,
				Code:    verr.Code,
				Where:   verr.Field,
				Message: verr.Message,
			})
		}
	}

	theories, err := loadResult.BuildTheories()
	if err != nil {
		// Declaration errors above already cover the cause; building is
		// best effort once the schema pass has failed.
		theories = nil
	}

	for _, decl := range loadResult.Models {
		formatter.VerboseLog("Validating model: %s", decl.Name)

		declErrs := compiler.Validate(decl)
		for _, verr := range declErrs {
			findings = append(findings, ValidationFinding{
				Source:  "model",
				Name:    decl.Name,
				Code:    verr.Code,
				Where:   verr.Field,
				Message: verr.Message,
			})
		}
		if len(declErrs) > 0 || theories == nil {
			continue
		}

		th, ok := theories[decl.Theory]
		if !ok {
			findings = append(findings, ValidationFinding{
				Source:  "model",
				Name:    decl.Name,
				Code:    compiler.ErrModelNoTheory,
				Where:   "theory",
				Message: fmt.Sprintf("unknown theory %q", decl.Theory),
			})
			continue
		}

		m, buildErr := compiler.BuildModel(decl, th)
		if buildErr != nil {
			findings = append(findings, ValidationFinding{
				Source:  "model",
				Name:    decl.Name,
				Code:    ErrCodeGeneric,
				Message: buildErr.Error(),
			})
			continue
		}

		for _, verr := range m.Validate() {
			findings = append(findings, ValidationFinding{
				Source:  "model",
				Name:    decl.Name,
				Code:    verr.Code,
				Where:   verr.Entity,
				Message: verr.Message,
			})
		}
	}

	return findings
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter) error {
	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true})
	}

	fmt.Fprintln(formatter.Writer, "✓ All specs valid")
	return nil
}

// outputValidateError outputs a single command-level validation error.
func outputValidateError(formatter *OutputFormatter, code, message string) error {
	_ = formatter.Error(code, message, nil)
	// Load errors are command-level errors (exit code 2)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}

// outputValidationFindings outputs collected validation errors.
func outputValidationFindings(formatter *OutputFormatter, findings []ValidationFinding) error {
	if formatter.Format == "json" {
		result := ValidationResult{
			Valid:    false,
			Findings: findings,
		}

		response := CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    findings[0].Code,
				Message: findings[0].Message,
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}

		// Validation failures = exit code 1
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(findings)))
	}

	// Text format
	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, f := range findings {
		where := f.Name
		if f.Where != "" {
			where += "." + f.Where
		}
		fmt.Fprintf(formatter.Writer, "  %s %s: %s: %s\n", f.Source, where, f.Code, f.Message)
	}
	fmt.Fprintln(formatter.Writer)

	// Validation failures = exit code 1
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(findings)))
}
