package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/motif/internal/model"
	"github.com/roach88/motif/internal/motif"
	"github.com/roach88/motif/internal/store"
)

// MotifsOptions holds flags for the motifs command.
type MotifsOptions struct {
	*RootOptions
	Pattern string // pattern model name
	Target  string // target model name
	DBPath  string // optional database to persist the run
}

// MotifImage is one found image in CLI output.
type MotifImage struct {
	Objects   []string `json:"objects"`
	Morphisms []string `json:"morphisms"`
}

// MotifsResult holds the result of one motif search.
type MotifsResult struct {
	Pattern    string       `json:"pattern"`
	Target     string       `json:"target"`
	ImageCount int          `json:"image_count"`
	Images     []MotifImage `json:"images"`
	RunID      string       `json:"run_id,omitempty"` // set when persisted
}

// NewMotifsCommand creates the motifs command.
func NewMotifsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MotifsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "motifs <specs-dir>",
		Short: "Find all motif occurrences of a pattern in a target",
		Long: `Find every embedding of a pattern model into a target model.

Both models must be declared in the specs directory and share a theory.
Images are reported smallest-first (object count, then morphism count)
with structural duplicates removed.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMotifs(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Pattern, "pattern", "", "pattern model name (required)")
	cmd.Flags().StringVar(&opts.Target, "target", "", "target model name (required)")
	cmd.Flags().StringVar(&opts.DBPath, "db", "", "database path to persist the run")
	_ = cmd.MarkFlagRequired("pattern")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func runMotifs(opts *MotifsOptions, specsDir string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	loadResult, loadErrors := LoadSpecs(specsDir, LoadModeFailFast)
	if len(loadErrors) > 0 {
		code, message := parseCompileError(loadErrors[0])
		_ = formatter.Error(code, message, nil)
		return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
	}

	theories, err := loadResult.BuildTheories()
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	}

	pattern, err := loadResult.BuildModel(opts.Pattern, theories)
	if err != nil {
		_ = formatter.Error(ErrCodeNotFound, err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	}
	target, err := loadResult.BuildModel(opts.Target, theories)
	if err != nil {
		_ = formatter.Error(ErrCodeNotFound, err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	}

	formatter.VerboseLog("Searching for %s in %s", opts.Pattern, opts.Target)

	images, err := motif.Search(pattern, target)
	if err != nil {
		if motif.IsUnsupportedTheory(err) {
			_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
			return NewExitError(ExitCommandError, err.Error())
		}
		return err
	}

	result := &MotifsResult{
		Pattern:    opts.Pattern,
		Target:     opts.Target,
		ImageCount: len(images),
		Images:     make([]MotifImage, 0, len(images)),
	}
	for _, img := range images {
		result.Images = append(result.Images, summarizeImage(img))
	}

	if opts.DBPath != "" {
		runID, persistErr := persistRun(cmd, opts, pattern, target, images)
		if persistErr != nil {
			_ = formatter.Error(ErrCodeWriteFailed, persistErr.Error(), nil)
			return NewExitError(ExitCommandError, persistErr.Error())
		}
		result.RunID = runID
		formatter.VerboseLog("Persisted run %s to %s", runID, opts.DBPath)
	}

	return outputMotifsResult(formatter, result)
}

// persistRun saves both snapshots and the run record.
func persistRun(cmd *cobra.Command, opts *MotifsOptions, pattern, target *model.Model, images []*model.Model) (string, error) {
	s, err := store.Open(opts.DBPath)
	if err != nil {
		return "", err
	}
	defer s.Close()

	ctx := cmd.Context()
	patternID, err := s.SaveModel(ctx, opts.Pattern, pattern)
	if err != nil {
		return "", err
	}
	targetID, err := s.SaveModel(ctx, opts.Target, target)
	if err != nil {
		return "", err
	}
	return s.SaveMotifRun(ctx, patternID, targetID, images)
}

// summarizeImage lists an image's element ids in insertion order.
func summarizeImage(img *model.Model) MotifImage {
	mi := MotifImage{Objects: []string{}, Morphisms: []string{}}
	for _, ob := range img.Objects() {
		mi.Objects = append(mi.Objects, string(ob.ID))
	}
	for _, mor := range img.Morphisms() {
		mi.Morphisms = append(mi.Morphisms, string(mor.ID))
	}
	return mi
}

// outputMotifsResult outputs the search result.
func outputMotifsResult(formatter *OutputFormatter, result *MotifsResult) error {
	if formatter.Format == "json" {
		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(CLIResponse{Status: "ok", Data: result})
	}

	fmt.Fprintf(formatter.Writer, "✓ Found %d occurrence(s) of %s in %s\n",
		result.ImageCount, result.Pattern, result.Target)
	for i, img := range result.Images {
		fmt.Fprintf(formatter.Writer, "  %d: objects %v, morphisms %v\n", i+1, img.Objects, img.Morphisms)
	}
	if result.RunID != "" {
		fmt.Fprintf(formatter.Writer, "Run id: %s\n", result.RunID)
	}
	return nil
}
