package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/motif/internal/model"
	"github.com/roach88/motif/internal/motif"
	"github.com/roach88/motif/internal/store"
	"github.com/roach88/motif/internal/theory"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	DBPath string
}

// ReplayResult reports whether a re-run reproduced a persisted motif run.
type ReplayResult struct {
	RunID         string `json:"run_id"`
	Deterministic bool   `json:"deterministic"`
	StoredCount   int    `json:"stored_count"`
	ReplayCount   int    `json:"replay_count"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay <specs-dir> <run-id>",
		Short: "Re-run a persisted motif run and verify determinism",
		Long: `Re-run a persisted motif run against its stored snapshots.

The pattern and target snapshots are reloaded from the database, the
search runs again using the theories declared in the specs directory,
and the new result list is compared byte-for-byte against the stored
canonical images. Any difference is a determinism failure.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DBPath, "db", "", "database path (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runReplay(opts *ReplayOptions, specsDir, runID string, cmd *cobra.Command) error {
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

	s, err := store.Open(opts.DBPath)
	if err != nil {
		_ = formatter.Error(ErrCodeNotFound, err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	}
	defer s.Close()

	ctx := cmd.Context()
	run, err := s.ReadMotifRun(ctx, runID)
	if errors.Is(err, store.ErrNotFound) {
		message := fmt.Sprintf("run %s not found", runID)
		_ = formatter.Error(ErrCodeNotFound, message, nil)
		return NewExitError(ExitCommandError, message)
	}
	if err != nil {
		return err
	}

	pattern, err := loadSnapshot(cmd, s, run.PatternID, theories)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	}
	target, err := loadSnapshot(cmd, s, run.TargetID, theories)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	}

	formatter.VerboseLog("Replaying run %s (%d stored image(s))", runID, run.ImageCount)

	images, err := motif.Search(pattern, target)
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	}

	replayJSON, err := marshalReplayImages(images)
	if err != nil {
		return err
	}

	result := &ReplayResult{
		RunID:         runID,
		Deterministic: replayJSON == run.ImagesJSON,
		StoredCount:   run.ImageCount,
		ReplayCount:   len(images),
	}

	return outputReplayResult(formatter, result)
}

// loadSnapshot resolves a snapshot's theory by name, then loads it.
func loadSnapshot(cmd *cobra.Command, s *store.Store, id string, theories map[string]*theory.DoubleTheory) (*model.Model, error) {
	infos, err := s.ListModels(cmd.Context())
	if err != nil {
		return nil, err
	}
	for _, info := range infos {
		if info.ID != id {
			continue
		}
		th, ok := theories[info.Theory]
		if !ok {
			return nil, fmt.Errorf("snapshot %s uses theory %q, not declared in specs", id, info.Theory)
		}
		return s.LoadModel(cmd.Context(), id, th)
	}
	return nil, fmt.Errorf("snapshot %s: %w", id, store.ErrNotFound)
}

// marshalReplayImages mirrors the store's canonical run encoding.
func marshalReplayImages(images []*model.Model) (string, error) {
	out := "["
	for i, img := range images {
		if i > 0 {
			out += ","
		}
		b, err := model.MarshalCanonical(img)
		if err != nil {
			return "", err
		}
		out += string(b)
	}
	return out + "]", nil
}

// outputReplayResult outputs the replay verdict.
func outputReplayResult(formatter *OutputFormatter, result *ReplayResult) error {
	if formatter.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else if result.Deterministic {
		fmt.Fprintf(formatter.Writer, "✓ Run %s is deterministic (%d image(s))\n", result.RunID, result.StoredCount)
	} else {
		fmt.Fprintf(formatter.Writer, "✗ Run %s diverged: stored %d image(s), replay found %d\n",
			result.RunID, result.StoredCount, result.ReplayCount)
	}

	if !result.Deterministic {
		// Divergence is a verification failure (exit code 1)
		return NewExitError(ExitFailure, fmt.Sprintf("run %s is not deterministic", result.RunID))
	}
	return nil
}
