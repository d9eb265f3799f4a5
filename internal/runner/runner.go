// Package runner drives one experiment run: it expands the filters into
// lens/task pairs and processes them strictly one at a time, invoking the
// backend and recording each response before starting the next.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/substratelabs/lensrun/internal/backend"
	"github.com/substratelabs/lensrun/internal/catalog"
	"github.com/substratelabs/lensrun/internal/record"
)

// Options describes a single run request. It is built once from the CLI
// arguments and never mutated.
type Options struct {
	Model        string
	TaskFilter   string
	PromptFilter string
	DryRun       bool
	SummaryPath  string
}

type Runner struct {
	Catalog  *catalog.Catalog
	Backend  backend.Runner
	Recorder *record.Recorder
	Out      io.Writer
	Log      *zap.Logger
}

// Run executes the cross-product selected by opts and returns the number of
// units completed. A failure in any unit halts the remaining run; responses
// already recorded stay on disk.
func (r *Runner) Run(ctx context.Context, opts Options) (int, error) {
	if r.Catalog == nil {
		return 0, errors.New("catalog is required")
	}
	if r.Backend == nil {
		return 0, errors.New("backend is required")
	}
	if r.Recorder == nil {
		return 0, errors.New("recorder is required")
	}
	if r.Out == nil {
		r.Out = os.Stdout
	}
	log := r.Log
	if log == nil {
		log = zap.NewNop()
	}

	pairs, err := r.Catalog.Resolve(opts.PromptFilter, opts.TaskFilter)
	if err != nil {
		return 0, err
	}

	modelID := r.Catalog.ResolveModel(opts.Model)
	runID := uuid.NewString()[:8]
	log = log.With(zap.String("run_id", runID))

	fmt.Fprintf(r.Out, "==> run %s | model %s", runID, opts.Model)
	if modelID != opts.Model {
		fmt.Fprintf(r.Out, " (%s)", modelID)
	}
	fmt.Fprintf(r.Out, " | lenses %s | tasks %s | %d units\n",
		opts.PromptFilter, opts.TaskFilter, len(pairs))

	if opts.DryRun {
		for _, p := range pairs {
			fmt.Fprintf(r.Out, "  - %s x %s\n", p.Prompt.Name, p.Task.Name)
		}
		fmt.Fprintf(r.Out, "==> dry run, nothing invoked\n")
		return len(pairs), nil
	}

	var results []record.RunResult
	for _, p := range pairs {
		log.Debug("unit start",
			zap.String("lens", p.Prompt.Name),
			zap.String("task", p.Task.Name))

		res, err := r.invoke(ctx, modelID, p)
		if err != nil {
			return len(results), err
		}

		rr, err := r.Recorder.Record(opts.Model, p.Prompt.Name, p.Task.Name, res.Stdout, res.Elapsed)
		if err != nil {
			return len(results), err
		}
		results = append(results, rr)

		fmt.Fprintf(r.Out, "  %-18s x %-20s | %5.1fs | %4d lines | %s\n",
			p.Prompt.Name, p.Task.Name, rr.Elapsed, rr.Lines, rr.Path)
		log.Debug("unit done",
			zap.String("lens", p.Prompt.Name),
			zap.String("task", p.Task.Name),
			zap.Duration("elapsed", res.Elapsed),
			zap.Int("lines", rr.Lines))
	}

	if opts.SummaryPath != "" {
		if err := r.Recorder.WriteSummary(opts.SummaryPath, results); err != nil {
			return len(results), err
		}
		fmt.Fprintf(r.Out, "==> summary written to %s\n", opts.SummaryPath)
	}

	fmt.Fprintf(r.Out, "==> %d experiments recorded to %s\n", len(results), r.Recorder.Dir)
	return len(results), nil
}

// invoke processes one unit: re-read the lens text from disk (edits between
// runs must take effect, so nothing is cached), then block on the backend.
func (r *Runner) invoke(ctx context.Context, modelID string, p catalog.Pair) (backend.Result, error) {
	lensPath := r.Catalog.ResolvePath(p.Prompt.Path)
	system, err := os.ReadFile(lensPath)
	if err != nil {
		return backend.Result{}, fmt.Errorf("load lens %q: %w", p.Prompt.Name, err)
	}

	res, err := r.Backend.Complete(ctx, backend.Request{
		Model:  modelID,
		System: string(system),
		User:   p.Task.Text,
	})
	if err != nil {
		return backend.Result{}, fmt.Errorf("lens %q x task %q: %w", p.Prompt.Name, p.Task.Name, err)
	}
	return res, nil
}

// Scratch creates the per-run working directory handed to the backend CLI,
// keeping it away from any directory carrying project configuration. The
// caller removes it when the run ends.
func Scratch() (string, func(), error) {
	dir, err := os.MkdirTemp("", "lensrun-")
	if err != nil {
		return "", nil, fmt.Errorf("create scratch dir: %w", err)
	}
	return dir, func() { os.RemoveAll(dir) }, nil
}
