// Package record persists raw model responses under deterministic names.
// The output path is a pure function of (model, lens, task), so re-running
// the same triple overwrites the previous response by design.
package record

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Recorder writes responses into Dir, creating it on first use. Ext, when
// set, is appended to every output filename (e.g. ".md").
type Recorder struct {
	Dir string
	Ext string
}

// RunResult describes one recorded response. The JSON field names match the
// run summary format.
type RunResult struct {
	Model   string  `json:"model"`
	Lens    string  `json:"lens"`
	Task    string  `json:"task"`
	Path    string  `json:"path"`
	Elapsed float64 `json:"time_s"`
	Lines   int     `json:"lines"`
}

// Path computes the output location for a triple. No timestamps or run ids:
// the same triple always maps to the same file.
func (r *Recorder) Path(model, lens, task string) string {
	return filepath.Join(r.Dir, fmt.Sprintf("%s_%s_%s%s", model, lens, task, r.Ext))
}

// Record writes raw to the triple's path, overwriting any prior content, and
// returns the result line the orchestrator reports.
func (r *Recorder) Record(model, lens, task, raw string, elapsed time.Duration) (RunResult, error) {
	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return RunResult{}, fmt.Errorf("create output dir: %w", err)
	}
	path := r.Path(model, lens, task)
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		return RunResult{}, fmt.Errorf("write %s: %w", path, err)
	}
	return RunResult{
		Model:   model,
		Lens:    lens,
		Task:    task,
		Path:    path,
		Elapsed: roundSeconds(elapsed),
		Lines:   countLines(raw),
	}, nil
}

// WriteSummary dumps all results of a run as indented JSON, overwriting path.
func (r *Recorder) WriteSummary(path string, results []RunResult) error {
	b, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

func roundSeconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*10) / 10
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}
