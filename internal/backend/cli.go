package backend

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

const defaultBinary = "claude"

// CLIRunner invokes the model CLI non-interactively. Workdir should point at
// a neutral scratch directory: the CLI auto-loads project configuration from
// its working directory, which would contaminate the experiment if it ran
// inside the repository.
type CLIRunner struct {
	Binary  string
	Workdir string
	Log     *zap.Logger
}

func (c *CLIRunner) Complete(ctx context.Context, req Request) (Result, error) {
	binary := resolveBinary(c.Binary)
	args := c.args(req)

	cmd := exec.CommandContext(ctx, binary, args...)
	if c.Workdir != "" {
		cmd.Dir = c.Workdir
	} else {
		cmd.Dir = os.TempDir()
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if c.Log != nil {
		c.Log.Debug("backend invocation",
			zap.String("binary", binary),
			zap.String("model", req.Model),
			zap.String("workdir", cmd.Dir),
			zap.Int("system_chars", len(req.System)),
			zap.Int("user_chars", len(req.User)))
	}

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if err != nil {
		return Result{}, &Error{Binary: binary, Stderr: stderr.String(), Err: err}
	}

	return Result{
		Stdout:  stdout.String(),
		Stderr:  stderr.String(),
		Elapsed: elapsed,
	}, nil
}

// args builds the non-interactive invocation: print mode, explicit model,
// lens text as appended system instructions, empty allowed-tools set so the
// model cannot reach for tools, task text as the user message.
func (c *CLIRunner) args(req Request) []string {
	args := []string{"-p"}
	if req.Model != "" {
		args = append(args, "--model", req.Model)
	}
	if req.System != "" {
		args = append(args, "--append-system-prompt", req.System)
	}
	args = append(args, "--allowedTools", "")
	args = append(args, req.User)
	return args
}

func resolveBinary(binary string) string {
	if binary == "" {
		binary = defaultBinary
	}
	if _, err := exec.LookPath(binary); err == nil {
		return binary
	}
	if binary == defaultBinary {
		home, err := os.UserHomeDir()
		if err == nil {
			fallback := filepath.Join(home, ".local", "bin", defaultBinary)
			if _, err := os.Stat(fallback); err == nil {
				return fallback
			}
		}
	}
	return binary
}
