// Package backend wraps the external model CLI. The runner treats it as an
// opaque, stateless collaborator: one blocking completion per call, no
// session, no lifecycle management.
package backend

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Request is a single completion: the lens text goes in as system
// instructions, the task text as the user message.
type Request struct {
	Model  string
	System string
	User   string
}

// Result is the captured output of one completion.
type Result struct {
	Stdout  string
	Stderr  string
	Elapsed time.Duration
}

// Runner is the completion boundary. Implementations block until the
// backend answers; there is no timeout or retry at this layer.
type Runner interface {
	Complete(ctx context.Context, req Request) (Result, error)
}

// Error is a failed backend invocation. Stderr is carried along so a failed
// call surfaces as a visible error instead of an empty response file.
type Error struct {
	Binary string
	Stderr string
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s invocation failed: %v", e.Binary, e.Err)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += "\n" + s
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }
