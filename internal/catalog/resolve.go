package catalog

import (
	"fmt"
	"strings"
)

// All is the filter sentinel that expands to every catalog entry.
const All = "all"

// Pair is one lens/task combination scheduled for a single invocation.
type Pair struct {
	Prompt PromptEntry
	Task   TaskEntry
}

// UnknownNameError reports a filter that matched nothing. It carries the
// valid names so the operator sees what the catalog actually contains
// instead of a silently empty run.
type UnknownNameError struct {
	Axis  string // "lens" or "task"
	Name  string
	Valid []string
}

func (e *UnknownNameError) Error() string {
	return fmt.Sprintf("unknown %s %q (valid: %s)", e.Axis, e.Name, strings.Join(e.Valid, ", "))
}

// Resolve expands the two filters against the catalog and returns the full
// cross-product of matching lenses and tasks, in declaration order. A filter
// is either All or an exact catalog name; anything else fails with
// *UnknownNameError.
func (c *Catalog) Resolve(promptFilter, taskFilter string) ([]Pair, error) {
	prompts := c.Prompts
	if promptFilter != All {
		p, ok := c.Prompt(promptFilter)
		if !ok {
			return nil, &UnknownNameError{Axis: "lens", Name: promptFilter, Valid: c.PromptNames()}
		}
		prompts = []PromptEntry{p}
	}

	tasks := c.Tasks
	if taskFilter != All {
		t, ok := c.Task(taskFilter)
		if !ok {
			return nil, &UnknownNameError{Axis: "task", Name: taskFilter, Valid: c.TaskNames()}
		}
		tasks = []TaskEntry{t}
	}

	pairs := make([]Pair, 0, len(prompts)*len(tasks))
	for _, p := range prompts {
		for _, t := range tasks {
			pairs = append(pairs, Pair{Prompt: p, Task: t})
		}
	}
	return pairs, nil
}
