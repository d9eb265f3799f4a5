// Package catalog holds the lens and task registries that drive a run.
// Both registries are ordered: filters that expand to "all" must produce
// units in declaration order so run logs stay reproducible.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultManifest []byte

// PromptEntry names a lens and points at the file holding its text.
// The text is read at invocation time, never cached here.
type PromptEntry struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// TaskEntry names a task and carries its literal input text.
type TaskEntry struct {
	Name string `yaml:"name"`
	Text string `yaml:"text"`
}

// ModelAlias maps a short model key to a full backend model id.
type ModelAlias struct {
	Name string `yaml:"name"`
	ID   string `yaml:"id"`
}

// Catalog is read-only after Load/Default returns it.
type Catalog struct {
	Prompts []PromptEntry `yaml:"prompts"`
	Tasks   []TaskEntry   `yaml:"tasks"`
	Models  []ModelAlias  `yaml:"models"`

	// SourceDir anchors relative prompt paths. Empty for the embedded
	// default catalog, which resolves against the working directory.
	SourceDir string `yaml:"-"`
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return parse(defaultManifest, "")
}

// Load reads a catalog manifest from disk. Relative prompt paths in the
// manifest resolve against the manifest's own directory.
func Load(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve catalog path: %w", err)
	}
	return parse(b, filepath.Dir(abs))
}

func parse(b []byte, dir string) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	c.SourceDir = dir
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate rejects manifests the runner could not act on unambiguously.
func (c *Catalog) Validate() error {
	if len(c.Prompts) == 0 {
		return fmt.Errorf("catalog has no prompts")
	}
	if len(c.Tasks) == 0 {
		return fmt.Errorf("catalog has no tasks")
	}
	seen := make(map[string]struct{}, len(c.Prompts))
	for _, p := range c.Prompts {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("prompt entry with empty name")
		}
		if strings.TrimSpace(p.Path) == "" {
			return fmt.Errorf("prompt %q has no path", p.Name)
		}
		if _, ok := seen[p.Name]; ok {
			return fmt.Errorf("duplicate prompt name %q", p.Name)
		}
		seen[p.Name] = struct{}{}
	}
	seen = make(map[string]struct{}, len(c.Tasks))
	for _, t := range c.Tasks {
		if strings.TrimSpace(t.Name) == "" {
			return fmt.Errorf("task entry with empty name")
		}
		if _, ok := seen[t.Name]; ok {
			return fmt.Errorf("duplicate task name %q", t.Name)
		}
		seen[t.Name] = struct{}{}
	}
	for _, m := range c.Models {
		if strings.TrimSpace(m.Name) == "" || strings.TrimSpace(m.ID) == "" {
			return fmt.Errorf("model alias needs both name and id")
		}
	}
	return nil
}

// Prompt looks up a lens by exact name.
func (c *Catalog) Prompt(name string) (PromptEntry, bool) {
	for _, p := range c.Prompts {
		if p.Name == name {
			return p, true
		}
	}
	return PromptEntry{}, false
}

// Task looks up a task by exact name.
func (c *Catalog) Task(name string) (TaskEntry, bool) {
	for _, t := range c.Tasks {
		if t.Name == name {
			return t, true
		}
	}
	return TaskEntry{}, false
}

// ResolveModel expands a model alias to its backend id. Names without an
// alias pass through verbatim; the backend decides whether it knows them.
func (c *Catalog) ResolveModel(name string) string {
	for _, m := range c.Models {
		if m.Name == name {
			return m.ID
		}
	}
	return name
}

// ResolvePath anchors a relative prompt path at the catalog's directory.
func (c *Catalog) ResolvePath(path string) string {
	if filepath.IsAbs(path) || c.SourceDir == "" {
		return path
	}
	return filepath.Join(c.SourceDir, path)
}

// PromptNames returns lens names in declaration order.
func (c *Catalog) PromptNames() []string {
	names := make([]string, 0, len(c.Prompts))
	for _, p := range c.Prompts {
		names = append(names, p.Name)
	}
	return names
}

// TaskNames returns task names in declaration order.
func (c *Catalog) TaskNames() []string {
	names := make([]string, 0, len(c.Tasks))
	for _, t := range c.Tasks {
		names = append(names, t.Name)
	}
	return names
}
