package catalog

import (
	"errors"
	"strings"
	"testing"
)

func testCatalog() *Catalog {
	return &Catalog{
		Prompts: []PromptEntry{
			{Name: "lens_a", Path: "a.md"},
			{Name: "lens_b", Path: "b.md"},
		},
		Tasks: []TaskEntry{
			{Name: "task_x", Text: "x"},
			{Name: "task_y", Text: "y"},
			{Name: "task_z", Text: "z"},
		},
	}
}

func TestResolveAllByAll(t *testing.T) {
	c := testCatalog()
	pairs, err := c.Resolve(All, All)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pairs) != 6 {
		t.Fatalf("expected 2x3=6 pairs, got %d", len(pairs))
	}
	// Declaration order, lens-major.
	if pairs[0].Prompt.Name != "lens_a" || pairs[0].Task.Name != "task_x" {
		t.Fatalf("unexpected first pair: %s x %s", pairs[0].Prompt.Name, pairs[0].Task.Name)
	}
	if pairs[5].Prompt.Name != "lens_b" || pairs[5].Task.Name != "task_z" {
		t.Fatalf("unexpected last pair: %s x %s", pairs[5].Prompt.Name, pairs[5].Task.Name)
	}
}

func TestResolveExactNamesYieldOnePair(t *testing.T) {
	c := testCatalog()
	pairs, err := c.Resolve("lens_b", "task_y")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pairs) != 1 {
		t.Fatalf("expected 1 pair, got %d", len(pairs))
	}
	if pairs[0].Prompt.Name != "lens_b" || pairs[0].Task.Name != "task_y" {
		t.Fatalf("unexpected pair: %s x %s", pairs[0].Prompt.Name, pairs[0].Task.Name)
	}
}

func TestResolveUnknownLensFailsLoudly(t *testing.T) {
	c := testCatalog()
	_, err := c.Resolve("lens_missing", All)
	if err == nil {
		t.Fatal("expected error for unknown lens")
	}
	var unk *UnknownNameError
	if !errors.As(err, &unk) {
		t.Fatalf("expected *UnknownNameError, got %T", err)
	}
	if unk.Axis != "lens" || unk.Name != "lens_missing" {
		t.Fatalf("unexpected error detail: %+v", unk)
	}
	if !strings.Contains(err.Error(), "lens_a") || !strings.Contains(err.Error(), "lens_b") {
		t.Fatalf("error should list valid names: %v", err)
	}
}

func TestResolveUnknownTaskFailsLoudly(t *testing.T) {
	c := testCatalog()
	_, err := c.Resolve(All, "task_missing")
	if err == nil {
		t.Fatal("expected error for unknown task")
	}
	var unk *UnknownNameError
	if !errors.As(err, &unk) {
		t.Fatalf("expected *UnknownNameError, got %T", err)
	}
	if unk.Axis != "task" {
		t.Fatalf("unexpected axis %q", unk.Axis)
	}
	if len(unk.Valid) != 3 {
		t.Fatalf("expected 3 valid names, got %v", unk.Valid)
	}
}

func TestResolveCaseSensitive(t *testing.T) {
	c := testCatalog()
	if _, err := c.Resolve("Lens_A", All); err == nil {
		t.Fatal("lookup should be case-sensitive")
	}
}
