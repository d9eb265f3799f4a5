package record

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestPathIsPureFunctionOfTriple(t *testing.T) {
	r := &Recorder{Dir: "out"}
	a := r.Path("modelA", "prompt_Y", "task_X")
	b := r.Path("modelA", "prompt_Y", "task_X")
	if a != b {
		t.Fatalf("path not deterministic: %q vs %q", a, b)
	}
	if a != filepath.Join("out", "modelA_prompt_Y_task_X") {
		t.Fatalf("unexpected path %q", a)
	}
}

func TestPathAppliesExtension(t *testing.T) {
	r := &Recorder{Dir: "out", Ext: ".md"}
	want := filepath.Join("out", "m_l_t.md")
	if got := r.Path("m", "l", "t"); got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestRecordOverwritesIdempotently(t *testing.T) {
	r := &Recorder{Dir: filepath.Join(t.TempDir(), "out")}

	first, err := r.Record("m", "l", "t", "response body\n", 1500*time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := r.Record("m", "l", "t", "response body\n", 1500*time.Millisecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Path != second.Path {
		t.Fatalf("paths differ across runs: %q vs %q", first.Path, second.Path)
	}

	b, err := os.ReadFile(second.Path)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "response body\n" {
		t.Fatalf("unexpected content %q", b)
	}
}

func TestRecordReplacesPriorContent(t *testing.T) {
	r := &Recorder{Dir: t.TempDir()}
	if _, err := r.Record("m", "l", "t", "old old old\n", 0); err != nil {
		t.Fatal(err)
	}
	rr, err := r.Record("m", "l", "t", "new\n", 0)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := os.ReadFile(rr.Path)
	if string(b) != "new\n" {
		t.Fatalf("stale content survived overwrite: %q", b)
	}
}

func TestRecordCountsLines(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"", 0},
		{"one line", 1},
		{"a\nb\nc\n", 3},
		{"a\nb\nno trailing newline", 3},
	}
	r := &Recorder{Dir: t.TempDir()}
	for _, tc := range cases {
		rr, err := r.Record("m", "l", "t", tc.raw, 0)
		if err != nil {
			t.Fatal(err)
		}
		if rr.Lines != tc.want {
			t.Fatalf("raw %q: expected %d lines, got %d", tc.raw, tc.want, rr.Lines)
		}
	}
}

func TestRecordRoundsElapsedSeconds(t *testing.T) {
	r := &Recorder{Dir: t.TempDir()}
	rr, err := r.Record("m", "l", "t", "x", 2340*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	if rr.Elapsed != 2.3 {
		t.Fatalf("expected 2.3s, got %v", rr.Elapsed)
	}
}

func TestWriteSummary(t *testing.T) {
	r := &Recorder{Dir: t.TempDir()}
	results := []RunResult{
		{Model: "haiku", Lens: "l", Task: "t", Path: "out/haiku_l_t", Elapsed: 1.2, Lines: 4},
	}
	path := filepath.Join(t.TempDir(), "summary.json")
	if err := r.WriteSummary(path, results); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got []RunResult
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("summary is not valid JSON: %v", err)
	}
	if len(got) != 1 || got[0].Model != "haiku" || got[0].Elapsed != 1.2 {
		t.Fatalf("unexpected summary contents: %+v", got)
	}
}
