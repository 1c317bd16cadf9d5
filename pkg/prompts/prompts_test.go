package prompts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	p := Default()

	for _, want := range []string{
		"You are a skilled summarizer.",
		"1. **Introduction**",
		"2. **Main Points / Key Topics**",
		"3. **Conclusion / Takeaways**",
		"Here is the transcript:",
	} {
		if !strings.Contains(p.Summary, want) {
			t.Errorf("default summary prompt missing %q", want)
		}
	}
}

func TestRenderSummary(t *testing.T) {
	p := Default()
	block := "Timestamp: 0, Text: Hello world\n"

	got, err := p.RenderSummary(SummaryParams{Transcript: block})
	if err != nil {
		t.Fatalf("RenderSummary() error = %v", err)
	}

	if !strings.HasSuffix(got, "Here is the transcript:\n"+block+"\n") {
		t.Errorf("transcript block not appended after the instructions:\n%s", got)
	}
	if strings.Contains(got, "{{") {
		t.Error("template placeholders left in output")
	}
}

func TestRenderSummaryDoesNotEscape(t *testing.T) {
	p := &Prompts{Summary: "T: {{.Transcript}}"}

	got, err := p.RenderSummary(SummaryParams{Transcript: `<b>"quoted" & more</b>`})
	if err != nil {
		t.Fatalf("RenderSummary() error = %v", err)
	}
	if got != `T: <b>"quoted" & more</b>` {
		t.Errorf("RenderSummary() = %q", got)
	}
}

func TestLoadFallsBackToDefault(t *testing.T) {
	t.Chdir(t.TempDir())

	p, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if p.Summary != Default().Summary {
		t.Error("expected embedded default prompt")
	}
}

func TestLoadOverride(t *testing.T) {
	tmpDir := t.TempDir()
	content := "summary: \"Summarize: {{.Transcript}}\"\n"
	if err := os.WriteFile(filepath.Join(tmpDir, "prompts.yaml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(tmpDir)

	p, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	got, err := p.RenderSummary(SummaryParams{Transcript: "x"})
	if err != nil {
		t.Fatalf("RenderSummary() error = %v", err)
	}
	if got != "Summarize: x" {
		t.Errorf("RenderSummary() = %q, want %q", got, "Summarize: x")
	}
}

func TestLoadFromEmptyFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	if err := os.WriteFile(path, []byte("# nothing here\n"), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if p.Summary != Default().Summary {
		t.Error("expected default summary prompt to be kept")
	}
}

func TestLoadFromInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	if err := os.WriteFile(path, []byte("summary: [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadFromMissing(t *testing.T) {
	if _, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRenderInvalidTemplate(t *testing.T) {
	p := &Prompts{Summary: "{{.Transcript"}
	if _, err := p.RenderSummary(SummaryParams{}); err == nil {
		t.Error("expected template parse error")
	}
}
