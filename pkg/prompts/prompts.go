package prompts

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"text/template"

	"gopkg.in/yaml.v3"
)

const defaultPromptsPath = "prompts.yaml"

//go:embed prompts.yaml
var defaultPrompts []byte

type Prompts struct {
	Summary string `yaml:"summary"`
}

type SummaryParams struct {
	// Transcript is the serialized transcript block, one line per segment.
	Transcript string
}

// Default returns the prompts compiled into the binary.
func Default() *Prompts {
	var p Prompts
	if err := yaml.Unmarshal(defaultPrompts, &p); err != nil {
		panic(fmt.Sprintf("embedded prompts are invalid: %v", err))
	}
	return &p
}

// Load reads prompts.yaml from the working directory, falling back to the
// embedded defaults when the file does not exist.
func Load() (*Prompts, error) {
	p, err := LoadFrom(defaultPromptsPath)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return p, err
}

// LoadFrom overlays the prompts in path on top of the defaults. Keys missing
// from the file keep their default value.
func LoadFrom(path string) (*Prompts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompts file: %w", err)
	}

	p := Default()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("failed to parse prompts file: %w", err)
	}

	return p, nil
}

func (p *Prompts) RenderSummary(params SummaryParams) (string, error) {
	return render(p.Summary, params)
}

func render(tmpl string, data any) (string, error) {
	t, err := template.New("prompt").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}
