package llm

import (
	"context"
	"errors"
)

var (
	ErrNoResponse    = errors.New("no response")
	ErrEmptyResponse = errors.New("empty response")
)

// Client sends a single prompt to a text generation API and returns the
// generated text unmodified.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
