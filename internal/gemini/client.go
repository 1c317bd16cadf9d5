package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"ytsummarizer/internal/llm"
)

const DefaultModel = "gemini-2.0-flash"

var _ llm.Client = (*Client)(nil)

type Config struct {
	APIKey string
	Model  string
	// BaseURL overrides the Gemini API endpoint.
	BaseURL string
}

type Client struct {
	client *genai.Client
	model  string
}

func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = cfg.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Client{
		client: client,
		model:  model,
	}, nil
}

// Generate sends prompt as the sole content with no generation config.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", llm.ErrNoResponse
	}

	text := resp.Text()
	if text == "" {
		return "", llm.ErrEmptyResponse
	}

	return text, nil
}
