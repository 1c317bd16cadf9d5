package groq

import (
	"context"
	"fmt"

	"github.com/conneroisu/groq-go"

	"ytsummarizer/internal/llm"
)

const DefaultModel = "llama-3.3-70b-versatile"

var _ llm.Client = (*Client)(nil)

type Client struct {
	client *groq.Client
	model  groq.ChatModel
}

// NewClient creates a Groq chat client. baseURL is only set in tests.
func NewClient(apiKey, model, baseURL string) (*Client, error) {
	if model == "" {
		model = DefaultModel
	}

	var (
		client *groq.Client
		err    error
	)
	if baseURL != "" {
		client, err = groq.NewClient(apiKey, groq.WithBaseURL(baseURL))
	} else {
		client, err = groq.NewClient(apiKey)
	}
	if err != nil {
		return nil, fmt.Errorf("create groq client: %w", err)
	}

	return &Client{
		client: client,
		model:  groq.ChatModel(model),
	}, nil
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.ChatCompletion(ctx, groq.ChatCompletionRequest{
		Model: c.model,
		Messages: []groq.ChatCompletionMessage{
			{Role: groq.RoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", llm.ErrNoResponse
	}

	content := resp.Choices[0].Message.Content
	if content == "" {
		return "", llm.ErrEmptyResponse
	}

	return content, nil
}
