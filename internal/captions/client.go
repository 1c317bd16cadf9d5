package captions

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"ytsummarizer/internal/transcript"
	"ytsummarizer/pkg/httputil"
)

const defaultTimeout = 30 * time.Second

// Client queries an external transcript backend that answers
// GET <baseURL>?url=<video url> with {"transcript": [{"text", "offset"}]}.
type Client struct {
	http    *httputil.Client
	baseURL string
}

type Options struct {
	Timeout time.Duration
	Retries int
}

type response struct {
	Transcript *[]segment `json:"transcript"`
}

type segment struct {
	Text   string  `json:"text"`
	Offset float64 `json:"offset"`
}

func NewClient(baseURL string, opts Options) *Client {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	retry := httputil.DefaultRetryConfig()
	retry.MaxRetries = opts.Retries

	return &Client{
		http:    httputil.NewClient(&http.Client{Timeout: timeout}, retry),
		baseURL: baseURL,
	}
}

// Fetch asks the backend for the transcript of rawInput, which is passed
// through URL-encoded exactly as the user submitted it.
func (c *Client) Fetch(ctx context.Context, rawInput string) (transcript.Transcript, error) {
	endpoint, err := c.endpoint(rawInput)
	if err != nil {
		return nil, err
	}

	var resp response
	if err := c.http.GetJSON(ctx, endpoint, nil, &resp); err != nil {
		var statusErr *httputil.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return nil, transcript.NoCaptions("captions backend returned 404")
		}
		return nil, fmt.Errorf("captions backend: %w", err)
	}

	if resp.Transcript == nil {
		return nil, errors.New("captions backend: invalid transcript format")
	}

	segments := make(transcript.Transcript, 0, len(*resp.Transcript))
	for _, s := range *resp.Transcript {
		segments = append(segments, transcript.Segment{
			Text:     s.Text,
			OffsetMs: int64(math.Round(s.Offset)),
		})
	}
	return segments, nil
}

// Strategy adapts the client to the resolver chain.
func (c *Client) Strategy() transcript.Strategy {
	return transcript.Strategy{
		Name: "captions-backend",
		Fetch: func(ctx context.Context, rawInput, _ string) (transcript.Transcript, error) {
			return c.Fetch(ctx, rawInput)
		},
	}
}

func (c *Client) endpoint(rawInput string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse captions backend url: %w", err)
	}
	q := u.Query()
	q.Set("url", rawInput)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
