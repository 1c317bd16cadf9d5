package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ytsummarizer/internal/transcript"
	"ytsummarizer/pkg/prompts"
)

type Pipeline struct {
	service *Service
}

type Result struct {
	VideoID    string
	Transcript transcript.Transcript
	Summary    string
	Duration   time.Duration
}

func NewPipeline(service *Service) *Pipeline {
	return &Pipeline{service: service}
}

// Transcript resolves the transcript for videoURL without summarizing it.
func (pipeline *Pipeline) Transcript(ctx context.Context, videoURL string) (transcript.Transcript, error) {
	resolver := pipeline.service.Resolver()
	if resolver == nil {
		return nil, fmt.Errorf("no transcript resolver: %w", transcript.ErrFetchFailed)
	}
	return resolver.Resolve(ctx, videoURL)
}

// Summarize resolves the transcript, renders the summary prompt and sends it
// to the configured model. The generated text is returned unmodified.
func (pipeline *Pipeline) Summarize(ctx context.Context, videoURL string) (*Result, error) {
	start := time.Now()
	videoID := transcript.ExtractVideoID(videoURL)

	slog.Info("Fetching transcript...", "video_id", videoID)
	segments, err := pipeline.Transcript(ctx, videoURL)
	if err != nil {
		return nil, err
	}
	slog.Debug("Transcript resolved", "video_id", videoID, "segments", len(segments))

	summary, err := pipeline.generateSummary(ctx, segments)
	if err != nil {
		return nil, err
	}

	return &Result{
		VideoID:    videoID,
		Transcript: segments,
		Summary:    summary,
		Duration:   time.Since(start),
	}, nil
}

func (pipeline *Pipeline) generateSummary(ctx context.Context, segments transcript.Transcript) (string, error) {
	prompt, err := pipeline.service.Prompts().RenderSummary(prompts.SummaryParams{
		Transcript: transcript.Format(segments),
	})
	if err != nil {
		return "", fmt.Errorf("render prompt: %w: %w", ErrSummaryFailed, err)
	}

	client := pipeline.service.LLM()
	if client == nil {
		return "", fmt.Errorf("no summarizer configured: %w", ErrSummaryFailed)
	}

	if timeout := pipeline.service.Config().Summarizer.Timeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	slog.Info("Generating summary...", "prompt_length", len(prompt))
	summary, err := client.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSummaryFailed, err)
	}
	return summary, nil
}
