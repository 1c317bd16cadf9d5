package app

import (
	"context"
	"fmt"
	"log/slog"

	"ytsummarizer/internal/captions"
	"ytsummarizer/internal/gemini"
	"ytsummarizer/internal/llm"
	"ytsummarizer/internal/llm/groq"
	"ytsummarizer/internal/transcript"
	"ytsummarizer/internal/youtube"
	"ytsummarizer/pkg/config"
	"ytsummarizer/pkg/prompts"
)

func BuildService(ctx context.Context, cfg *config.Config) (*Service, error) {
	p, err := prompts.Load()
	if err != nil {
		return nil, err
	}

	llmClient, err := buildLLM(ctx, cfg)
	if err != nil {
		return nil, err
	}

	resolver, err := buildResolver(ctx, cfg)
	if err != nil {
		return nil, err
	}
	slog.Debug("Transcript strategies", "order", resolver.Strategies())

	return NewService(ServiceOptions{
		Config:   cfg,
		Resolver: resolver,
		LLM:      llmClient,
		Prompts:  p,
	}), nil
}

func buildLLM(ctx context.Context, cfg *config.Config) (llm.Client, error) {
	switch cfg.Summarizer.Provider {
	case config.ProviderGemini, "":
		if cfg.GenAIAPIKey == "" {
			return nil, fmt.Errorf("GOOGLE_GENAI_API_KEY is required for the gemini summarizer")
		}
		return gemini.NewClient(ctx, gemini.Config{
			APIKey: cfg.GenAIAPIKey,
			Model:  cfg.SummarizerModel(),
		})
	case config.ProviderGroq:
		if cfg.GroqAPIKey == "" {
			return nil, fmt.Errorf("GROQ_API_KEY is required for the groq summarizer")
		}
		return groq.NewClient(cfg.GroqAPIKey, cfg.SummarizerModel(), "")
	default:
		return nil, fmt.Errorf("unknown summarizer provider %q", cfg.Summarizer.Provider)
	}
}

// buildResolver wires the enabled strategies in priority order: the captions
// backend, then YouTube directly, then the Innertube panel flow.
func buildResolver(ctx context.Context, cfg *config.Config) (*transcript.Resolver, error) {
	var strategies []transcript.Strategy

	if cfg.Captions.IsEnabled() && cfg.Captions.BackendURL != "" {
		backend := captions.NewClient(cfg.Captions.BackendURL, captions.Options{
			Timeout: cfg.Captions.Timeout,
			Retries: cfg.Captions.Retries,
		})
		strategies = append(strategies, backend.Strategy())
	}

	if cfg.YouTube.DirectEnabled() || cfg.YouTube.InnertubeEnabled() {
		provider, err := youtube.NewProvider(ctx, youtube.Options{
			Languages:  cfg.YouTube.Languages,
			Timeout:    cfg.YouTube.Timeout,
			DataAPIKey: cfg.YouTubeAPIKey,
			Innertube:  cfg.YouTube.InnertubeEnabled(),
		})
		if err != nil {
			return nil, err
		}
		if cfg.YouTube.DirectEnabled() {
			strategies = append(strategies, provider.DirectStrategy())
		}
		strategies = append(strategies, provider.InfoStrategy())
	}

	return transcript.NewResolver(strategies...), nil
}
