package transcript

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// FetchFunc acquires a transcript. rawInput is the caller's URL or ID as
// submitted; videoID is the identifier extracted from it.
type FetchFunc func(ctx context.Context, rawInput, videoID string) (Transcript, error)

// Strategy is one way of acquiring captions.
type Strategy struct {
	Name  string
	Fetch FetchFunc
}

// Resolver tries its strategies in order and returns the first non-empty
// transcript. A failing strategy is logged and skipped.
type Resolver struct {
	strategies []Strategy
}

func NewResolver(strategies ...Strategy) *Resolver {
	enabled := make([]Strategy, 0, len(strategies))
	for _, s := range strategies {
		if s.Fetch != nil {
			enabled = append(enabled, s)
		}
	}
	return &Resolver{strategies: enabled}
}

// Strategies returns the names of the enabled strategies in priority order.
func (r *Resolver) Strategies() []string {
	names := make([]string, len(r.strategies))
	for i, s := range r.strategies {
		names[i] = s.Name
	}
	return names
}

func (r *Resolver) Resolve(ctx context.Context, input string) (Transcript, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrInvalidInput
	}

	videoID := ExtractVideoID(input)
	if len(r.strategies) == 0 {
		return nil, fmt.Errorf("resolve %s: no transcript strategies configured: %w", videoID, ErrFetchFailed)
	}

	reachable := false
	for _, s := range r.strategies {
		t, err := s.Fetch(ctx, input, videoID)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, fmt.Errorf("resolve %s: %w: %w", videoID, ErrFetchFailed, ctxErr)
			}
			if IsNoCaptions(err) {
				reachable = true
			}
			slog.Warn("Transcript strategy failed", "strategy", s.Name, "video_id", videoID, "error", err)
			continue
		}

		if len(t) == 0 {
			reachable = true
			slog.Warn("Transcript strategy returned no segments", "strategy", s.Name, "video_id", videoID)
			continue
		}

		slog.Info("Transcript resolved", "strategy", s.Name, "video_id", videoID, "segments", len(t))
		return t, nil
	}

	if reachable {
		return nil, fmt.Errorf("resolve %s: %w", videoID, ErrUnavailable)
	}
	return nil, fmt.Errorf("resolve %s: %w", videoID, ErrFetchFailed)
}
