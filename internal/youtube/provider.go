package youtube

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	kkdai "github.com/kkdai/youtube/v2"
	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"

	"ytsummarizer/internal/transcript"
	"ytsummarizer/pkg/httputil"
)

const defaultTimeout = 30 * time.Second

type CaptionTrack struct {
	LanguageCode string
	Name         string
	Kind         string // "asr" for auto-generated tracks
}

// Info is the subset of video metadata the transcript strategies need.
type Info struct {
	ID            string
	Title         string
	Author        string
	Duration      time.Duration
	CaptionTracks []CaptionTrack

	video *kkdai.Video
}

type Options struct {
	Languages []string
	Timeout   time.Duration

	// HTTPClient overrides the client used for YouTube requests.
	HTTPClient *http.Client

	// DataAPIKey enables caption listing through the YouTube Data API.
	DataAPIKey      string
	DataAPIEndpoint string

	// Innertube enables the /next -> /get_transcript fallback.
	Innertube    bool
	InnertubeURL string
}

// Provider exposes video metadata and transcripts from YouTube itself. Every
// capability may fail independently; callers treat each one defensively.
//
// kkdai clients keep per-instance session state, so every fetch builds its
// own on top of the shared http.Client.
type Provider struct {
	httpClient *http.Client
	data      *ytapi.Service
	innertube *innertube
	languages []string
}

func NewProvider(ctx context.Context, opts Options) (*Provider, error) {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	languages := opts.Languages
	if len(languages) == 0 {
		languages = []string{"en"}
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}

	p := &Provider{
		httpClient: httpClient,
		languages:  languages,
	}

	if opts.DataAPIKey != "" {
		clientOpts := []option.ClientOption{option.WithAPIKey(opts.DataAPIKey)}
		if opts.DataAPIEndpoint != "" {
			clientOpts = append(clientOpts, option.WithEndpoint(opts.DataAPIEndpoint))
		}
		svc, err := ytapi.NewService(ctx, clientOpts...)
		if err != nil {
			return nil, fmt.Errorf("create youtube data api client: %w", err)
		}
		p.data = svc
	}

	if opts.Innertube {
		baseURL := opts.InnertubeURL
		if baseURL == "" {
			baseURL = defaultInnertubeURL
		}
		p.innertube = &innertube{
			http:     httputil.NewClient(httpClient, httputil.DefaultRetryConfig()),
			baseURL:  strings.TrimSuffix(baseURL, "/"),
			language: languages[0],
		}
	}

	return p, nil
}

func (p *Provider) newClient() *kkdai.Client {
	return &kkdai.Client{HTTPClient: p.httpClient}
}

func (p *Provider) GetInfo(ctx context.Context, videoID string) (*Info, error) {
	return getInfo(ctx, p.newClient(), videoID)
}

func getInfo(ctx context.Context, client *kkdai.Client, videoID string) (*Info, error) {
	video, err := client.GetVideoContext(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("get video %s: %w", videoID, err)
	}
	return infoFromVideo(video), nil
}

// ListCaptionTracks prefers the Data API listing when an API key is set and
// falls back to the tracks embedded in info.
func (p *Provider) ListCaptionTracks(ctx context.Context, info *Info) ([]CaptionTrack, error) {
	if p.data == nil {
		return info.CaptionTracks, nil
	}

	resp, err := p.data.Captions.List([]string{"snippet"}, info.ID).Context(ctx).Do()
	if err != nil {
		slog.Debug("Data API caption listing failed, using player tracks", "video_id", info.ID, "error", err)
		return info.CaptionTracks, nil
	}

	tracks := make([]CaptionTrack, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Snippet == nil {
			continue
		}
		kind := ""
		if strings.EqualFold(item.Snippet.TrackKind, "asr") {
			kind = "asr"
		}
		tracks = append(tracks, CaptionTrack{
			LanguageCode: item.Snippet.Language,
			Name:         item.Snippet.Name,
			Kind:         kind,
		})
	}
	return tracks, nil
}

// GetTranscript fetches the transcript for info in the given language.
func (p *Provider) GetTranscript(ctx context.Context, info *Info, lang string) (transcript.Transcript, error) {
	return getTranscript(ctx, p.newClient(), info, lang)
}

func getTranscript(ctx context.Context, client *kkdai.Client, info *Info, lang string) (transcript.Transcript, error) {
	video := info.video
	if video == nil {
		fetched, err := client.GetVideoContext(ctx, info.ID)
		if err != nil {
			return nil, fmt.Errorf("get video %s: %w", info.ID, err)
		}
		video = fetched
	}

	segments, err := client.GetTranscriptCtx(ctx, video, lang)
	if err != nil {
		if errors.Is(err, kkdai.ErrTranscriptDisabled) {
			return nil, transcript.NoCaptions(err.Error())
		}
		return nil, fmt.Errorf("get transcript %s: %w", info.ID, err)
	}

	out := make(transcript.Transcript, 0, len(segments))
	for _, s := range segments {
		out = append(out, transcript.Segment{Text: s.Text, OffsetMs: int64(s.StartMs)})
	}
	return out, nil
}

// GetTranscriptFromInfo runs the Innertube engagement-panel flow for info.
func (p *Provider) GetTranscriptFromInfo(ctx context.Context, info *Info) (transcript.Transcript, error) {
	if p.innertube == nil {
		return nil, errors.New("innertube transcript disabled")
	}
	return p.innertube.transcript(ctx, info.ID)
}

// DirectStrategy checks caption availability and fetches the best track.
func (p *Provider) DirectStrategy() transcript.Strategy {
	return transcript.Strategy{
		Name: "youtube-transcript",
		Fetch: func(ctx context.Context, _, videoID string) (transcript.Transcript, error) {
			client := p.newClient()
			info, err := getInfo(ctx, client, videoID)
			if err != nil {
				return nil, err
			}

			tracks, err := p.ListCaptionTracks(ctx, info)
			if err != nil {
				return nil, err
			}
			if len(tracks) == 0 {
				return nil, transcript.NoCaptions("no caption tracks for " + videoID)
			}

			return getTranscript(ctx, client, info, pickLanguage(tracks, p.languages))
		},
	}
}

// InfoStrategy asks Innertube for the transcript. The /next call already
// carries the video metadata, so no player lookup precedes it.
func (p *Provider) InfoStrategy() transcript.Strategy {
	if p.innertube == nil {
		return transcript.Strategy{Name: "youtube-innertube"}
	}
	return transcript.Strategy{
		Name: "youtube-innertube",
		Fetch: func(ctx context.Context, _, videoID string) (transcript.Transcript, error) {
			return p.GetTranscriptFromInfo(ctx, &Info{ID: videoID})
		},
	}
}

func infoFromVideo(v *kkdai.Video) *Info {
	info := &Info{
		ID:       v.ID,
		Title:    v.Title,
		Author:   v.Author,
		Duration: v.Duration,
		video:    v,
	}
	for _, t := range v.CaptionTracks {
		info.CaptionTracks = append(info.CaptionTracks, CaptionTrack{
			LanguageCode: t.LanguageCode,
			Kind:         t.Kind,
		})
	}
	return info
}

// pickLanguage prefers a manual track in a preferred language, then an
// auto-generated one, then any English track, then whatever comes first.
func pickLanguage(tracks []CaptionTrack, langs []string) string {
	for _, lang := range langs {
		for _, t := range tracks {
			if t.LanguageCode == lang && t.Kind != "asr" {
				return t.LanguageCode
			}
		}
	}
	for _, lang := range langs {
		for _, t := range tracks {
			if t.LanguageCode == lang {
				return t.LanguageCode
			}
		}
	}
	for _, t := range tracks {
		if strings.HasPrefix(t.LanguageCode, "en") {
			return t.LanguageCode
		}
	}
	return tracks[0].LanguageCode
}
