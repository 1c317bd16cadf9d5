package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"ytsummarizer/internal/transcript"
	"ytsummarizer/pkg/httputil"
)

// Innertube transcript retrieval: POST /next for the watch page data, pull the
// transcript continuation token out of its engagement panels, then POST
// /get_transcript with it.

const (
	defaultInnertubeURL = "https://www.youtube.com"
	nextPath            = "/youtubei/v1/next"
	getTranscriptPath   = "/youtubei/v1/get_transcript"
	webClientVersion    = "2.20250222.10.00"
	chromeUserAgent     = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
)

var getTranscriptRE = regexp.MustCompile(`"getTranscriptEndpoint":\{"params":"([^"]+)"`)

type innertube struct {
	http     *httputil.Client
	baseURL  string
	language string
}

type webClientCtx struct {
	ClientName    string `json:"clientName"`
	ClientVersion string `json:"clientVersion"`
	VisitorData   string `json:"visitorData,omitempty"`
	Hl            string `json:"hl,omitempty"`
	Gl            string `json:"gl,omitempty"`
}

type getTranscriptResp struct {
	Actions []struct {
		UpdateEngagementPanelAction *struct {
			Content struct {
				TranscriptRenderer struct {
					Content struct {
						TranscriptSearchPanelRenderer struct {
							Body struct {
								TranscriptSegmentListRenderer struct {
									InitialSegments []struct {
										TranscriptSegmentRenderer *segmentRenderer `json:"transcriptSegmentRenderer"`
									} `json:"initialSegments"`
								} `json:"transcriptSegmentListRenderer"`
							} `json:"body"`
						} `json:"transcriptSearchPanelRenderer"`
					} `json:"content"`
				} `json:"transcriptRenderer"`
			} `json:"content"`
		} `json:"updateEngagementPanelAction"`
	} `json:"actions"`
}

type segmentRenderer struct {
	StartMs string `json:"startMs"`
	Snippet struct {
		Runs []struct {
			Text string `json:"text"`
		} `json:"runs"`
	} `json:"snippet"`
}

func (it *innertube) transcript(ctx context.Context, videoID string) (transcript.Transcript, error) {
	visitorData := generateVisitorData()

	nextData, err := it.post(ctx, nextPath, map[string]any{
		"videoId": videoID,
		"context": it.webContext(visitorData),
	}, visitorData)
	if err != nil {
		return nil, fmt.Errorf("/next: %w", err)
	}

	token, ok := extractTranscriptToken(nextData)
	if !ok {
		return nil, transcript.NoCaptions("no transcript panel for " + videoID)
	}

	data, err := it.post(ctx, getTranscriptPath, map[string]any{
		"params":  token,
		"context": it.webContext(visitorData),
	}, visitorData)
	if err != nil {
		return nil, fmt.Errorf("/get_transcript: %w", err)
	}

	var resp getTranscriptResp
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode transcript: %w", err)
	}

	segments := parseTranscriptSegments(resp)
	if len(segments) == 0 {
		return nil, transcript.NoCaptions("empty transcript panel for " + videoID)
	}
	return segments, nil
}

func (it *innertube) webContext(visitorData string) map[string]any {
	return map[string]any{
		"client": webClientCtx{
			ClientName:    "WEB",
			ClientVersion: webClientVersion,
			VisitorData:   visitorData,
			Hl:            it.language,
			Gl:            "US",
		},
	}
}

func (it *innertube) post(ctx context.Context, path string, payload any, visitorData string) ([]byte, error) {
	header := http.Header{}
	header.Set("Accept", "*/*")
	header.Set("User-Agent", chromeUserAgent)
	header.Set("X-Youtube-Client-Name", "1")
	header.Set("X-Youtube-Client-Version", webClientVersion)
	header.Set("X-Goog-Visitor-Id", visitorData)
	header.Set("Origin", "https://www.youtube.com")
	header.Set("Referer", "https://www.youtube.com/")

	return it.http.PostJSON(ctx, it.baseURL+path+"?prettyPrint=false", header, payload)
}

// extractTranscriptToken finds the /get_transcript params in a raw /next
// response. The value is URL-encoded there; the endpoint wants it decoded.
func extractTranscriptToken(data []byte) (string, bool) {
	m := getTranscriptRE.FindSubmatch(data)
	if len(m) < 2 {
		return "", false
	}
	decoded, err := url.QueryUnescape(string(m[1]))
	if err != nil {
		return string(m[1]), true
	}
	return decoded, true
}

func parseTranscriptSegments(resp getTranscriptResp) transcript.Transcript {
	var segments transcript.Transcript
	for _, action := range resp.Actions {
		if action.UpdateEngagementPanelAction == nil {
			continue
		}
		initial := action.UpdateEngagementPanelAction.Content.
			TranscriptRenderer.Content.
			TranscriptSearchPanelRenderer.Body.
			TranscriptSegmentListRenderer.InitialSegments
		for _, seg := range initial {
			r := seg.TranscriptSegmentRenderer
			if r == nil {
				continue
			}
			var sb strings.Builder
			for _, run := range r.Snippet.Runs {
				sb.WriteString(run.Text)
			}
			text := strings.TrimSpace(sb.String())
			if text == "" {
				continue
			}
			offset, err := strconv.ParseInt(r.StartMs, 10, 64)
			if err != nil {
				slog.Debug("Skipping transcript segment with bad offset", "start_ms", r.StartMs, "error", err)
				continue
			}
			segments = append(segments, transcript.Segment{Text: text, OffsetMs: offset})
		}
	}
	return segments
}

func generateVisitorData() string {
	const chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
	b := make([]byte, 11)
	for i := range b {
		b[i] = chars[rand.Intn(len(chars))] //nolint:gosec // non-cryptographic use
	}
	return string(b)
}
