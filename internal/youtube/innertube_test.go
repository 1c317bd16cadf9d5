package youtube

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ytsummarizer/internal/transcript"
)

const nextResponse = `{"engagementPanels":[{"engagementPanelSectionListRenderer":{"content":{"continuationItemRenderer":{"continuationEndpoint":{"getTranscriptEndpoint":{"params":"CgtkUXc0dzlXZ1hjUQ%3D%3D"}}}}}}]}`

const transcriptResponse = `{
  "actions": [
    {"clickTrackingParams": "x"},
    {"updateEngagementPanelAction": {"content": {"transcriptRenderer": {"content": {"transcriptSearchPanelRenderer": {"body": {"transcriptSegmentListRenderer": {"initialSegments": [
      {"transcriptSegmentRenderer": {"startMs": "0", "snippet": {"runs": [{"text": "Hello "}, {"text": "world"}]}}},
      {"transcriptSectionHeaderRenderer": {}},
      {"transcriptSegmentRenderer": {"startMs": "2400", "snippet": {"runs": [{"text": "  "}]}}},
      {"transcriptSegmentRenderer": {"startMs": "4100", "snippet": {"runs": [{"text": "second line"}]}}}
    ]}}}}}}}}
  ]
}`

func newTestInnertube(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewProvider(context.Background(), Options{
		Innertube:    true,
		InnertubeURL: server.URL + "/",
		Languages:    []string{"en"},
	})
	if err != nil {
		t.Fatalf("NewProvider() error: %v", err)
	}
	return p
}

func TestGetTranscriptFromInfo(t *testing.T) {
	p := newTestInnertube(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.Header.Get("X-Youtube-Client-Name") != "1" {
			t.Errorf("missing WEB client header")
		}

		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)

		switch r.URL.Path {
		case nextPath:
			if body["videoId"] != "dQw4w9WgXcQ" {
				t.Errorf("videoId = %v", body["videoId"])
			}
			_, _ = w.Write([]byte(nextResponse))
		case getTranscriptPath:
			if body["params"] != "CgtkUXc0dzlXZ1hjUQ==" {
				t.Errorf("params = %v, want decoded token", body["params"])
			}
			_, _ = w.Write([]byte(transcriptResponse))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	got, err := p.GetTranscriptFromInfo(context.Background(), &Info{ID: "dQw4w9WgXcQ"})
	if err != nil {
		t.Fatalf("GetTranscriptFromInfo() error: %v", err)
	}

	want := transcript.Transcript{
		{Text: "Hello world", OffsetMs: 0},
		{Text: "second line", OffsetMs: 4100},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d segments, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("segment %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestGetTranscriptFromInfoNoPanel(t *testing.T) {
	p := newTestInnertube(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"contents":{}}`))
	})

	_, err := p.GetTranscriptFromInfo(context.Background(), &Info{ID: "abc"})
	if !transcript.IsNoCaptions(err) {
		t.Errorf("expected no-captions error, got %v", err)
	}
}

func TestGetTranscriptFromInfoEmptySegments(t *testing.T) {
	p := newTestInnertube(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == nextPath {
			_, _ = w.Write([]byte(nextResponse))
			return
		}
		_, _ = w.Write([]byte(`{"actions":[]}`))
	})

	_, err := p.GetTranscriptFromInfo(context.Background(), &Info{ID: "abc"})
	if !transcript.IsNoCaptions(err) {
		t.Errorf("expected no-captions error, got %v", err)
	}
}

func TestGetTranscriptFromInfoServerError(t *testing.T) {
	p := newTestInnertube(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := p.GetTranscriptFromInfo(context.Background(), &Info{ID: "abc"})
	if err == nil {
		t.Fatal("expected error")
	}
	if transcript.IsNoCaptions(err) {
		t.Error("rate limiting must not be reported as missing captions")
	}
}

func TestExtractTranscriptToken(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		want   string
		wantOK bool
	}{
		{name: "encoded", data: `"getTranscriptEndpoint":{"params":"a%2Bb%3D"}`, want: "a+b=", wantOK: true},
		{name: "plain", data: `"getTranscriptEndpoint":{"params":"abc"}`, want: "abc", wantOK: true},
		{name: "badEscape", data: `"getTranscriptEndpoint":{"params":"abc%zz"}`, want: "abc%zz", wantOK: true},
		{name: "missing", data: `{}`, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractTranscriptToken([]byte(tt.data))
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("extractTranscriptToken() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestGenerateVisitorData(t *testing.T) {
	v := generateVisitorData()
	if len(v) != 11 {
		t.Errorf("len = %d, want 11", len(v))
	}
}

func TestParseTranscriptSegmentsSkipsBadOffsets(t *testing.T) {
	var resp getTranscriptResp
	err := json.Unmarshal([]byte(`{"actions": [{"updateEngagementPanelAction": {"content": {"transcriptRenderer": {"content": {"transcriptSearchPanelRenderer": {"body": {"transcriptSegmentListRenderer": {"initialSegments": [
		{"transcriptSegmentRenderer": {"startMs": "1:05", "snippet": {"runs": [{"text": "garbled"}]}}},
		{"transcriptSegmentRenderer": {"startMs": "", "snippet": {"runs": [{"text": "missing"}]}}},
		{"transcriptSegmentRenderer": {"startMs": "65000", "snippet": {"runs": [{"text": "kept"}]}}}
	]}}}}}}}}]}`), &resp)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	got := parseTranscriptSegments(resp)
	want := transcript.Transcript{{Text: "kept", OffsetMs: 65000}}
	if len(got) != len(want) || got[0] != want[0] {
		t.Errorf("parseTranscriptSegments() = %+v, want %+v", got, want)
	}
}
