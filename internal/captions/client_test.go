package captions

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"ytsummarizer/internal/transcript"
)

func TestFetch(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		body          string
		want          transcript.Transcript
		wantErr       bool
		wantNoCaption bool
	}{
		{
			name:   "wellFormed",
			status: http.StatusOK,
			body:   `{"transcript":[{"text":"Hello world","offset":0},{"text":"again","offset":1520.4}]}`,
			want: transcript.Transcript{
				{Text: "Hello world", OffsetMs: 0},
				{Text: "again", OffsetMs: 1520},
			},
		},
		{
			name:   "emptyArray",
			status: http.StatusOK,
			body:   `{"transcript":[]}`,
			want:   transcript.Transcript{},
		},
		{
			name:    "missingTranscript",
			status:  http.StatusOK,
			body:    `{"error":"nope"}`,
			wantErr: true,
		},
		{
			name:    "transcriptNotArray",
			status:  http.StatusOK,
			body:    `{"transcript":"Hello world"}`,
			wantErr: true,
		},
		{
			name:    "serverError",
			status:  http.StatusInternalServerError,
			body:    `oops`,
			wantErr: true,
		},
		{
			name:          "notFound",
			status:        http.StatusNotFound,
			body:          `{"error":"no captions"}`,
			wantErr:       true,
			wantNoCaption: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL+"/api/transcript", Options{})
			got, err := client.Fetch(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")

			if (err != nil) != tt.wantErr {
				t.Fatalf("Fetch() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if got := transcript.IsNoCaptions(err); got != tt.wantNoCaption {
					t.Errorf("IsNoCaptions() = %v, want %v", got, tt.wantNoCaption)
				}
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Fetch() returned %d segments, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("segment %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFetchEncodesVideoURL(t *testing.T) {
	const videoURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42s"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/transcript" {
			t.Errorf("path = %q, want /api/transcript", r.URL.Path)
		}
		if got := r.URL.Query().Get("url"); got != videoURL {
			t.Errorf("url param = %q, want %q", got, videoURL)
		}
		if got := r.URL.Query().Get("lang"); got != "en" {
			t.Errorf("existing query param lost, lang = %q", got)
		}
		_, _ = w.Write([]byte(`{"transcript":[{"text":"hi","offset":0}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL+"/api/transcript?lang=en", Options{})
	if _, err := client.Fetch(context.Background(), videoURL); err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
}

func TestFetchUnreachableBackend(t *testing.T) {
	client := NewClient("http://127.0.0.1:1/api/transcript", Options{})
	_, err := client.Fetch(context.Background(), "dQw4w9WgXcQ")
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, transcript.ErrUnavailable) {
		t.Error("network failure must not be reported as missing captions")
	}
}

func TestStrategyName(t *testing.T) {
	s := NewClient("http://localhost", Options{}).Strategy()
	if s.Name != "captions-backend" {
		t.Errorf("Name = %q", s.Name)
	}
	if s.Fetch == nil {
		t.Error("Fetch is nil")
	}
}
