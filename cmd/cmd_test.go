package cmd

import (
	"bytes"
	"testing"
)

func TestWriteEnv(t *testing.T) {
	env := map[string]string{
		"YOUTUBE_API_KEY":      "yt",
		"GOOGLE_GENAI_API_KEY": "genai",
		"GROQ_API_KEY":         "",
		"UNKNOWN":              "ignored",
	}

	var buf bytes.Buffer
	if err := writeEnv(&buf, env); err != nil {
		t.Fatalf("writeEnv() error: %v", err)
	}

	want := "GOOGLE_GENAI_API_KEY=genai\nYOUTUBE_API_KEY=yt\n"
	if buf.String() != want {
		t.Errorf("writeEnv() = %q, want %q", buf.String(), want)
	}
}

func TestRequired(t *testing.T) {
	validate := required("API Key")

	if err := validate(""); err == nil {
		t.Error("expected error for empty value")
	}
	if err := validate("   "); err == nil {
		t.Error("expected error for blank value")
	}
	if err := validate("abc"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidVideoInput(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", true},
		{"https://youtu.be/dQw4w9WgXcQ?t=42", true},
		{"dQw4w9WgXcQ", true},
		{"https://vimeo.com/12345", false},
		{"hello", false},
	}

	for _, tt := range tests {
		if got := validVideoInput(tt.input); got != tt.want {
			t.Errorf("validVideoInput(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := map[string]bool{"serve": false, "summarize": false, "setup": false}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("command %q not registered", name)
		}
	}
}
