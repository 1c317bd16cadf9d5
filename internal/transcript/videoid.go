package transcript

import (
	"net/url"
	"regexp"
	"strings"
)

const (
	watchMarker = "youtube.com/watch?v="
	shortMarker = "youtu.be/"
)

// ExtractVideoID returns the YouTube video ID carried by input. Watch URLs
// yield their v parameter and youtu.be links their first path segment.
// Anything else, including input that fails to parse, is returned as-is.
func ExtractVideoID(input string) string {
	input = strings.TrimSpace(input)

	switch {
	case strings.Contains(input, watchMarker):
		if id := watchID(input); id != "" {
			return id
		}
	case strings.Contains(input, shortMarker):
		if id := shortID(input); id != "" {
			return id
		}
	}
	return input
}

// LooksLikeYouTubeURL reports whether input carries a watch or short URL.
func LooksLikeYouTubeURL(input string) bool {
	return strings.Contains(input, watchMarker) || strings.Contains(input, shortMarker)
}

var videoIDRE = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// IsVideoID reports whether input is a bare 11-character video ID.
func IsVideoID(input string) bool {
	return videoIDRE.MatchString(input)
}

func watchID(input string) string {
	raw := input
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Query().Get("v")
}

func shortID(input string) string {
	rest := input[strings.Index(input, shortMarker)+len(shortMarker):]
	if i := strings.IndexAny(rest, "?#"); i >= 0 {
		rest = rest[:i]
	}
	if i := strings.Index(rest, "/"); i >= 0 {
		rest = rest[:i]
	}
	return rest
}
