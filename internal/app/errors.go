package app

import (
	"errors"

	"ytsummarizer/internal/transcript"
)

const CodeSummaryFailed transcript.Code = "SUMMARY_GENERATION_FAILED"

// ErrSummaryFailed wraps every text generation failure. The underlying cause
// is logged, never shown to users.
var ErrSummaryFailed = errors.New("summary generation failed")

var userMessages = map[transcript.Code]string{
	transcript.CodeInvalidInput: "Please enter a valid YouTube video URL",
	transcript.CodeFetchFailed:  "Error fetching transcript. Please make sure the video has subtitles and the link is correct.",
	transcript.CodeUnavailable:  "No captions were found for this video.",
	CodeSummaryFailed:           "Error generating summary. Please try again.",
}

// ErrorCode classifies a pipeline error. Anything unrecognized is reported as
// a fetch failure.
func ErrorCode(err error) transcript.Code {
	var te *transcript.Error
	switch {
	case errors.Is(err, ErrSummaryFailed):
		return CodeSummaryFailed
	case errors.Is(err, transcript.ErrUnavailable):
		return transcript.CodeUnavailable
	case errors.As(err, &te):
		return te.Code
	default:
		return transcript.CodeFetchFailed
	}
}

func UserMessage(code transcript.Code) string {
	if msg, ok := userMessages[code]; ok {
		return msg
	}
	return userMessages[transcript.CodeFetchFailed]
}
