package transcript

import "errors"

// Segment is one caption unit at a point in video time.
type Segment struct {
	Text     string `json:"text"`
	OffsetMs int64  `json:"offsetMs"`
}

// Transcript keeps segments in the order the source supplied them.
type Transcript []Segment

// Code identifies a failure class that callers translate into user-facing
// messages and HTTP statuses.
type Code string

const (
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeFetchFailed  Code = "TRANSCRIPT_FETCH_FAILED"
	CodeUnavailable  Code = "TRANSCRIPT_UNAVAILABLE"
)

var (
	ErrInvalidInput = &Error{Code: CodeInvalidInput, msg: "invalid video url"}
	ErrFetchFailed  = &Error{Code: CodeFetchFailed, msg: "transcript fetch failed"}
	ErrUnavailable  = &Error{Code: CodeUnavailable, msg: "transcript unavailable"}
)

type Error struct {
	Code Code
	msg  string
}

func (e *Error) Error() string {
	return e.msg
}

// NoCaptions marks a strategy failure where the video was reached but had no
// usable captions.
func NoCaptions(reason string) error {
	return &noCaptionsError{reason: reason}
}

type noCaptionsError struct {
	reason string
}

func (e *noCaptionsError) Error() string {
	return "no captions: " + e.reason
}

func (e *noCaptionsError) Is(target error) bool {
	return target == ErrUnavailable
}

// IsNoCaptions reports whether err says the video has no captions, as opposed
// to a transport or backend failure.
func IsNoCaptions(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
