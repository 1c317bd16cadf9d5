package transcript

import (
	"strconv"
	"strings"
)

// Format serializes t one segment per line, in order:
//
//	Timestamp: <offsetMs>, Text: <text>
func Format(t Transcript) string {
	var sb strings.Builder
	for _, seg := range t {
		sb.WriteString("Timestamp: ")
		sb.WriteString(strconv.FormatInt(seg.OffsetMs, 10))
		sb.WriteString(", Text: ")
		sb.WriteString(seg.Text)
		sb.WriteByte('\n')
	}
	return sb.String()
}
