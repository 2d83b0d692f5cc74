// Package strings shortens untrusted or verbose text for single-line output
// in logs and tables.
package strings

import (
	"strings"
	"unicode/utf8"
)

const (
	// DefaultPayloadMaxLen bounds message payloads quoted in log records.
	DefaultPayloadMaxLen = 256

	// DefaultCellMaxLen bounds free-form text in table cells.
	DefaultCellMaxLen = 60

	// MinTruncateLen is the smallest useful limit: one character plus "...".
	MinTruncateLen = 4
)

// Truncate collapses all whitespace runs in s to single spaces and cuts the
// result to at most maxLen runes, ending in "..." when cut. maxLen below
// MinTruncateLen is raised to MinTruncateLen.
func Truncate(s string, maxLen int) string {
	if maxLen < MinTruncateLen {
		maxLen = MinTruncateLen
	}

	s = strings.Join(strings.Fields(s), " ")

	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-3]) + "..."
}

// Payload renders a raw message body for a log record. Invalid UTF-8 is
// replaced so the record stays printable.
func Payload(data []byte) string {
	return Truncate(strings.ToValidUTF8(string(data), "�"), DefaultPayloadMaxLen)
}
