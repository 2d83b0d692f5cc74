package strings

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{name: "short string unchanged", input: `{"name":"foo"}`, maxLen: 20, expected: `{"name":"foo"}`},
		{name: "exact length unchanged", input: "hello", maxLen: 5, expected: "hello"},
		{name: "long string truncated", input: "instance worker-1 not found in zone", maxLen: 15, expected: "instance wor..."},
		{name: "pretty printed JSON flattened", input: "{\n  \"name\": \"foo\",\n  \"zone\": \"bar\"\n}", maxLen: 40, expected: `{ "name": "foo", "zone": "bar" }`},
		{name: "tabs and carriage returns collapsed", input: "a\t\tb\r\nc", maxLen: 10, expected: "a b c"},
		{name: "surrounding whitespace trimmed", input: "  foo  ", maxLen: 10, expected: "foo"},
		{name: "unicode truncation safe", input: "préemptée-instance", maxLen: 6, expected: "pré..."},
		{name: "empty string", input: "", maxLen: 10, expected: ""},
		{name: "whitespace only becomes empty", input: " \n\t ", maxLen: 10, expected: ""},
		{name: "small maxLen clamped", input: "hello", maxLen: 2, expected: "h..."},
		{name: "negative maxLen clamped", input: "hello", maxLen: -1, expected: "h..."},
		{name: "short string with small maxLen unchanged", input: "hi", maxLen: 3, expected: "hi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Truncate(tt.input, tt.maxLen))
		})
	}
}

func TestPayload(t *testing.T) {
	assert.Equal(t, "not-json", Payload([]byte("not-json")))
	assert.Equal(t, "a�b", Payload([]byte{'a', 0xff, 'b'}))

	long := Payload([]byte(strings.Repeat("x", 1000)))
	assert.Len(t, []rune(long), DefaultPayloadMaxLen)
	assert.True(t, strings.HasSuffix(long, "..."))
}
