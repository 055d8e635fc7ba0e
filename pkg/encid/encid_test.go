package encid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"numeric id", "8412"},
		{"hex id", "64f1a2b3c4d5e6f708192a3b"},
		{"slug-like id", "breaking-news-2026"},
		{"id with slashes", "articles/2026/09/01"},
		{"single char", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := Encode(tt.id)

			assert.NotContains(t, encoded, "=")
			assert.Equal(t, tt.id, Decode(encoded))
		})
	}
}

func TestDecode_PaddedInput(t *testing.T) {
	// Older clients send standard padded base64.
	assert.Equal(t, "8412", Decode("ODQxMg=="))
}

func TestDecode_FallbackToRawInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not base64 at all", "not base64!!"},
		{"contains invalid symbols", "abc&def"},
		{"empty", ""},
		// Valid base64 whose decoded bytes are not valid UTF-8; a short
		// code pasted into a /p/ URL must come back unchanged, not as
		// garbage bytes.
		{"decodes to invalid utf-8", "zzzzzz"},
		{"high bytes", "____"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.input, Decode(tt.input))
		})
	}
}
