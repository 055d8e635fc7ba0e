// Package encid implements the reversible article-id encoding used by
// share URLs. Unlike stored short codes, encoded ids are computed per
// request and never persisted.
package encid

import (
	"encoding/base64"
	"strings"
	"unicode/utf8"
)

// Encode returns the URL-safe base64 form of an article id, without padding.
func Encode(articleID string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(articleID))
}

// Decode reverses Encode. Values that arrive padded still decode. A value
// that is not valid base64 at all falls back to the raw input unchanged, so
// a plain article id pasted into a share URL still resolves. Bytes that
// decode but are not valid UTF-8 cannot be an article id either, so they
// take the same fallback instead of reaching the directory as garbage.
func Decode(encoded string) string {
	trimmed := strings.TrimRight(encoded, "=")

	if decoded, err := base64.RawURLEncoding.DecodeString(trimmed); err == nil && utf8.Valid(decoded) {
		return string(decoded)
	}
	if decoded, err := base64.RawStdEncoding.DecodeString(trimmed); err == nil && utf8.Valid(decoded) {
		return string(decoded)
	}

	return encoded
}
