package random

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// alphabet is the full lowercase alphanumeric set: 36 symbols, so six
// positions give roughly 2.1 billion distinct codes.
const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// DefaultLength is the code length used across the service.
const DefaultLength = 6

// Generator produces fixed-length short codes. The entropy source is
// injectable so tests can drive code generation deterministically.
type Generator struct {
	length int
	source io.Reader
}

// New creates a generator backed by crypto/rand.
func New(length int) *Generator {
	return NewWithSource(length, rand.Reader)
}

// NewWithSource creates a generator reading entropy from the given source.
func NewWithSource(length int, source io.Reader) *Generator {
	if length <= 0 {
		length = DefaultLength
	}
	return &Generator{
		length: length,
		source: source,
	}
}

// Generate returns a random code drawn uniformly from the lowercase
// alphanumeric alphabet.
func (g *Generator) Generate() (string, error) {
	max := big.NewInt(int64(len(alphabet)))
	buf := make([]byte, g.length)

	for i := range buf {
		n, err := rand.Int(g.source, max)
		if err != nil {
			return "", fmt.Errorf("failed to read entropy source: %w", err)
		}
		buf[i] = alphabet[n.Int64()]
	}

	return string(buf), nil
}

// Length returns the configured code length.
func (g *Generator) Length() int {
	return g.length
}

// IsValidCode reports whether s is a well-formed code of the given length:
// exactly length characters, all from the lowercase alphanumeric alphabet.
func IsValidCode(s string, length int) bool {
	if len(s) != length {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return false
		}
	}
	return true
}
