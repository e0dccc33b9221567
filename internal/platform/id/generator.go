package id

import (
	"crypto/rand"
	"encoding/hex"
)

const maxExternalLength = 64

// Generator creates opaque identifiers used to correlate requests in logs.
type Generator interface {
	NewID() string
}

type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

// NewID returns 32 lowercase hex characters. crypto/rand.Read does not fail on supported platforms.
func (g *RandomGenerator) NewID() string {
	buf := make([]byte, 16)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

// Sanitize accepts a caller supplied id made of letters, digits, '-' and '_' and returns "" otherwise.
func Sanitize(raw string) string {
	if raw == "" || len(raw) > maxExternalLength {
		return ""
	}
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return ""
		}
	}
	return raw
}
