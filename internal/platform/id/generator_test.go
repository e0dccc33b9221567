package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomGenerator_NewID(t *testing.T) {
	t.Parallel()

	gen := NewRandomGenerator()
	first := gen.NewID()
	second := gen.NewID()

	assert.Len(t, first, 32)
	assert.NotEqual(t, first, second)
	assert.Equal(t, first, Sanitize(first))
}

func TestSanitize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "req-42_A", Sanitize("req-42_A"))
	assert.Empty(t, Sanitize(""))
	assert.Empty(t, Sanitize("has space"))
	assert.Empty(t, Sanitize("line\nbreak"))
	assert.Empty(t, Sanitize(strings.Repeat("a", maxExternalLength+1)))
}
