package ids

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuffix(t *testing.T) {
	t.Run("parses the numeric suffix", func(t *testing.T) {
		n, ok := Suffix("RE", "RE12")
		assert.True(t, ok)
		assert.Equal(t, 12, n)
	})

	t.Run("rejects foreign prefixes", func(t *testing.T) {
		_, ok := Suffix("RE", "IG7")
		assert.False(t, ok)
	})

	t.Run("rejects non-numeric suffixes", func(t *testing.T) {
		_, ok := Suffix("RE", "REabc")
		assert.False(t, ok)
	})
}

func TestAllocator(t *testing.T) {
	t.Run("continues from the seeded maximum", func(t *testing.T) {
		alloc := NewAllocator("WP", 14)

		assert.Equal(t, "WP15", alloc.Next())
		assert.Equal(t, "WP16", alloc.Next())
		assert.Equal(t, "WP17", alloc.Next())
	})

	t.Run("starts at 1 for an empty catalog", func(t *testing.T) {
		alloc := NewAllocator("IG", 0)
		assert.Equal(t, "IG1", alloc.Next())
	})
}
