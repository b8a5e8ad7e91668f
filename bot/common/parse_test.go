package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCounts(t *testing.T) {
	t.Run("pairs", func(t *testing.T) {
		counts, err := ParseCounts("주력상품A=3, 프로모션B:1")
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"주력상품A": 3, "프로모션B": 1}, counts)
	})

	t.Run("repeated names are summed", func(t *testing.T) {
		counts, err := ParseCounts("A=1,A=2,")
		require.NoError(t, err)
		assert.Equal(t, 3, counts["A"])
	})

	t.Run("empty", func(t *testing.T) {
		counts, err := ParseCounts("  ")
		require.NoError(t, err)
		assert.Empty(t, counts)
	})

	t.Run("missing separator", func(t *testing.T) {
		_, err := ParseCounts("A 3")
		assert.Error(t, err)
	})

	t.Run("bad count", func(t *testing.T) {
		_, err := ParseCounts("A=three")
		assert.Error(t, err)
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := ParseCounts("=3")
		assert.Error(t, err)
	})
}
