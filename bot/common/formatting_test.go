package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCount(t *testing.T) {
	tests := []struct {
		name     string
		n        int64
		expected string
	}{
		{"small", 999, "999"},
		{"thousand", 1000, "1,000"},
		{"million", 1234567, "1,234,567"},
		{"negative", -4500, "-4,500"},
		{"zero", 0, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatCount(tt.n))
		})
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "87.5%", FormatPercent(87.5))
	assert.Equal(t, "-", FormatPercent(math.NaN()))
	assert.Equal(t, "-", FormatPercent(math.Inf(1)))
}

func TestFormatDecimal(t *testing.T) {
	assert.Equal(t, "1,200", FormatDecimal(1200))
	assert.Equal(t, "27.3", FormatDecimal(27.27))
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "░░░░░░░░░░", ProgressBar(0, 10))
	assert.Equal(t, "█████░░░░░", ProgressBar(50, 10))
	assert.Equal(t, "██████████", ProgressBar(180, 10))
	assert.Equal(t, "░░░░░░░░░░", ProgressBar(-5, 10))
	assert.Len(t, []rune(ProgressBar(33, 0)), ProgressBarWidth)
}

func TestFormatSigned(t *testing.T) {
	assert.Equal(t, "+3", FormatSigned(3))
	assert.Equal(t, "-2", FormatSigned(-2))
	assert.Equal(t, "0", FormatSigned(0))
}
