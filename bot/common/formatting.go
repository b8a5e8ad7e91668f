package common

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// FormatCount formats a count with thousand separators
func FormatCount(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	str := fmt.Sprintf("%d", n)

	digits := len(str)
	if digits <= 3 {
		return sign + str
	}

	var result strings.Builder
	result.WriteString(sign)
	for i, digit := range str {
		if i > 0 && (digits-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(digit)
	}

	return result.String()
}

// FormatPercent renders a percentage with one decimal place
func FormatPercent(pct float64) string {
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatDecimal renders a fractional count, dropping ".0" for whole values
func FormatDecimal(v float64) string {
	if v == math.Trunc(v) {
		return FormatCount(int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}

// ProgressBar draws pct (clamped to 0-100) as a row of blocks
func ProgressBar(pct float64, width int) string {
	if width <= 0 {
		width = ProgressBarWidth
	}
	if math.IsNaN(pct) || pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := int(math.Round(pct / 100 * float64(width)))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// FormatSigned renders a difference with an explicit sign
func FormatSigned(n int) string {
	if n > 0 {
		return fmt.Sprintf("+%d", n)
	}
	return fmt.Sprintf("%d", n)
}

// FormatDiscordTimestamp formats a time as a Discord timestamp that displays in user's local timezone
// Format types: "t" = short time, "T" = long time, "d" = short date, "D" = long date,
// "f" = short date/time, "F" = long date/time, "R" = relative time
func FormatDiscordTimestamp(t time.Time, format string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), format)
}
