package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClock_TodayUsesTrackingTimezone(t *testing.T) {
	seoul, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)

	// 16:30 UTC is already the next day in Seoul
	clock := NewClock(seoul).WithNow(func() time.Time {
		return time.Date(2025, time.September, 9, 16, 30, 0, 0, time.UTC)
	})

	assert.Equal(t, "2025-09-10", DateKey(clock.Today()))
	assert.True(t, clock.IsToday(time.Date(2025, time.September, 10, 23, 0, 0, 0, seoul)))
	assert.False(t, clock.IsToday(time.Date(2025, time.September, 9, 12, 0, 0, 0, seoul)))
}

func TestParseDate(t *testing.T) {
	seoul, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)

	d, err := ParseDate("2025-10-03", seoul)
	require.NoError(t, err)
	assert.Equal(t, seoul, d.Location())
	assert.Equal(t, 3, d.Day())

	_, err = ParseDate("2025/10/03", seoul)
	assert.Error(t, err)
}
