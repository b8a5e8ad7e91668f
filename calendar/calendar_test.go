package calendar

import (
	"testing"
	"time"

	"salespoint/models"

	"github.com/stretchr/testify/assert"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestClassifyDay(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		expected DayClass
	}{
		{"weekday", date(2025, time.October, 1), DayClass{IsOpeningEligible: true, IsNetApplicationEligible: true}},
		{"saturday", date(2025, time.October, 11), DayClass{IsOpeningEligible: true, IsNetApplicationEligible: false}},
		{"sunday", date(2025, time.October, 12), DayClass{}},
		{"weekday holiday", date(2025, time.October, 6), DayClass{}},
		{"saturday holiday", date(2025, time.March, 1), DayClass{}},
		{"unlisted year degrades to weekends", date(2026, time.January, 1), DayClass{IsOpeningEligible: true, IsNetApplicationEligible: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyDay(tt.date))
		})
	}
}

func TestCountEligibleDays_October2025(t *testing.T) {
	// 31 days, 4 Sundays (5,12,19,26), holidays 3,6,7,8,9 on weekdays
	assert.Equal(t, 31-4-5, CountEligibleDays(2025, time.October, OpeningDay))
	// 23 weekdays minus the same 5 weekday holidays
	assert.Equal(t, 23-5, CountEligibleDays(2025, time.October, NetApplicationDay))
}

func TestCountElapsedEligibleDays_IncludesThroughDate(t *testing.T) {
	// 2025-09-01 is a Monday
	assert.Equal(t, 1, CountElapsedEligibleDays(date(2025, time.September, 1), NetApplicationDay))
	assert.Equal(t, 5, CountElapsedEligibleDays(date(2025, time.September, 7), NetApplicationDay))
	assert.Equal(t, 6, CountElapsedEligibleDays(date(2025, time.September, 7), OpeningDay))
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 28, DaysInMonth(2025, time.February))
	assert.Equal(t, 29, DaysInMonth(2024, time.February))
	assert.Equal(t, 31, DaysInMonth(2025, time.December))
}

func TestElapsedAndRemainingHours(t *testing.T) {
	assert.Equal(t, 1, ElapsedHours(10))
	assert.Equal(t, 9, ElapsedHours(18))
	assert.Equal(t, 0, ElapsedHours(models.CheckpointUnselected))
	assert.Equal(t, 0, ElapsedHours(19))

	assert.Equal(t, 8, RemainingHours(10))
	assert.Equal(t, 0, RemainingHours(18))
	assert.Equal(t, 9, RemainingHours(models.CheckpointUnselected))
}

func TestExpectedProgress(t *testing.T) {
	today := date(2025, time.September, 10)

	t.Run("past month is complete", func(t *testing.T) {
		assert.Equal(t, 100.0, ExpectedProgress(date(2025, time.August, 5), today, 21, NetApplicationDay))
	})

	t.Run("zero total", func(t *testing.T) {
		assert.Equal(t, 0.0, ExpectedProgress(today, today, 0, NetApplicationDay))
	})

	t.Run("partial month", func(t *testing.T) {
		total := CountEligibleDays(2025, time.September, NetApplicationDay)
		elapsed := CountElapsedEligibleDays(today, NetApplicationDay)
		assert.InDelta(t, float64(elapsed)/float64(total)*100, ExpectedProgress(today, today, total, NetApplicationDay), 1e-9)
	})

	t.Run("previous year is complete", func(t *testing.T) {
		assert.Equal(t, 100.0, ExpectedProgress(date(2024, time.December, 31), today, 20, OpeningDay))
	})
}
