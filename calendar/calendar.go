// Package calendar classifies working days and reporting hours for the
// monthly and intraday pacing baselines.
package calendar

import (
	"time"

	"salespoint/models"
)

// TotalShiftHours is the number of reporting hours in a working day
const TotalShiftHours = 9

// holidays lists public holidays by exact date. Years without entries fall
// back to weekend-only classification.
var holidays = map[string]struct{}{
	"2025-01-01": {},
	"2025-01-28": {},
	"2025-01-29": {},
	"2025-01-30": {},
	"2025-03-01": {},
	"2025-05-05": {},
	"2025-05-06": {},
	"2025-06-06": {},
	"2025-08-15": {},
	"2025-10-03": {},
	"2025-10-05": {},
	"2025-10-06": {},
	"2025-10-07": {},
	"2025-10-08": {},
	"2025-10-09": {},
	"2025-12-25": {},
}

// DayClass describes which day counts a date contributes to
type DayClass struct {
	IsOpeningEligible        bool
	IsNetApplicationEligible bool
}

// Predicate selects days from a DayClass
type Predicate func(DayClass) bool

// OpeningDay counts days on which activations can be processed
func OpeningDay(c DayClass) bool { return c.IsOpeningEligible }

// NetApplicationDay counts days on which new applications are taken
func NetApplicationDay(c DayClass) bool { return c.IsNetApplicationEligible }

// IsHoliday reports whether date falls on a listed public holiday
func IsHoliday(date time.Time) bool {
	_, ok := holidays[date.Format("2006-01-02")]
	return ok
}

// ClassifyDay returns the eligibility of a single date. Sundays and holidays
// are closed for everything; Saturdays still count as opening days.
func ClassifyDay(date time.Time) DayClass {
	weekday := date.Weekday()
	holiday := IsHoliday(date)
	return DayClass{
		IsOpeningEligible:        weekday != time.Sunday && !holiday,
		IsNetApplicationEligible: weekday != time.Saturday && weekday != time.Sunday && !holiday,
	}
}

// DaysInMonth returns the number of days in the given month
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// CountEligibleDays counts the days in a month matching predicate
func CountEligibleDays(year int, month time.Month, predicate Predicate) int {
	count := 0
	for day := 1; day <= DaysInMonth(year, month); day++ {
		if predicate(ClassifyDay(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))) {
			count++
		}
	}
	return count
}

// CountElapsedEligibleDays counts matching days from the first of the month
// through throughDate inclusive
func CountElapsedEligibleDays(throughDate time.Time, predicate Predicate) int {
	count := 0
	year, month, last := throughDate.Date()
	for day := 1; day <= last; day++ {
		if predicate(ClassifyDay(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))) {
			count++
		}
	}
	return count
}

// MonthInfo returns the calculated opening and net-application day counts
func MonthInfo(year int, month time.Month) models.MonthInfo {
	return models.MonthInfo{
		OpeningDays:        CountEligibleDays(year, month, OpeningDay),
		NetApplicationDays: CountEligibleDays(year, month, NetApplicationDay),
	}
}

// ElapsedHours maps a checkpoint to the number of shift hours it closes:
// 10:00 is the first hour, 18:00 the ninth. Anything else counts as zero.
func ElapsedHours(checkpoint models.Checkpoint) int {
	if !checkpoint.IsValid() {
		return 0
	}
	return int(checkpoint-models.FirstCheckpoint) + 1
}

// RemainingHours returns the shift hours left after lastCheckpoint, never negative
func RemainingHours(lastCheckpoint models.Checkpoint) int {
	remaining := TotalShiftHours - ElapsedHours(lastCheckpoint)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ExpectedProgress is the percentage of a month's eligible days that have
// elapsed through date. A month that is already over reports 100.
func ExpectedProgress(date, today time.Time, total int, predicate Predicate) float64 {
	if models.YearMonthOf(date).Before(models.YearMonthOf(today)) {
		return 100
	}
	if total <= 0 {
		return 0
	}
	return float64(CountElapsedEligibleDays(date, predicate)) / float64(total) * 100
}
