package models

import (
	"fmt"
	"time"
)

// Team identifies an independently tracked sales team
type Team string

// YearMonth is a calendar month without a day component
type YearMonth struct {
	Year  int
	Month time.Month
}

// YearMonthOf returns the month containing t
func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// ParseYearMonth parses the YYYY-MM form used in storage keys
func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return YearMonth{}, fmt.Errorf("invalid month %q: %w", s, err)
	}
	return YearMonthOf(t), nil
}

func (m YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Before reports whether m is an earlier month than other
func (m YearMonth) Before(other YearMonth) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}
	return m.Month < other.Month
}

// FirstDay returns midnight of the first day of the month in loc
func (m YearMonth) FirstDay(loc *time.Location) time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, loc)
}
