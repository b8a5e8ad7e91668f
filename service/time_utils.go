package service

import "time"

// Clock reports the current date in the tracking timezone
type Clock struct {
	loc *time.Location
	now func() time.Time
}

// NewClock creates a clock for loc backed by time.Now
func NewClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return Clock{loc: loc, now: time.Now}
}

// Location returns the clock's timezone
func (c Clock) Location() *time.Location {
	return c.loc
}

// Now returns the current instant in the clock's timezone
func (c Clock) Now() time.Time {
	return c.now().In(c.loc)
}

// Today returns midnight of the current date
func (c Clock) Today() time.Time {
	return DateOf(c.Now(), c.loc)
}

// IsToday reports whether date falls on the current calendar date
func (c Clock) IsToday(date time.Time) bool {
	return DateKey(DateOf(date, c.loc)) == DateKey(c.Today())
}

// DateOf truncates t to midnight of its calendar date in loc
func DateOf(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// DateKey formats a date the way record keys and events carry it
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// WithNow returns a copy of the clock that reads the time from now
func (c Clock) WithNow(now func() time.Time) Clock {
	c.now = now
	return c
}

// ParseDate parses a YYYY-MM-DD date as midnight in loc
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, loc)
}
