// Package timeutil owns every date/time conversion in the system. All
// comparisons between schedule windows, overrides and appointments are made
// on values produced here in one configured reference timezone, never on
// ambient local time.
package timeutil

import (
	"fmt"
	"time"
)

const (
	ClockFormat = "15:04"      // HH:MM, 24h
	DayFormat   = "2006-01-02" // YYYY-MM-DD
	LabelFormat = "3:04 PM"    // display label for slots
)

// ParseClock converts an "HH:MM" string into a minute-of-day value. Input
// must be zero-padded: appointments, locks and slots compare clock values by
// exact string equality, so "9:00" and "09:00" must not both be accepted.
func ParseClock(s string) (int, error) {
	t, err := time.Parse(ClockFormat, s)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	minute := t.Hour()*60 + t.Minute()
	if FormatClock(minute) != s {
		return 0, fmt.Errorf("invalid clock time %q: expected zero-padded HH:MM", s)
	}
	return minute, nil
}

// FormatClock renders a minute-of-day value back to "HH:MM".
func FormatClock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}

// ClockLabel renders a minute-of-day value as a human-readable label
// ("9:00 AM", "2:30 PM").
func ClockLabel(minute int) string {
	t := time.Date(0, 1, 1, minute/60, minute%60, 0, 0, time.UTC)
	return t.Format(LabelFormat)
}

// DayKey returns the calendar date of t in the reference zone as a sortable
// "YYYY-MM-DD" string. Two instants share a DayKey iff they fall on the same
// clinic day.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DayFormat)
}

// ParseDay parses a "YYYY-MM-DD" day key as midnight in the reference zone.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DayFormat, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// IsValidDay reports whether s is a well-formed day key.
func IsValidDay(s string) bool {
	_, err := time.Parse(DayFormat, s)
	return err == nil
}

// IsValidClock reports whether s is a well-formed "HH:MM" value.
func IsValidClock(s string) bool {
	_, err := ParseClock(s)
	return err == nil
}

// Weekday resolves the day-of-week of a day key in the reference zone.
func Weekday(dayKey string, loc *time.Location) (time.Weekday, error) {
	t, err := ParseDay(dayKey, loc)
	if err != nil {
		return 0, err
	}
	return t.Weekday(), nil
}

// DayInRange reports whether day falls inside [start, end]. Day keys sort
// lexicographically, so plain string comparison is the date comparison.
func DayInRange(day, start, end string) bool {
	return day >= start && day <= end
}

// DayBefore reports whether day a is strictly earlier than day b.
func DayBefore(a, b string) bool {
	return a < b
}

// Today returns the current day key in the reference zone.
func Today(now time.Time, loc *time.Location) string {
	return DayKey(now, loc)
}

// NextDay returns the day key immediately after the given one.
func NextDay(dayKey string, loc *time.Location) (string, error) {
	t, err := ParseDay(dayKey, loc)
	if err != nil {
		return "", err
	}
	return DayKey(t.AddDate(0, 0, 1), loc), nil
}
