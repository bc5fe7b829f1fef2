package dates

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// DayFormat is the canonical calendar-day layout used across the engine.
	DayFormat = "2006-01-02"
	// ClockFormat is the canonical time-of-day layout (24h).
	ClockFormat = "15:04"
)

// Day truncates an instant to its calendar day. All day comparisons in the
// engine go through this function so day-diff semantics never depend on the
// host timezone; UTC is used throughout.
func Day(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// DayString formats an instant as its calendar day.
func DayString(t time.Time) string {
	return Day(t).Format(DayFormat)
}

// ParseDay parses a YYYY-MM-DD day string.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DayFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q, expected YYYY-MM-DD: %w", s, err)
	}
	return t, nil
}

// DaysBetween returns the whole-day difference to-from. Negative when to is
// before from.
func DaysBetween(from, to time.Time) int {
	return int(Day(to).Sub(Day(from)).Hours() / 24)
}

// Clock formats an instant's time of day as HH:MM.
func Clock(t time.Time) string {
	return t.UTC().Format(ClockFormat)
}

// ParseClock parses an HH:MM string into minutes from midnight.
func ParseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time format: %q", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q: %w", s, err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q: %w", s, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("time out of range: %q", s)
	}
	return hour*60 + minute, nil
}

// ValidClock reports whether s is a well-formed HH:MM string.
func ValidClock(s string) bool {
	_, err := ParseClock(s)
	return err == nil
}
