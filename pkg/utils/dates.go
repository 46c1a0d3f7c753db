package utils

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// ParseDate parses YYYY-MM-DD into a UTC-midnight date column value
func ParseDate(s string) (datatypes.Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return datatypes.Date{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return datatypes.Date(t), nil
}

// ParseClock parses HH:MM or HH:MM:SS into a time-of-day column value
func ParseClock(s string) (datatypes.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return datatypes.NewTime(t.Hour(), t.Minute(), t.Second(), 0), nil
		}
	}
	return 0, fmt.Errorf("invalid time %q, expected HH:MM[:SS]", s)
}

// Today returns the calendar date of now in loc, as a UTC-midnight value
func Today(now time.Time, loc *time.Location) datatypes.Date {
	y, m, d := now.In(loc).Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}
