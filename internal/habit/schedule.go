package habit

import (
	"errors"
	"regexp"
	"time"
)

var ErrInvalidDate = errors.New("invalid date, use YYYY-MM-DD (UTC)")

const dayLayout = "2006-01-02"

var dayPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ParseDay resolves an optional YYYY-MM-DD query value to a UTC calendar
// date. An empty value means the current UTC date; anything that is not a
// strict YYYY-MM-DD date fails with ErrInvalidDate.
func ParseDay(date string, now time.Time) (time.Time, error) {
	if date == "" {
		n := now.UTC()
		return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	if !dayPattern.MatchString(date) {
		return time.Time{}, ErrInvalidDate
	}
	t, err := time.Parse(dayLayout, date)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// DayIndex maps a date's weekday to the Monday=0 ... Sunday=6 convention
// used by Repeats. Go's Weekday is Sunday=0.
func DayIndex(t time.Time) int {
	return (int(t.UTC().Weekday()) + 6) % 7
}

// IsDue reports whether a habit with the given repeat set is scheduled on
// the given UTC calendar date.
func IsDue(repeats RepeatDays, date time.Time) bool {
	return repeats.Contains(DayIndex(date))
}

// toYMD truncates a stored timestamp to its UTC calendar date. The bool is
// false for timestamps that do not parse; callers skip those entries.
func toYMD(timestamp string) (string, bool) {
	t, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return "", false
	}
	return t.UTC().Format(dayLayout), true
}

// CompletedOn reports whether any completion falls on the given UTC date.
func CompletedOn(completions Completions, date time.Time) bool {
	ymd := date.UTC().Format(dayLayout)
	for _, c := range completions {
		if d, ok := toYMD(c.Timestamp); ok && d == ymd {
			return true
		}
	}
	return false
}
