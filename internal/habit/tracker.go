package habit

import (
	"errors"
	"time"
)

var ErrInvalidTimestamp = errors.New("invalid timestamp, use an ISO timestamp in UTC")

// toleranceMinutes is the on-time window around the habit's target
// time-of-day. The comparison is the absolute minute-of-day difference with
// no midnight wraparound, so a 23:50 target completed at 00:05 counts as
// late. Known quirk, kept for parity with historical data.
const toleranceMinutes = 30

const timestampLayout = "2006-01-02T15:04:05.000Z"

// Outcome is the result of recording one completion event.
type Outcome struct {
	Completion Completion `json:"completion"`
	Streak     int        `json:"streak"`
	Duplicate  bool       `json:"duplicate"`
}

// ResolveTimestamp picks the event timestamp: the requested one when present
// and parseable, otherwise now in UTC.
func ResolveTimestamp(requested string, now time.Time) (string, time.Time, error) {
	if requested == "" {
		n := now.UTC()
		return n.Format(timestampLayout), n, nil
	}
	t, err := time.Parse(time.RFC3339, requested)
	if err != nil {
		return "", time.Time{}, ErrInvalidTimestamp
	}
	return requested, t, nil
}

func minuteOfDay(t time.Time) int {
	u := t.UTC()
	return u.Hour()*60 + u.Minute()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// isOnTime compares the event's minute-of-day against the target timestamp's
// minute-of-day. The target's date component is ignored.
func isOnTime(target string, event time.Time) bool {
	t, err := time.Parse(time.RFC3339, target)
	if err != nil {
		return false
	}
	return abs(minuteOfDay(event)-minuteOfDay(t)) <= toleranceMinutes
}

// Streak counts consecutive UTC calendar days with a completion, walking
// backward from today. Zero when today itself has no completion. Always a
// full recomputation from the completion set, which keeps back-filled or
// out-of-order recordings correct.
func Streak(completions Completions, now time.Time) int {
	dates := make(map[string]struct{}, len(completions))
	for _, c := range completions {
		if d, ok := toYMD(c.Timestamp); ok {
			dates[d] = struct{}{}
		}
	}

	streak := 0
	cursor := now.UTC()
	for {
		if _, ok := dates[cursor.Format(dayLayout)]; !ok {
			return streak
		}
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
}

// Record applies one completion event to the habit: resolves the timestamp,
// evaluates on-time status, detects a same-UTC-date duplicate (promoting its
// on_time flag when the new evaluation is on time), appends otherwise, and
// recomputes the streak. Pure except for mutating h.
func Record(h *Habit, requested string, now time.Time) (*Outcome, error) {
	timestamp, event, err := ResolveTimestamp(requested, now)
	if err != nil {
		return nil, err
	}

	onTime := isOnTime(h.TargetTime, event)
	eventYMD := event.UTC().Format(dayLayout)

	for i := range h.Completions {
		d, ok := toYMD(h.Completions[i].Timestamp)
		if !ok || d != eventYMD {
			continue
		}
		if onTime && !h.Completions[i].OnTime {
			h.Completions[i].OnTime = true
		}
		h.Streak = Streak(h.Completions, now)
		return &Outcome{
			Completion: h.Completions[i],
			Streak:     h.Streak,
			Duplicate:  true,
		}, nil
	}

	completion := Completion{Timestamp: timestamp, OnTime: onTime}
	h.Completions = append(h.Completions, completion)
	h.Streak = Streak(h.Completions, now)

	return &Outcome{
		Completion: completion,
		Streak:     h.Streak,
		Duplicate:  false,
	}, nil
}
