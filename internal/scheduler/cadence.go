package scheduler

import (
	"time"
)

const daysPerWeek = 7

// NextWeeklyCheck returns the next occurrence of the configured weekday at
// the configured local hour, strictly after now. The result depends only on
// the wall clock, so recomputing it after a reboot reproduces the same
// target instead of drifting.
func NextWeeklyCheck(now time.Time, weekday time.Weekday, hour int) time.Time {
	candidate := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())

	daysAhead := (int(weekday) - int(now.Weekday()) + daysPerWeek) % daysPerWeek
	candidate = candidate.AddDate(0, 0, daysAhead)

	if !candidate.After(now) {
		candidate = candidate.AddDate(0, 0, daysPerWeek)
	}

	return candidate
}
