// Package diary aggregates a user's journal log into display stats:
// total entry count, consecutive-day streak, today flag and level state.
package diary

import (
	"time"

	"telegram-mood-journal/internal/level"
)

const dayLayout = "2006-01-02"

// Stats is the read-only aggregate for one user.
type Stats struct {
	Total    int
	Streak   int
	DidToday bool
	Level    level.State
}

// Day formats t as the calendar-day key used across the store.
func Day(t time.Time) string { return t.Format(dayLayout) }

// Streak walks backward day-by-day from now and counts consecutive days with
// at least one entry. The walk stops on the first empty day without
// decrementing, so a user who logged yesterday but not yet today still
// reports the streak ending yesterday. Callers must read the result as
// "streak as of now", not "streak including today".
func Streak(days []string, now time.Time) int {
	seen := make(map[string]struct{}, len(days))
	for _, d := range days {
		seen[d] = struct{}{}
	}

	streak := 0
	d := now
	if _, ok := seen[Day(d)]; !ok {
		// Today not logged yet: the unbroken run may still end yesterday.
		d = d.AddDate(0, 0, -1)
	}
	for {
		if _, ok := seen[Day(d)]; !ok {
			break
		}
		streak++
		d = d.AddDate(0, 0, -1)
	}
	return streak
}

// BuildStats combines the raw aggregates into Stats. days is the distinct
// list of entry days for the user; total counts every entry, including
// multiple entries on the same day.
func BuildStats(total int, days []string, now time.Time) Stats {
	didToday := false
	today := Day(now)
	for _, d := range days {
		if d == today {
			didToday = true
			break
		}
	}
	return Stats{
		Total:    total,
		Streak:   Streak(days, now),
		DidToday: didToday,
		Level:    level.FromTotal(total),
	}
}
