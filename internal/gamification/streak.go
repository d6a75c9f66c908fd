package gamification

import (
	"sort"
	"time"
)

// StreakInfo summarizes consecutive-day activity.
type StreakInfo struct {
	CurrentStreak int        `json:"currentStreak"`
	LongestStreak int        `json:"longestStreak"`
	LastEntryDate *time.Time `json:"lastEntryDate"`
}

// Day truncates t to midnight in its own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	return Day(a.In(loc)).Equal(Day(b.In(loc)))
}

func nextDay(d time.Time) time.Time {
	return d.AddDate(0, 0, 1)
}

// distinctDays normalizes dates to calendar days in loc, dedupes and sorts ascending.
func distinctDays(dates []time.Time, loc *time.Location) []time.Time {
	seen := make(map[time.Time]struct{}, len(dates))
	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		day := Day(d.In(loc))
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// ComputeStreak derives current and longest streaks from activity dates, using
// the calendar of now's location.
func ComputeStreak(dates []time.Time, now time.Time) StreakInfo {
	loc := now.Location()
	today := Day(now)
	yesterday := today.AddDate(0, 0, -1)

	var history []time.Time
	hasToday := false
	for _, day := range distinctDays(dates, loc) {
		switch {
		case day.Equal(today):
			hasToday = true
		case day.Before(today):
			history = append(history, day)
		}
	}

	if len(history) == 0 {
		if !hasToday {
			return StreakInfo{}
		}
		t := today
		return StreakInfo{CurrentStreak: 1, LongestStreak: 1, LastEntryDate: &t}
	}

	longest, run := 0, 0
	for i, day := range history {
		if i > 0 && day.Equal(nextDay(history[i-1])) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	last := history[len(history)-1]
	current := run
	switch {
	case !last.Equal(yesterday):
		current = 0
		if hasToday {
			current = 1
		}
	case hasToday:
		current = run + 1
	}
	if current > longest {
		longest = current
	}

	lastEntry := last
	if hasToday {
		lastEntry = today
	}
	return StreakInfo{CurrentStreak: current, LongestStreak: longest, LastEntryDate: &lastEntry}
}

// NextDailyStreak advances a stored streak for an action performed at now.
// Same day leaves it unchanged, the following day extends it, anything older
// restarts at 1. It reports whether the action landed on a new calendar day.
func NextDailyStreak(streak int, last *time.Time, now time.Time) (int, bool) {
	if last == nil || last.IsZero() {
		return 1, true
	}
	loc := now.Location()
	today := Day(now)
	lastDay := Day(last.In(loc))

	switch {
	case lastDay.Equal(today):
		if streak < 1 {
			return 1, false
		}
		return streak, false
	case nextDay(lastDay).Equal(today):
		return streak + 1, true
	default:
		return 1, true
	}
}
