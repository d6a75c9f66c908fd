package gamification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func march(day, hour int) time.Time {
	return time.Date(2024, time.March, day, hour, 30, 0, 0, time.UTC)
}

func TestComputeStreak(t *testing.T) {
	tests := []struct {
		name    string
		dates   []time.Time
		now     time.Time
		current int
		longest int
		lastDay int
	}{
		{
			name:    "gap resets running streak, today extends yesterday",
			dates:   []time.Time{march(1, 8), march(2, 22), march(3, 7), march(5, 12), march(6, 9)},
			now:     march(6, 18),
			current: 2,
			longest: 3,
			lastDay: 6,
		},
		{
			name:    "streak still alive when last entry was yesterday",
			dates:   []time.Time{march(4, 9), march(5, 23)},
			now:     march(6, 10),
			current: 2,
			longest: 2,
			lastDay: 5,
		},
		{
			name:    "broken streak keeps longest",
			dates:   []time.Time{march(1, 9), march(2, 9)},
			now:     march(6, 10),
			current: 0,
			longest: 2,
			lastDay: 2,
		},
		{
			name:    "entry today after a gap restarts at one",
			dates:   []time.Time{march(1, 9), march(2, 9), march(6, 7)},
			now:     march(6, 10),
			current: 1,
			longest: 2,
			lastDay: 6,
		},
		{
			name:    "single entry today",
			dates:   []time.Time{march(6, 1)},
			now:     march(6, 10),
			current: 1,
			longest: 1,
			lastDay: 6,
		},
		{
			name:    "several entries per day count once",
			dates:   []time.Time{march(4, 1), march(4, 13), march(5, 2), march(5, 20), march(6, 8)},
			now:     march(6, 22),
			current: 3,
			longest: 3,
			lastDay: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := ComputeStreak(tt.dates, tt.now)
			assert.Equal(t, tt.current, info.CurrentStreak)
			assert.Equal(t, tt.longest, info.LongestStreak)
			require.NotNil(t, info.LastEntryDate)
			assert.Equal(t, time.Date(2024, time.March, tt.lastDay, 0, 0, 0, 0, time.UTC), *info.LastEntryDate)
		})
	}
}

func TestComputeStreakNoEntries(t *testing.T) {
	info := ComputeStreak(nil, march(6, 10))

	assert.Equal(t, 0, info.CurrentStreak)
	assert.Equal(t, 0, info.LongestStreak)
	assert.Nil(t, info.LastEntryDate)
}

func TestComputeStreakIgnoresFutureDays(t *testing.T) {
	info := ComputeStreak([]time.Time{march(7, 9)}, march(6, 10))
	assert.Equal(t, StreakInfo{}, info)
}

func TestNextDailyStreak(t *testing.T) {
	now := march(6, 9)

	streak, newDay := NextDailyStreak(0, nil, now)
	assert.Equal(t, 1, streak)
	assert.True(t, newDay)

	sameDay := march(6, 1)
	streak, newDay = NextDailyStreak(4, &sameDay, now)
	assert.Equal(t, 4, streak)
	assert.False(t, newDay)

	// 23:50 yesterday is less than a day ago but still a new calendar day.
	lateYesterday := time.Date(2024, time.March, 5, 23, 50, 0, 0, time.UTC)
	streak, newDay = NextDailyStreak(4, &lateYesterday, now)
	assert.Equal(t, 5, streak)
	assert.True(t, newDay)

	// 23:10 two days back is under 48h ago but the streak is broken.
	twoDaysBack := time.Date(2024, time.March, 4, 23, 10, 0, 0, time.UTC)
	streak, newDay = NextDailyStreak(4, &twoDaysBack, now)
	assert.Equal(t, 1, streak)
	assert.True(t, newDay)
}
