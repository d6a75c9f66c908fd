package services

import (
	"context"
	"testing"
	"time"

	"github.com/Dias221467/mindbloom/internal/gamification"
	"github.com/Dias221467/mindbloom/internal/models"
	"github.com/Dias221467/mindbloom/pkg/lock"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	clock        *testClock
	users        *fakeUsers
	logs         *fakeXPLogs
	notes        *fakeNotifications
	achievements *fakeAchievements
	templates    *fakeTemplates
	badges       *fakeBadges
	challenges   *fakeChallenges
	journal      *fakeJournal
	habits       *fakeHabits

	xp       *XPService
	ach      *AchievementService
	chs      *ChallengeService
	js       *JournalService
	hs       *HabitService
	game     *GamificationService
	accounts *UserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	e := &testEnv{
		clock:        newTestClock(time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)),
		users:        newFakeUsers(),
		logs:         &fakeXPLogs{},
		notes:        &fakeNotifications{},
		achievements: newFakeAchievements(),
		templates:    &fakeTemplates{},
		badges:       &fakeBadges{},
		challenges:   newFakeChallenges(),
		journal:      &fakeJournal{},
		habits:       newFakeHabits(),
	}
	locker := lock.NewMemoryLocker()

	e.xp = NewXPService(e.users, e.logs, e.achievements, e.notes, locker,
		gamification.LinearPolicy{Base: 100}, gamification.ExponentialPolicy{Base: 100, Growth: 1.5})
	e.xp.now = e.clock.Now
	e.ach = NewAchievementService(e.achievements, e.templates, e.badges, e.users, e.xp, e.notes, locker)
	e.ach.now = e.clock.Now
	e.chs = NewChallengeService(e.challenges, e.users, e.notes, locker)
	e.chs.now = e.clock.Now
	e.js = NewJournalService(e.journal)
	e.js.now = e.clock.Now
	e.hs = NewHabitService(e.habits, locker)
	e.hs.now = e.clock.Now
	e.game = NewGamificationService(e.xp, e.ach, e.chs, e.js, e.hs)
	e.accounts = NewUserService(e.users, e.ach, "test-secret", time.Hour)

	ctx := context.Background()
	_, err := e.ach.SeedBadges(ctx)
	require.NoError(t, err)
	_, err = e.ach.SeedTemplates(ctx)
	require.NoError(t, err)
	return e
}

// newUser stores a level 1 user with the default achievements.
func (e *testEnv) newUser(t *testing.T) *models.User {
	t.Helper()
	u := e.users.add(models.User{Username: "user", Email: "u@example.com", Role: models.RoleUser})
	_, err := e.ach.Initialize(context.Background(), u.ID)
	require.NoError(t, err)
	return u
}
