package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Dias221467/mindbloom/internal/models"
	"github.com/Dias221467/mindbloom/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func seedAchievement(e *testEnv, userID primitive.ObjectID, target, current, reward int) models.Achievement {
	a := []models.Achievement{{
		UserID:       userID,
		Title:        "Five Alive",
		Category:     "Special",
		Target:       target,
		CurrentValue: current,
		XPReward:     reward,
	}}
	_ = e.achievements.InsertMany(context.Background(), a)
	return a[0]
}

func TestInitializeRejectsSecondCall(t *testing.T) {
	e := newTestEnv(t)
	u := e.users.add(models.User{})
	ctx := context.Background()

	created, err := e.ach.Initialize(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, created, len(DefaultAchievementTemplates()))

	_, err = e.ach.Initialize(ctx, u.ID)
	assert.True(t, apperror.Is(err, apperror.Conflict))

	n, _ := e.achievements.CountByUser(ctx, u.ID)
	assert.Equal(t, int64(len(created)), n)
}

func TestInitializeLinksBadges(t *testing.T) {
	e := newTestEnv(t)
	u := e.newUser(t)

	guru := e.achievements.byTitle(u.ID, AchGratitudeGuru)
	require.NotNil(t, guru.BadgeID)

	badge, err := e.badges.GetBadgeByTitle(context.Background(), "Gratitude Guru")
	require.NoError(t, err)
	assert.Equal(t, badge.ID, *guru.BadgeID)
	assert.Nil(t, e.achievements.byTitle(u.ID, AchJournalStarter).BadgeID)
}

func TestUpdateProgressCompletesOnce(t *testing.T) {
	e := newTestEnv(t)
	u := e.users.add(models.User{})
	a := seedAchievement(e, u.ID, 5, 4, 100)
	ctx := context.Background()

	res, err := e.ach.UpdateProgress(ctx, u.ID, a.ID, 2)
	require.NoError(t, err)
	assert.True(t, res.Completed)
	assert.Equal(t, 5, res.Achievement.CurrentValue)
	assert.True(t, res.Achievement.IsCompleted)
	require.NotNil(t, res.XP)
	assert.Equal(t, 100, res.XP.Awarded)

	res, err = e.ach.UpdateProgress(ctx, u.ID, a.ID, 3)
	require.NoError(t, err)
	assert.False(t, res.Completed)
	assert.Equal(t, 5, res.Achievement.CurrentValue)

	assert.Equal(t, 100, e.logs.total(u.ID, models.XPActionAchievement))
	assert.Equal(t, 1, e.notes.count(u.ID, models.NotificationAchievementComplete))
	stored := e.users.get(u.ID)
	assert.Equal(t, 2, stored.Level)
	assert.Equal(t, 0, stored.XP)
}

func TestCompletionRetriedAfterFailedWrite(t *testing.T) {
	e := newTestEnv(t)
	u := e.users.add(models.User{})
	a := seedAchievement(e, u.ID, 1, 0, 50)
	ctx := context.Background()

	e.achievements.failCompletions = 1
	_, err := e.ach.UpdateProgress(ctx, u.ID, a.ID, 1)
	require.True(t, apperror.Is(err, apperror.Transient))
	stuck := e.achievements.items[a.ID]
	assert.Equal(t, 1, stuck.CurrentValue)
	assert.False(t, stuck.IsCompleted)

	// The value is already at target; the next call must still complete it.
	res, err := e.ach.UpdateProgress(ctx, u.ID, a.ID, 1)
	require.NoError(t, err)
	assert.True(t, res.Completed)
	require.NotNil(t, res.XP)
	assert.Equal(t, 50, res.XP.Awarded)
	assert.True(t, e.achievements.items[a.ID].IsCompleted)
	assert.Equal(t, 50, e.logs.total(u.ID, models.XPActionAchievement))

	res, err = e.ach.UpdateProgress(ctx, u.ID, a.ID, 1)
	require.NoError(t, err)
	assert.False(t, res.Completed)
	assert.Equal(t, 50, e.logs.total(u.ID, models.XPActionAchievement))
}

func TestAdvanceToRetriesCompletionAtTarget(t *testing.T) {
	e := newTestEnv(t)
	u := e.users.add(models.User{})
	a := seedAchievement(e, u.ID, 3, 2, 40)
	ctx := context.Background()

	e.achievements.failCompletions = 1
	_, err := e.ach.AdvanceTo(ctx, u.ID, a.Title, 3)
	require.Error(t, err)
	assert.Equal(t, 3, e.achievements.items[a.ID].CurrentValue)

	res, err := e.ach.AdvanceTo(ctx, u.ID, a.Title, 3)
	require.NoError(t, err)
	assert.True(t, res.Completed)
	assert.Equal(t, 40, e.logs.total(u.ID, models.XPActionAchievement))
}

func TestUpdateProgressConcurrentCrossingAwardsOnce(t *testing.T) {
	e := newTestEnv(t)
	u := e.users.add(models.User{})
	a := seedAchievement(e, u.ID, 3, 2, 70)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.ach.UpdateProgress(context.Background(), u.ID, a.ID, 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 70, e.logs.total(u.ID, models.XPActionAchievement))
	assert.Equal(t, 70, e.users.get(u.ID).TotalXP)
}

func TestUpdateProgressValidation(t *testing.T) {
	e := newTestEnv(t)
	u := e.users.add(models.User{})
	a := seedAchievement(e, u.ID, 5, 0, 10)
	ctx := context.Background()

	_, err := e.ach.UpdateProgress(ctx, u.ID, a.ID, 0)
	assert.True(t, apperror.Is(err, apperror.Validation))

	_, err = e.ach.UpdateProgress(ctx, primitive.NewObjectID(), a.ID, 1)
	assert.True(t, apperror.Is(err, apperror.NotFound))
}

func TestCompletionLinksBadgeToUser(t *testing.T) {
	e := newTestEnv(t)
	u := e.newUser(t)
	ctx := context.Background()

	guru := e.achievements.byTitle(u.ID, AchGratitudeGuru)
	_, err := e.ach.Advance(ctx, u.ID, AchGratitudeGuru, guru.Target)
	require.NoError(t, err)

	assert.Contains(t, e.users.get(u.ID).Badges, *guru.BadgeID)
}

func TestAdvanceUnknownTitleIsNoop(t *testing.T) {
	e := newTestEnv(t)
	u := e.users.add(models.User{})

	res, err := e.ach.Advance(context.Background(), u.ID, "Nope", 1)
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestAdvanceToNeverLowers(t *testing.T) {
	e := newTestEnv(t)
	u := e.newUser(t)
	ctx := context.Background()

	_, err := e.ach.AdvanceTo(ctx, u.ID, AchConsistentJournaler, 4)
	require.NoError(t, err)
	_, err = e.ach.AdvanceTo(ctx, u.ID, AchConsistentJournaler, 2)
	require.NoError(t, err)
	assert.Equal(t, 4, e.achievements.byTitle(u.ID, AchConsistentJournaler).CurrentValue)
}

func TestListOrdersAndStats(t *testing.T) {
	e := newTestEnv(t)
	u := e.newUser(t)
	ctx := context.Background()

	_, err := e.ach.Advance(ctx, u.ID, AchJournalStarter, 1)
	require.NoError(t, err)
	e.clock.Set(e.clock.Now().Add(time.Hour))
	_, err = e.ach.Advance(ctx, u.ID, AchChallengeCreator, 1)
	require.NoError(t, err)
	_, err = e.ach.Advance(ctx, u.ID, AchMoodTracker, 12)
	require.NoError(t, err)

	all, err := e.ach.List(ctx, u.ID, models.AchievementFilter{})
	require.NoError(t, err)
	require.NotEmpty(t, all)
	assert.True(t, all[0].IsCompleted)
	assert.True(t, all[1].IsCompleted)
	assert.False(t, all[2].IsCompleted)

	done, err := e.ach.Completed(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, done, 2)
	assert.Equal(t, AchChallengeCreator, done[0].Title)

	open, err := e.ach.InProgress(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, AchMoodTracker, open[0].Title)

	journaling := "Journaling"
	filtered, err := e.ach.List(ctx, u.ID, models.AchievementFilter{Category: journaling})
	require.NoError(t, err)
	for _, a := range filtered {
		assert.Equal(t, journaling, a.Category)
	}

	stats, err := e.ach.Stats(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, len(DefaultAchievementTemplates()), stats.TotalAchievements)
	assert.Equal(t, 2, stats.CompletedAchievements)
	assert.Equal(t, 1, stats.Categories["Journaling"].Completed)
	assert.Equal(t, 25.0, stats.Categories["Journaling"].Percentage)
	assert.Equal(t, AchChallengeCreator, stats.RecentlyCompleted[0].Title)

	recent, err := e.ach.Recent(ctx, u.ID, 1)
	require.NoError(t, err)
	assert.Len(t, recent, 1)
}

func TestSeedingIsIdempotent(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	n, err := e.ach.SeedTemplates(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	n, err = e.ach.SeedBadges(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	badges, err := e.ach.ListBadges(ctx)
	require.NoError(t, err)
	assert.Len(t, badges, 6)
}

func TestTemplateCRUD(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	_, err := e.ach.CreateTemplate(ctx, &models.AchievementTemplate{Title: "Bad"})
	assert.True(t, apperror.Is(err, apperror.Validation))

	tpl, err := e.ach.CreateTemplate(ctx, &models.AchievementTemplate{
		Title: "Night Owl", Description: "Journal after 10pm", Category: "Special", Target: 3, XPReward: 40,
	})
	require.NoError(t, err)

	tpl.Target = 5
	updated, err := e.ach.UpdateTemplate(ctx, tpl)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Target)

	require.NoError(t, e.ach.DeleteTemplate(ctx, tpl.ID))
	assert.True(t, apperror.Is(e.ach.DeleteTemplate(ctx, tpl.ID), apperror.NotFound))
}
