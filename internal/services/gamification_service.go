package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Dias221467/mindbloom/internal/gamification"
	"github.com/Dias221467/mindbloom/internal/models"
	"github.com/Dias221467/mindbloom/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// XP granted per qualifying action.
const (
	JournalXP          = 20
	CheckInXP          = 10
	ChallengeCheckInXP = 10
	HabitXP            = 10
	AllTasksBonusXP    = 50
	levelUpTarget      = 5
)

// Rewards aggregates what one user action earned.
type Rewards struct {
	XPAwarded    int                  `json:"xpAwarded"`
	Level        int                  `json:"level"`
	XP           int                  `json:"xp"`
	LevelsGained int                  `json:"levelsGained"`
	Completed    []models.Achievement `json:"completedAchievements"`
}

func (r *Rewards) addXP(res *XPResult) {
	if res == nil {
		return
	}
	r.XPAwarded += res.Awarded
	r.LevelsGained += res.LevelsGained
	r.Level = res.User.Level
	r.XP = res.User.XP
}

func (r *Rewards) addProgress(res *ProgressResult) {
	if res == nil || !res.Completed {
		return
	}
	r.Completed = append(r.Completed, *res.Achievement)
	r.addXP(res.XP)
}

type JournalOutcome struct {
	Entry   *models.JournalEntry    `json:"entry"`
	Streak  gamification.StreakInfo `json:"streak"`
	Rewards *Rewards                `json:"rewards"`
}

type CheckInOutcome struct {
	User    *models.User `json:"user"`
	NewDay  bool         `json:"newDay"`
	Rewards *Rewards     `json:"rewards"`
}

type ChallengeOutcome struct {
	Challenge *models.Challenge `json:"challenge"`
	Rewards   *Rewards          `json:"rewards"`
}

type ChallengeCheckInOutcome struct {
	*CheckInResult
	Rewards *Rewards `json:"rewards"`
}

type TaskOutcome struct {
	*TaskResult
	Rewards *Rewards `json:"rewards"`
}

type HabitOutcome struct {
	Habit   *models.Habit `json:"habit"`
	Rewards *Rewards      `json:"rewards"`
}

// GamificationService sequences the trackers for each qualifying user action:
// the action is persisted first, then achievement progress, then XP.
type GamificationService struct {
	xp           *XPService
	achievements *AchievementService
	challenges   *ChallengeService
	journal      *JournalService
	habits       *HabitService
}

func NewGamificationService(xp *XPService, achievements *AchievementService, challenges *ChallengeService, journal *JournalService, habits *HabitService) *GamificationService {
	return &GamificationService{
		xp:           xp,
		achievements: achievements,
		challenges:   challenges,
		journal:      journal,
		habits:       habits,
	}
}

// award credits XP and keeps the "Level Up" achievement in step with the level.
func (g *GamificationService) award(ctx context.Context, userID primitive.ObjectID, amount int, action string, r *Rewards) error {
	res, err := g.xp.AddXP(ctx, userID, amount, action)
	if err != nil {
		return fmt.Errorf("award %s xp: %w", action, err)
	}
	r.addXP(res)
	return g.syncLevel(ctx, userID, res.User.Level, r)
}

// Award grants XP outside of a tracked action, such as an operator correction.
func (g *GamificationService) Award(ctx context.Context, userID primitive.ObjectID, amount int, action string) (*Rewards, error) {
	r := &Rewards{}
	if err := g.award(ctx, userID, amount, action, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (g *GamificationService) syncLevel(ctx context.Context, userID primitive.ObjectID, level int, r *Rewards) error {
	if level <= 1 {
		return nil
	}
	if level > levelUpTarget {
		level = levelUpTarget
	}
	res, err := g.achievements.AdvanceTo(ctx, userID, AchLevelUp, level)
	if err != nil {
		return err
	}
	r.addProgress(res)
	return nil
}

func (g *GamificationService) advance(ctx context.Context, userID primitive.ObjectID, title string, delta int, r *Rewards) error {
	if delta <= 0 {
		return nil
	}
	res, err := g.achievements.Advance(ctx, userID, title, delta)
	if err != nil {
		return fmt.Errorf("advance %q: %w", title, err)
	}
	r.addProgress(res)
	if res != nil && res.XP != nil {
		return g.syncLevel(ctx, userID, res.XP.User.Level, r)
	}
	return nil
}

// SaveJournal stores an entry and applies the journaling rewards.
func (g *GamificationService) SaveJournal(ctx context.Context, userID primitive.ObjectID, in *JournalInput) (*JournalOutcome, error) {
	entry, err := g.journal.Create(ctx, userID, in)
	if err != nil {
		return nil, err
	}

	r := &Rewards{}
	out := &JournalOutcome{Entry: entry, Rewards: r}

	if err := g.advance(ctx, userID, AchGratitudeGuru, len(entry.Gratitude), r); err != nil {
		return out, err
	}
	if err := g.advance(ctx, userID, AchJournalStarter, 1, r); err != nil {
		return out, err
	}
	if err := g.advance(ctx, userID, AchMoodTracker, 1, r); err != nil {
		return out, err
	}

	streak, err := g.journal.Streak(ctx, userID)
	if err != nil {
		return out, err
	}
	out.Streak = streak
	res, err := g.achievements.AdvanceTo(ctx, userID, AchConsistentJournaler, streak.CurrentStreak)
	if err != nil {
		return out, err
	}
	r.addProgress(res)

	if err := g.award(ctx, userID, JournalXP, models.XPActionJournal, r); err != nil {
		return out, err
	}
	return out, nil
}

// CheckIn runs the daily check-in. Only the first check-in of a day counts
// toward "Consistency Champion".
func (g *GamificationService) CheckIn(ctx context.Context, userID primitive.ObjectID) (*CheckInOutcome, error) {
	streak, err := g.xp.UpdateStreak(ctx, userID)
	if err != nil {
		return nil, err
	}

	r := &Rewards{Level: streak.User.Level, XP: streak.User.XP}
	out := &CheckInOutcome{User: streak.User, NewDay: streak.NewDay, Rewards: r}
	if !streak.NewDay {
		return out, nil
	}

	if err := g.advance(ctx, userID, AchConsistencyChampion, 1, r); err != nil {
		return out, err
	}
	if err := g.award(ctx, userID, CheckInXP, models.XPActionOther, r); err != nil {
		return out, err
	}
	if user, err := g.xp.users.GetUserByID(ctx, userID); err == nil {
		out.User = user
	}
	return out, nil
}

func (g *GamificationService) CreateChallenge(ctx context.Context, userID primitive.ObjectID, in *ChallengeInput) (*ChallengeOutcome, error) {
	ch, err := g.challenges.Create(ctx, userID, in)
	if err != nil {
		return nil, err
	}
	r := &Rewards{}
	out := &ChallengeOutcome{Challenge: ch, Rewards: r}
	return out, g.advance(ctx, userID, AchChallengeCreator, 1, r)
}

func (g *GamificationService) JoinChallenge(ctx context.Context, id, userID primitive.ObjectID, code string) (*ChallengeOutcome, error) {
	ch, err := g.challenges.Join(ctx, id, userID, code)
	if err != nil {
		return nil, err
	}
	return g.joined(ctx, userID, ch)
}

func (g *GamificationService) JoinChallengeByCode(ctx context.Context, code string, userID primitive.ObjectID) (*ChallengeOutcome, error) {
	ch, err := g.challenges.JoinByCode(ctx, code, userID)
	if err != nil {
		return nil, err
	}
	return g.joined(ctx, userID, ch)
}

func (g *GamificationService) joined(ctx context.Context, userID primitive.ObjectID, ch *models.Challenge) (*ChallengeOutcome, error) {
	r := &Rewards{}
	out := &ChallengeOutcome{Challenge: ch, Rewards: r}
	if err := g.advance(ctx, userID, AchChallengeAccepted, 1, r); err != nil {
		return out, err
	}
	if !ch.IsPrivate {
		if err := g.advance(ctx, userID, AchSocialButterfly, 1, r); err != nil {
			return out, err
		}
	}
	return out, nil
}

// ChallengeCheckIn records the check-in and, on the check-in that completes
// the challenge for the user, grants the challenge reward.
func (g *GamificationService) ChallengeCheckIn(ctx context.Context, id, userID primitive.ObjectID) (*ChallengeCheckInOutcome, error) {
	res, err := g.challenges.CheckIn(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	r := &Rewards{}
	out := &ChallengeCheckInOutcome{CheckInResult: res, Rewards: r}

	if err := g.award(ctx, userID, ChallengeCheckInXP, models.XPActionChallenge, r); err != nil {
		return out, err
	}
	if !res.JustCompleted {
		return out, nil
	}
	if err := g.challengeCompleted(ctx, userID, res.Challenge, r); err != nil {
		return out, err
	}
	return out, nil
}

func (g *GamificationService) challengeCompleted(ctx context.Context, userID primitive.ObjectID, ch *models.Challenge, r *Rewards) error {
	if ch.XPReward > 0 {
		if err := g.award(ctx, userID, ch.XPReward, models.XPActionChallenge, r); err != nil {
			return err
		}
	}
	if err := g.advance(ctx, userID, AchChallengeMaster, 1, r); err != nil {
		return err
	}
	if err := g.advance(ctx, userID, AchChallengeConqueror, 1, r); err != nil {
		return err
	}

	if g.xp.notifier != nil {
		msg := fmt.Sprintf("You completed the challenge \"%s\".", ch.Title)
		if err := g.xp.notifier.Notify(ctx, userID, models.NotificationChallengeComplete, "Challenge complete", msg, &ch.ID); err != nil {
			logger.Log.WithError(err).Warn("Failed to record challenge completion notification")
		}
	}
	return nil
}

// CompleteChallengeTask awards the task's points; finishing every task adds a
// bonus and completes the challenge unless a check-in already did. Repeating
// a completed task awards nothing.
func (g *GamificationService) CompleteChallengeTask(ctx context.Context, id, userID, taskID primitive.ObjectID) (*TaskOutcome, error) {
	res, err := g.challenges.CompleteTask(ctx, id, userID, taskID)
	if err != nil {
		return nil, err
	}
	r := &Rewards{}
	out := &TaskOutcome{TaskResult: res, Rewards: r}
	if res.AlreadyCompleted {
		return out, nil
	}

	if res.Task.Points > 0 {
		if err := g.award(ctx, userID, res.Task.Points, models.XPActionChallenge, r); err != nil {
			return out, err
		}
	}
	if res.AllTasksDone {
		if err := g.award(ctx, userID, AllTasksBonusXP, models.XPActionChallenge, r); err != nil {
			return out, err
		}
	}
	if res.JustCompleted {
		if err := g.challengeCompleted(ctx, userID, res.Challenge, r); err != nil {
			return out, err
		}
	}
	return out, nil
}

func isMindfulness(category string) bool {
	switch strings.ToLower(strings.TrimSpace(category)) {
	case "mindfulness", "meditation":
		return true
	}
	return false
}

// CompleteHabit marks a habit done for today and rewards it.
func (g *GamificationService) CompleteHabit(ctx context.Context, userID, habitID primitive.ObjectID) (*HabitOutcome, error) {
	habit, err := g.habits.Complete(ctx, userID, habitID)
	if err != nil {
		return nil, err
	}
	r := &Rewards{}
	out := &HabitOutcome{Habit: habit, Rewards: r}

	if isMindfulness(habit.Category) {
		if err := g.advance(ctx, userID, AchMindfulnessMaster, 1, r); err != nil {
			return out, err
		}
	}
	if err := g.award(ctx, userID, HabitXP, models.XPActionHabit, r); err != nil {
		return out, err
	}
	return out, nil
}
