package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Dias221467/mindbloom/internal/gamification"
	"github.com/Dias221467/mindbloom/internal/models"
	"github.com/Dias221467/mindbloom/pkg/apperror"
	"github.com/Dias221467/mindbloom/pkg/lock"
	"github.com/Dias221467/mindbloom/pkg/logger"
	"github.com/Dias221467/mindbloom/pkg/metrics"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// XPResult is the outcome of one award.
type XPResult struct {
	User         *models.User `json:"user"`
	Awarded      int          `json:"awarded"`
	LevelsGained int          `json:"levelsGained"`
}

// StreakResult is the outcome of a daily check-in.
type StreakResult struct {
	User   *models.User `json:"user"`
	NewDay bool         `json:"newDay"`
}

// UserStats is the gamification summary of one user.
type UserStats struct {
	Level                 int                        `json:"level"`
	XP                    int                        `json:"xp"`
	TotalXP               int                        `json:"totalXp"`
	XPForNextLevel        int                        `json:"xpForNextLevel"`
	XPProgress            int                        `json:"xpProgress"`
	StreakDays            int                        `json:"streakDays"`
	LastCheckIn           *time.Time                 `json:"lastCheckIn"`
	TotalAchievements     int                        `json:"totalAchievements"`
	CompletedAchievements int                        `json:"completedAchievements"`
	Badges                int                        `json:"badges"`
	Estimate              gamification.LevelEstimate `json:"estimate"`
}

// XPService owns the user's level, xp and streak counters.
type XPService struct {
	users        UserStore
	logs         XPLogStore
	achievements AchievementStore
	notifier     Notifier
	locker       lock.Locker
	policy       gamification.LevelPolicy
	display      gamification.LevelPolicy
	now          Clock
}

func NewXPService(users UserStore, logs XPLogStore, achievements AchievementStore, notifier Notifier, locker lock.Locker, policy, display gamification.LevelPolicy) *XPService {
	return &XPService{
		users:        users,
		logs:         logs,
		achievements: achievements,
		notifier:     notifier,
		locker:       locker,
		policy:       policy,
		display:      display,
		now:          utcNow,
	}
}

// Policy is the canonical awarding policy.
func (s *XPService) Policy() gamification.LevelPolicy { return s.policy }

// AddXP credits amount to the user, carries overflow into level-ups and
// appends an XP log entry.
func (s *XPService) AddXP(ctx context.Context, userID primitive.ObjectID, amount int, action string) (*XPResult, error) {
	if _, ok := models.AllowedXPActions[action]; !ok {
		return nil, apperror.Validationf("unknown xp action %q", action)
	}
	if amount <= 0 {
		return nil, apperror.Validationf("xp award must be positive, got %d", amount)
	}

	var result *XPResult
	err := lock.WithLock(ctx, s.locker, lock.UserKey(userID.Hex()), func() error {
		user, err := s.users.GetUserByID(ctx, userID)
		if err != nil {
			return err
		}

		level, xp, err := gamification.ApplyXP(s.policy, user.Level, user.XP, amount)
		if err != nil {
			return err
		}
		gained := level - user.Level
		if user.Level < 1 {
			gained = level - 1
		}
		user.Level, user.XP = level, xp
		user.TotalXP += amount

		if err := s.users.SaveProgress(ctx, user); err != nil {
			return err
		}
		result = &XPResult{User: user, Awarded: amount, LevelsGained: gained}
		return nil
	})
	if err != nil {
		return nil, err
	}

	entry := &models.XPLog{UserID: userID, Action: action, Points: amount, Date: s.now()}
	if err := s.logs.CreateXPLog(ctx, entry); err != nil {
		// The award itself is persisted; only the audit row is missing.
		logger.Log.WithError(err).WithField("user_id", userID.Hex()).Error("Failed to append xp log")
	}

	metrics.RecordXPAward(action, amount, result.LevelsGained)
	logger.Log.WithFields(logrus.Fields{
		"user_id": userID.Hex(),
		"action":  action,
		"points":  amount,
		"level":   result.User.Level,
	}).Info("XP awarded")

	if result.LevelsGained > 0 && s.notifier != nil {
		msg := fmt.Sprintf("You reached level %d!", result.User.Level)
		if err := s.notifier.Notify(ctx, userID, models.NotificationLevelUp, "Level up!", msg, nil); err != nil {
			logger.Log.WithError(err).Warn("Failed to record level-up notification")
		}
	}
	return result, nil
}

// UpdateStreak performs the daily check-in using calendar days: the same day
// leaves the streak alone, the next day extends it and a longer gap restarts
// it at 1. lastCheckIn is always stamped.
func (s *XPService) UpdateStreak(ctx context.Context, userID primitive.ObjectID) (*StreakResult, error) {
	var result *StreakResult
	err := lock.WithLock(ctx, s.locker, lock.UserKey(userID.Hex()), func() error {
		user, err := s.users.GetUserByID(ctx, userID)
		if err != nil {
			return err
		}

		now := s.now()
		streak, newDay := gamification.NextDailyStreak(user.StreakDays, user.LastCheckIn, now)
		user.StreakDays = streak
		user.LastCheckIn = &now

		if err := s.users.SaveProgress(ctx, user); err != nil {
			return err
		}
		result = &StreakResult{User: user, NewDay: newDay}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordCheckIn("daily", result.NewDay)
	return result, nil
}

// Stats summarizes level, streak and achievement progress.
func (s *XPService) Stats(ctx context.Context, userID primitive.ObjectID) (*UserStats, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	all, err := s.achievements.List(ctx, userID, models.AchievementFilter{}, bson.D{{Key: "_id", Value: 1}}, 0)
	if err != nil {
		return nil, err
	}
	completed := 0
	for _, a := range all {
		if a.IsCompleted {
			completed++
		}
	}

	return &UserStats{
		Level:                 user.Level,
		XP:                    user.XP,
		TotalXP:               user.TotalXP,
		XPForNextLevel:        s.policy.XPForNextLevel(user.Level),
		XPProgress:            gamification.ProgressPercent(s.policy, user.Level, user.XP),
		StreakDays:            user.StreakDays,
		LastCheckIn:           user.LastCheckIn,
		TotalAchievements:     len(all),
		CompletedAchievements: completed,
		Badges:                len(user.Badges),
		Estimate:              gamification.EstimateLevel(s.display, user.TotalXP),
	}, nil
}

// History returns the newest XP log entries, limit clamped to 1..100.
func (s *XPService) History(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.XPLog, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return s.logs.GetUserXPLogs(ctx, userID, limit)
}
