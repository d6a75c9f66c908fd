package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Dias221467/mindbloom/internal/gamification"
	"github.com/Dias221467/mindbloom/internal/models"
	"github.com/Dias221467/mindbloom/pkg/apperror"
	"github.com/Dias221467/mindbloom/pkg/lock"
	"github.com/Dias221467/mindbloom/pkg/logger"
	"github.com/Dias221467/mindbloom/pkg/metrics"
	"github.com/Dias221467/mindbloom/pkg/validation"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// XPAwarder credits XP to a user.
type XPAwarder interface {
	AddXP(ctx context.Context, userID primitive.ObjectID, amount int, action string) (*XPResult, error)
}

// ProgressResult is returned by every progress update.
type ProgressResult struct {
	Achievement *models.Achievement `json:"achievement"`
	// Completed is true only for the call that completed the achievement.
	Completed bool      `json:"completed"`
	XP        *XPResult `json:"xp,omitempty"`
}

type AchievementService struct {
	achievements AchievementStore
	templates    TemplateStore
	badges       BadgeStore
	users        UserStore
	xp           XPAwarder
	notifier     Notifier
	locker       lock.Locker
	now          Clock
}

func NewAchievementService(achievements AchievementStore, templates TemplateStore, badges BadgeStore, users UserStore, xp XPAwarder, notifier Notifier, locker lock.Locker) *AchievementService {
	return &AchievementService{
		achievements: achievements,
		templates:    templates,
		badges:       badges,
		users:        users,
		xp:           xp,
		notifier:     notifier,
		locker:       locker,
		now:          utcNow,
	}
}

// Initialize creates one achievement per catalog template. A user who already
// owns achievements gets a Conflict.
func (s *AchievementService) Initialize(ctx context.Context, userID primitive.ObjectID) ([]models.Achievement, error) {
	var created []models.Achievement
	err := lock.WithLock(ctx, s.locker, lock.UserKey(userID.Hex()), func() error {
		n, err := s.achievements.CountByUser(ctx, userID)
		if err != nil {
			return err
		}
		if n > 0 {
			return apperror.Conflictf("achievements already initialized")
		}

		templates, err := s.templates.GetAllTemplates(ctx)
		if err != nil {
			return err
		}
		if len(templates) == 0 {
			templates = DefaultAchievementTemplates()
		}

		now := s.now()
		created = make([]models.Achievement, 0, len(templates))
		for _, t := range templates {
			reward := t.XPReward
			if reward <= 0 {
				reward = defaultAchievementXP
			}
			created = append(created, models.Achievement{
				UserID:      userID,
				Title:       t.Title,
				Description: t.Description,
				Category:    t.Category,
				Icon:        t.Icon,
				Target:      t.Target,
				XPReward:    reward,
				BadgeID:     s.badgeID(ctx, t.BadgeTitle),
				CreatedAt:   now,
				UpdatedAt:   now,
			})
		}
		return s.achievements.InsertMany(ctx, created)
	})
	if err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{"user_id": userID.Hex(), "count": len(created)}).Info("Achievements initialized")
	return created, nil
}

func (s *AchievementService) badgeID(ctx context.Context, title string) *primitive.ObjectID {
	if title == "" {
		return nil
	}
	badge, err := s.badges.GetBadgeByTitle(ctx, title)
	if err != nil {
		if !apperror.Is(err, apperror.NotFound) {
			logger.Log.WithError(err).WithField("badge", title).Warn("Failed to resolve badge")
		}
		return nil
	}
	return &badge.ID
}

// UpdateProgress adds delta to an achievement the user owns.
func (s *AchievementService) UpdateProgress(ctx context.Context, userID, achievementID primitive.ObjectID, delta int) (*ProgressResult, error) {
	if delta <= 0 {
		return nil, apperror.Validationf("progress delta must be positive, got %d", delta)
	}
	return s.progress(ctx, userID, achievementID, func(a *models.Achievement) (bool, error) {
		return gamification.ApplyProgress(a, delta)
	})
}

// Advance adds delta to the user's achievement with the given title. Users
// without such an achievement are left alone and get a nil result.
func (s *AchievementService) Advance(ctx context.Context, userID primitive.ObjectID, title string, delta int) (*ProgressResult, error) {
	a, err := s.achievements.FindByTitle(ctx, userID, title)
	if apperror.Is(err, apperror.NotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if a.IsCompleted {
		return &ProgressResult{Achievement: a}, nil
	}
	return s.UpdateProgress(ctx, userID, a.ID, delta)
}

// AdvanceTo raises the titled achievement to value; it never lowers it.
func (s *AchievementService) AdvanceTo(ctx context.Context, userID primitive.ObjectID, title string, value int) (*ProgressResult, error) {
	a, err := s.achievements.FindByTitle(ctx, userID, title)
	if apperror.Is(err, apperror.NotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if a.IsCompleted || (value <= a.CurrentValue && a.CurrentValue < a.Target) {
		return &ProgressResult{Achievement: a}, nil
	}
	return s.progress(ctx, userID, a.ID, func(a *models.Achievement) (bool, error) {
		return gamification.RaiseProgress(a, value), nil
	})
}

// progress runs persist progress, check completion and award XP as separate
// steps under the achievement's lock.
func (s *AchievementService) progress(ctx context.Context, userID, achievementID primitive.ObjectID, mutate func(*models.Achievement) (bool, error)) (*ProgressResult, error) {
	result := &ProgressResult{}
	err := lock.WithLock(ctx, s.locker, lock.AchievementKey(achievementID.Hex()), func() error {
		a, err := s.achievements.GetByID(ctx, userID, achievementID)
		if err != nil {
			return err
		}
		result.Achievement = a

		changed, err := mutate(a)
		if err != nil {
			return err
		}
		if changed {
			if err := s.achievements.UpdateValue(ctx, a.ID, a.CurrentValue); err != nil {
				return err
			}
		}

		// Runs on every call so a value already at target whose completion
		// write failed earlier still completes.
		if !gamification.CheckCompletion(a, s.now()) {
			return nil
		}
		won, err := s.achievements.MarkCompleted(ctx, a.ID, *a.CompletedDate)
		if err != nil {
			return err
		}
		result.Completed = won
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Completed {
		xp, err := s.reward(ctx, result.Achievement)
		if err != nil {
			return result, err
		}
		result.XP = xp
	}
	return result, nil
}

// reward runs once per achievement, after the completion flag was won.
func (s *AchievementService) reward(ctx context.Context, a *models.Achievement) (*XPResult, error) {
	metrics.RecordAchievementCompleted(a.Category)
	logger.Log.WithFields(logrus.Fields{
		"user_id":        a.UserID.Hex(),
		"achievement_id": a.ID.Hex(),
		"title":          a.Title,
	}).Info("Achievement completed")

	if a.BadgeID != nil {
		if err := s.users.AddBadge(ctx, a.UserID, *a.BadgeID); err != nil {
			logger.Log.WithError(err).Warn("Failed to link badge to user")
		}
	}
	if s.notifier != nil {
		msg := fmt.Sprintf("You completed \"%s\" and earned %d XP.", a.Title, a.XPReward)
		if err := s.notifier.Notify(ctx, a.UserID, models.NotificationAchievementComplete, "Achievement unlocked", msg, &a.ID); err != nil {
			logger.Log.WithError(err).Warn("Failed to record achievement notification")
		}
	}

	if a.XPReward <= 0 {
		return nil, nil
	}
	return s.xp.AddXP(ctx, a.UserID, a.XPReward, models.XPActionAchievement)
}

// List returns the user's achievements, completed first, then by category.
func (s *AchievementService) List(ctx context.Context, userID primitive.ObjectID, filter models.AchievementFilter) ([]models.Achievement, error) {
	sortBy := bson.D{{Key: "is_completed", Value: -1}, {Key: "category", Value: 1}, {Key: "title", Value: 1}}
	return s.achievements.List(ctx, userID, filter, sortBy, 0)
}

// Completed returns completed achievements, most recently completed first.
func (s *AchievementService) Completed(ctx context.Context, userID primitive.ObjectID) ([]models.Achievement, error) {
	done := true
	return s.achievements.List(ctx, userID, models.AchievementFilter{Completed: &done}, bson.D{{Key: "completed_date", Value: -1}}, 0)
}

// InProgress returns open achievements, furthest along first.
func (s *AchievementService) InProgress(ctx context.Context, userID primitive.ObjectID) ([]models.Achievement, error) {
	open := false
	return s.achievements.List(ctx, userID, models.AchievementFilter{Completed: &open}, bson.D{{Key: "current_value", Value: -1}}, 0)
}

// Recent returns the latest completions.
func (s *AchievementService) Recent(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.Achievement, error) {
	if limit <= 0 {
		limit = 5
	}
	done := true
	return s.achievements.List(ctx, userID, models.AchievementFilter{Completed: &done}, bson.D{{Key: "completed_date", Value: -1}}, int64(limit))
}

func (s *AchievementService) Get(ctx context.Context, userID, id primitive.ObjectID) (*models.Achievement, error) {
	return s.achievements.GetByID(ctx, userID, id)
}

// Stats totals achievements overall and per category.
func (s *AchievementService) Stats(ctx context.Context, userID primitive.ObjectID) (*models.AchievementStats, error) {
	all, err := s.achievements.List(ctx, userID, models.AchievementFilter{}, bson.D{{Key: "category", Value: 1}}, 0)
	if err != nil {
		return nil, err
	}

	stats := &models.AchievementStats{
		TotalAchievements: len(all),
		Categories:        map[string]models.CategoryStats{},
		RecentlyCompleted: []models.Achievement{},
	}
	var completed []models.Achievement
	for _, a := range all {
		cat := stats.Categories[a.Category]
		cat.Total++
		if a.IsCompleted {
			cat.Completed++
			completed = append(completed, a)
		}
		stats.Categories[a.Category] = cat
	}
	for name, cat := range stats.Categories {
		cat.Percentage = percent(cat.Completed, cat.Total)
		stats.Categories[name] = cat
	}
	stats.CompletedAchievements = len(completed)
	stats.CompletionPercentage = percent(len(completed), len(all))

	sort.SliceStable(completed, func(i, j int) bool {
		return completedAt(completed[i]).After(completedAt(completed[j]))
	})
	if len(completed) > 5 {
		completed = completed[:5]
	}
	stats.RecentlyCompleted = append(stats.RecentlyCompleted, completed...)
	return stats, nil
}

func completedAt(a models.Achievement) time.Time {
	if a.CompletedDate == nil {
		return time.Time{}
	}
	return *a.CompletedDate
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// Templates

func (s *AchievementService) ListTemplates(ctx context.Context) ([]models.AchievementTemplate, error) {
	return s.templates.GetAllTemplates(ctx)
}

func (s *AchievementService) CreateTemplate(ctx context.Context, t *models.AchievementTemplate) (*models.AchievementTemplate, error) {
	if err := validation.Struct(t); err != nil {
		return nil, err
	}
	return s.templates.CreateTemplate(ctx, t)
}

func (s *AchievementService) UpdateTemplate(ctx context.Context, t *models.AchievementTemplate) (*models.AchievementTemplate, error) {
	if err := validation.Struct(t); err != nil {
		return nil, err
	}
	if err := s.templates.UpdateTemplate(ctx, t); err != nil {
		return nil, err
	}
	return s.templates.GetTemplateByID(ctx, t.ID)
}

func (s *AchievementService) DeleteTemplate(ctx context.Context, id primitive.ObjectID) error {
	return s.templates.DeleteTemplate(ctx, id)
}

// SeedTemplates inserts the default catalog when none exists.
func (s *AchievementService) SeedTemplates(ctx context.Context) (int, error) {
	n, err := s.templates.CountTemplates(ctx)
	if err != nil || n > 0 {
		return 0, err
	}
	defaults := DefaultAchievementTemplates()
	if err := s.templates.InsertTemplates(ctx, defaults); err != nil {
		return 0, err
	}
	logger.Log.WithField("count", len(defaults)).Info("Seeded achievement templates")
	return len(defaults), nil
}

// SeedBadges inserts the default badges when none exist.
func (s *AchievementService) SeedBadges(ctx context.Context) (int, error) {
	n, err := s.badges.CountBadges(ctx)
	if err != nil || n > 0 {
		return 0, err
	}
	defaults := DefaultBadges()
	if err := s.badges.InsertBadges(ctx, defaults); err != nil {
		return 0, err
	}
	logger.Log.WithField("count", len(defaults)).Info("Seeded badges")
	return len(defaults), nil
}

func (s *AchievementService) ListBadges(ctx context.Context) ([]models.Badge, error) {
	return s.badges.ListBadges(ctx)
}
