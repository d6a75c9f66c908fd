package services

import (
	"context"

	"github.com/Dias221467/mindbloom/internal/gamification"
	"github.com/Dias221467/mindbloom/internal/models"
	"github.com/Dias221467/mindbloom/pkg/apperror"
	"github.com/Dias221467/mindbloom/pkg/lock"
	"github.com/Dias221467/mindbloom/pkg/metrics"
	"github.com/Dias221467/mindbloom/pkg/validation"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type HabitInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
	Category    string `json:"category" validate:"max=40"`
}

type HabitService struct {
	repo   HabitStore
	locker lock.Locker
	now    Clock
}

func NewHabitService(repo HabitStore, locker lock.Locker) *HabitService {
	return &HabitService{repo: repo, locker: locker, now: utcNow}
}

func (s *HabitService) List(ctx context.Context, userID primitive.ObjectID) ([]models.Habit, error) {
	return s.repo.ListHabits(ctx, userID)
}

func (s *HabitService) Create(ctx context.Context, userID primitive.ObjectID, in *HabitInput) (*models.Habit, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	habit := &models.Habit{
		UserID:      userID,
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
	}
	if err := s.repo.CreateHabit(ctx, habit); err != nil {
		return nil, err
	}
	return habit, nil
}

// Complete marks the habit done today and advances its calendar-day streak.
// A second completion on the same day is a Conflict.
func (s *HabitService) Complete(ctx context.Context, userID, id primitive.ObjectID) (*models.Habit, error) {
	var habit *models.Habit
	err := lock.WithLock(ctx, s.locker, lock.HabitKey(id.Hex()), func() error {
		h, err := s.repo.GetHabit(ctx, userID, id)
		if err != nil {
			return err
		}
		now := s.now()
		streak, newDay := gamification.NextDailyStreak(h.Streak, h.LastCompleted, now)
		if !newDay {
			return apperror.Conflictf("habit already completed today")
		}
		h.Streak = streak
		h.LastCompleted = &now
		if err := s.repo.SaveStreak(ctx, h); err != nil {
			return err
		}
		habit = h
		return nil
	})
	metrics.RecordCheckIn("habit", err == nil)
	if err != nil {
		return nil, err
	}
	return habit, nil
}

func (s *HabitService) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	return s.repo.DeleteHabit(ctx, userID, id)
}
