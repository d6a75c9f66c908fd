package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Dias221467/mindbloom/internal/gamification"
	"github.com/Dias221467/mindbloom/internal/models"
	"github.com/Dias221467/mindbloom/pkg/apperror"
	"github.com/Dias221467/mindbloom/pkg/email"
	"github.com/Dias221467/mindbloom/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// reminderCooldown keeps the daily job from nagging twice for the same gap.
const reminderCooldown = 20 * time.Hour

type NotificationService struct {
	repo   NotificationStore
	users  UserStore
	mailer *email.Mailer
	now    Clock
}

func NewNotificationService(repo NotificationStore, users UserStore, mailer *email.Mailer) *NotificationService {
	return &NotificationService{
		repo:   repo,
		users:  users,
		mailer: mailer,
		now:    utcNow,
	}
}

// Notify logs a new notification for a user
func (s *NotificationService) Notify(ctx context.Context, userID primitive.ObjectID, notifType, title, message string, targetID *primitive.ObjectID) error {
	notif := &models.Notification{
		UserID:    userID,
		Type:      notifType,
		Title:     title,
		Message:   message,
		Read:      false,
		TargetID:  targetID,
		CreatedAt: s.now(),
	}
	return s.repo.CreateNotification(ctx, notif)
}

// GetUserNotifications returns all live notifications for a user
func (s *NotificationService) GetUserNotifications(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error) {
	return s.repo.GetUserNotifications(ctx, userID)
}

func (s *NotificationService) MarkNotificationAsRead(ctx context.Context, userID, notifID primitive.ObjectID) error {
	return s.repo.MarkAsRead(ctx, userID, notifID)
}

func (s *NotificationService) DeleteNotification(ctx context.Context, userID, notifID primitive.ObjectID) error {
	return s.repo.DeleteNotification(ctx, userID, notifID)
}

// DeleteExpiredNotifications is run hourly by the scheduler.
func (s *NotificationService) DeleteExpiredNotifications(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpiredNotifications(ctx)
}

// SendStreakReminders notifies every user who checked in neither today nor
// yesterday, at most once per cooldown window. Mail is sent as well when SMTP
// is configured. It returns how many users were reminded.
func (s *NotificationService) SendStreakReminders(ctx context.Context) (int, error) {
	now := s.now()
	cutoff := gamification.Day(now).AddDate(0, 0, -1)

	users, err := s.users.ListStaleCheckIns(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch users: %w", err)
	}

	sent := 0
	for _, user := range users {
		existing, err := s.repo.GetLatestNotificationByType(ctx, user.ID, models.NotificationStreakReminder)
		if err != nil && !apperror.Is(err, apperror.NotFound) {
			logger.Log.WithError(err).WithField("user_id", user.ID.Hex()).Warn("Failed to look up last streak reminder")
			continue
		}
		if existing != nil && now.Sub(existing.CreatedAt) < reminderCooldown {
			continue // skip duplicate notification
		}

		message := "Check in today to start a new streak."
		if user.StreakDays > 1 {
			message = fmt.Sprintf("Your %d-day streak is at risk. Check in today to keep it going!", user.StreakDays)
		}
		if err := s.Notify(ctx, user.ID, models.NotificationStreakReminder, "Keep your streak alive", message, nil); err != nil {
			logger.Log.WithError(err).Warnf("Failed to send streak reminder to user %s", user.ID.Hex())
			continue
		}
		sent++

		if s.mailer != nil && s.mailer.Enabled() && user.Email != "" {
			if err := s.mailer.SendEmail(user.Email, "MindBloom streak reminder", message); err != nil {
				logger.Log.WithError(err).WithField("user_id", user.ID.Hex()).Warn("Failed to email streak reminder")
			}
		}
	}

	logger.Log.WithField("count", sent).Info("Streak reminders sent")
	return sent, nil
}
