package scheduler

import (
	"context"
	"time"

	"github.com/Dias221467/mindbloom/pkg/logger"
	"github.com/robfig/cron/v3"
)

// Cron specs for the background jobs.
const (
	StreakReminderSpec      = "0 18 * * *"
	NotificationCleanupSpec = "@hourly"
)

// jobTimeout bounds a single job run.
const jobTimeout = 5 * time.Minute

// NotificationJobs is the work the scheduler drives.
type NotificationJobs interface {
	SendStreakReminders(ctx context.Context) (int, error)
	DeleteExpiredNotifications(ctx context.Context) (int64, error)
}

// StartNotificationCronJobs registers the reminder and cleanup jobs and starts
// the scheduler. Callers stop it with Stop().
func StartNotificationCronJobs(jobs NotificationJobs) (*cron.Cron, error) {
	c := cron.New()

	// Streak reminders for users who did not check in yesterday or today
	if _, err := c.AddFunc(StreakReminderSpec, func() { RunStreakReminders(jobs) }); err != nil {
		return nil, err
	}

	// Expired notifications
	if _, err := c.AddFunc(NotificationCleanupSpec, func() { RunNotificationCleanup(jobs) }); err != nil {
		return nil, err
	}

	c.Start()
	logger.Log.Info("Notification cron jobs started")
	return c, nil
}

// RunStreakReminders executes one reminder pass.
func RunStreakReminders(jobs NotificationJobs) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	sent, err := jobs.SendStreakReminders(ctx)
	if err != nil {
		logger.Log.WithError(err).Error("SendStreakReminders failed")
		return
	}
	logger.Log.WithField("sent", sent).Info("Streak reminder job finished")
}

// RunNotificationCleanup executes one cleanup pass.
func RunNotificationCleanup(jobs NotificationJobs) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	deleted, err := jobs.DeleteExpiredNotifications(ctx)
	if err != nil {
		logger.Log.WithError(err).Error("DeleteExpiredNotifications failed")
		return
	}
	if deleted > 0 {
		logger.Log.WithField("deleted", deleted).Info("Expired notifications removed")
	}
}
