package services

import (
	"context"
	"time"

	"github.com/Dias221467/mindbloom/internal/models"
	"github.com/Dias221467/mindbloom/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The services depend on these narrow views of the repositories.

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UpdateProfile(ctx context.Context, user *models.User) error
	SaveProgress(ctx context.Context, user *models.User) error
	AddBadge(ctx context.Context, userID, badgeID primitive.ObjectID) error
	UpdateLastActive(ctx context.Context, userID primitive.ObjectID) error
	ListStaleCheckIns(ctx context.Context, cutoff time.Time) ([]models.User, error)
}

type XPLogStore interface {
	CreateXPLog(ctx context.Context, entry *models.XPLog) error
	GetUserXPLogs(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.XPLog, error)
}

type NotificationStore interface {
	CreateNotification(ctx context.Context, notif *models.Notification) error
	GetUserNotifications(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error)
	MarkAsRead(ctx context.Context, userID, id primitive.ObjectID) error
	DeleteNotification(ctx context.Context, userID, id primitive.ObjectID) error
	GetLatestNotificationByType(ctx context.Context, userID primitive.ObjectID, notifType string) (*models.Notification, error)
	DeleteExpiredNotifications(ctx context.Context) (int64, error)
}

type AchievementStore interface {
	CountByUser(ctx context.Context, userID primitive.ObjectID) (int64, error)
	InsertMany(ctx context.Context, achievements []models.Achievement) error
	GetByID(ctx context.Context, userID, id primitive.ObjectID) (*models.Achievement, error)
	FindByTitle(ctx context.Context, userID primitive.ObjectID, title string) (*models.Achievement, error)
	List(ctx context.Context, userID primitive.ObjectID, filter models.AchievementFilter, sort bson.D, limit int64) ([]models.Achievement, error)
	UpdateValue(ctx context.Context, id primitive.ObjectID, value int) error
	MarkCompleted(ctx context.Context, id primitive.ObjectID, at time.Time) (bool, error)
}

type TemplateStore interface {
	CreateTemplate(ctx context.Context, template *models.AchievementTemplate) (*models.AchievementTemplate, error)
	InsertTemplates(ctx context.Context, templates []models.AchievementTemplate) error
	CountTemplates(ctx context.Context) (int64, error)
	GetAllTemplates(ctx context.Context) ([]models.AchievementTemplate, error)
	GetTemplateByID(ctx context.Context, id primitive.ObjectID) (*models.AchievementTemplate, error)
	UpdateTemplate(ctx context.Context, template *models.AchievementTemplate) error
	DeleteTemplate(ctx context.Context, id primitive.ObjectID) error
}

type BadgeStore interface {
	CountBadges(ctx context.Context) (int64, error)
	InsertBadges(ctx context.Context, badges []models.Badge) error
	ListBadges(ctx context.Context) ([]models.Badge, error)
	GetBadgeByTitle(ctx context.Context, title string) (*models.Badge, error)
}

type ChallengeStore interface {
	CreateChallenge(ctx context.Context, ch *models.Challenge) error
	GetChallengeByID(ctx context.Context, id primitive.ObjectID) (*models.Challenge, error)
	GetChallengeByJoinCode(ctx context.Context, code string) (*models.Challenge, error)
	ListChallenges(ctx context.Context, filter models.ChallengeFilter) ([]models.Challenge, int64, error)
	SaveChallenge(ctx context.Context, ch *models.Challenge) error
	DeleteChallenge(ctx context.Context, id primitive.ObjectID) error
}

type JournalStore interface {
	CreateEntry(ctx context.Context, entry *models.JournalEntry) error
	GetEntry(ctx context.Context, userID, id primitive.ObjectID) (*models.JournalEntry, error)
	ListEntries(ctx context.Context, userID primitive.ObjectID, q repository.JournalQuery) ([]models.JournalEntry, int64, error)
	EntryDates(ctx context.Context, userID primitive.ObjectID) ([]time.Time, error)
	UpdateEntry(ctx context.Context, entry *models.JournalEntry) error
	DeleteEntry(ctx context.Context, userID, id primitive.ObjectID) error
	MoodAverages(ctx context.Context, userID primitive.ObjectID, from time.Time) ([]models.MoodAverage, error)
	TopTags(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.TagCount, error)
}

type HabitStore interface {
	CreateHabit(ctx context.Context, habit *models.Habit) error
	ListHabits(ctx context.Context, userID primitive.ObjectID) ([]models.Habit, error)
	GetHabit(ctx context.Context, userID, id primitive.ObjectID) (*models.Habit, error)
	SaveStreak(ctx context.Context, habit *models.Habit) error
	DeleteHabit(ctx context.Context, userID, id primitive.ObjectID) error
}

var (
	_ UserStore         = (*repository.UserRepository)(nil)
	_ XPLogStore        = (*repository.XPLogRepository)(nil)
	_ NotificationStore = (*repository.NotificationRepository)(nil)
	_ AchievementStore  = (*repository.AchievementRepository)(nil)
	_ TemplateStore     = (*repository.TemplateRepository)(nil)
	_ BadgeStore        = (*repository.BadgeRepository)(nil)
	_ ChallengeStore    = (*repository.ChallengeRepository)(nil)
	_ JournalStore      = (*repository.JournalRepository)(nil)
	_ HabitStore        = (*repository.HabitRepository)(nil)
)

// Notifier records an in-app notification for a user.
type Notifier interface {
	Notify(ctx context.Context, userID primitive.ObjectID, kind, title, message string, target *primitive.ObjectID) error
}

// Clock returns the current time; tests pin it.
type Clock func() time.Time

// utcNow is the production clock. Calendar days are bucketed in UTC, the
// zone the driver decodes stored dates in.
func utcNow() time.Time { return time.Now().UTC() }
