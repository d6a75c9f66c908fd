// Package app wires configuration, storage and services together for the
// server and the operator CLI.
package app

import (
	"context"
	"fmt"

	"github.com/Dias221467/mindbloom/internal/config"
	"github.com/Dias221467/mindbloom/internal/database"
	"github.com/Dias221467/mindbloom/internal/gamification"
	"github.com/Dias221467/mindbloom/internal/repository"
	"github.com/Dias221467/mindbloom/internal/services"
	"github.com/Dias221467/mindbloom/pkg/email"
	"github.com/Dias221467/mindbloom/pkg/lock"
	"github.com/Dias221467/mindbloom/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// App holds the long-lived dependencies of a process.
type App struct {
	Config *config.Config

	Mongo *mongo.Client
	Redis *redis.Client

	UserRepo      *repository.UserRepository
	Users         *services.UserService
	XP            *services.XPService
	Achievements  *services.AchievementService
	Challenges    *services.ChallengeService
	Journal       *services.JournalService
	Habits        *services.HabitService
	Notifications *services.NotificationService
	Game          *services.GamificationService
}

// New connects to MongoDB (and Redis when configured) and builds every service.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	client, db, err := database.Connect(ctx, cfg.MongoURI, cfg.MongoDB, cfg.DBTimeout)
	if err != nil {
		return nil, err
	}
	if err := database.EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}

	a := &App{Config: cfg, Mongo: client}

	var locker lock.Locker = lock.NewMemoryLocker()
	if cfg.RedisAddr != "" {
		a.Redis = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		if err := a.Redis.Ping(ctx).Err(); err != nil {
			a.Close(context.Background())
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		locker = lock.NewRedisLocker(a.Redis, cfg.LockTTL)
		logger.Log.WithField("addr", cfg.RedisAddr).Info("Using Redis locks")
	}

	// --- Repositories ---
	userRepo := repository.NewUserRepository(db)
	xpLogRepo := repository.NewXPLogRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	achievementRepo := repository.NewAchievementRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	badgeRepo := repository.NewBadgeRepository(db)
	challengeRepo := repository.NewChallengeRepository(db)
	journalRepo := repository.NewJournalRepository(db)
	habitRepo := repository.NewHabitRepository(db)

	// --- Services ---
	mailer := &email.Mailer{Host: cfg.SMTPHost, Port: cfg.SMTPPort, Sender: cfg.SMTPSender, Password: cfg.SMTPPassword}
	a.UserRepo = userRepo
	a.Notifications = services.NewNotificationService(notificationRepo, userRepo, mailer)
	a.XP = services.NewXPService(userRepo, xpLogRepo, achievementRepo, a.Notifications, locker,
		gamification.LinearPolicy{Base: cfg.XPBase},
		gamification.ExponentialPolicy{Base: cfg.XPBase, Growth: cfg.XPGrowth})
	a.Achievements = services.NewAchievementService(achievementRepo, templateRepo, badgeRepo, userRepo, a.XP, a.Notifications, locker)
	a.Users = services.NewUserService(userRepo, a.Achievements, cfg.JWTSecret, cfg.TokenExpiry)
	a.Challenges = services.NewChallengeService(challengeRepo, userRepo, a.Notifications, locker)
	a.Journal = services.NewJournalService(journalRepo)
	a.Habits = services.NewHabitService(habitRepo, locker)
	a.Game = services.NewGamificationService(a.XP, a.Achievements, a.Challenges, a.Journal, a.Habits)
	return a, nil
}

// Seed inserts the default badge and achievement catalogs when empty.
func (a *App) Seed(ctx context.Context) error {
	badges, err := a.Achievements.SeedBadges(ctx)
	if err != nil {
		return fmt.Errorf("seed badges: %w", err)
	}
	templates, err := a.Achievements.SeedTemplates(ctx)
	if err != nil {
		return fmt.Errorf("seed templates: %w", err)
	}
	logger.Log.WithField("badges", badges).WithField("templates", templates).Info("Catalogs seeded")
	return nil
}

// Close releases the database connections.
func (a *App) Close(ctx context.Context) {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			logger.Log.WithError(err).Warn("Failed to close Redis client")
		}
	}
	if err := a.Mongo.Disconnect(ctx); err != nil {
		logger.Log.WithError(err).Warn("Failed to disconnect from MongoDB")
	}
}
