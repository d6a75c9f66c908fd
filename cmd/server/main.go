package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dias221467/mindbloom/internal/app"
	"github.com/Dias221467/mindbloom/internal/config"
	"github.com/Dias221467/mindbloom/internal/handlers"
	"github.com/Dias221467/mindbloom/internal/scheduler"
	"github.com/Dias221467/mindbloom/pkg/logger"
	"github.com/Dias221467/mindbloom/pkg/middleware"
	"github.com/rs/cors"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger(logger.Options{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
	})
	logger.Log.Info("Logger initialized")

	if cfg.JWTSecret == "" {
		logger.Log.Fatal("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		logger.Log.WithError(err).Fatal("Startup failed")
	}
	defer a.Close(context.Background())

	if err := a.Seed(ctx); err != nil {
		logger.Log.WithError(err).Fatal("Seeding failed")
	}

	// --- Handlers ---
	router := handlers.NewRouter(&handlers.Handlers{
		Users:         handlers.NewUserHandler(a.Users, a.XP, a.Game),
		Achievements:  handlers.NewAchievementHandler(a.Achievements),
		Challenges:    handlers.NewChallengeHandler(a.Challenges, a.Game),
		Journal:       handlers.NewJournalHandler(a.Journal, a.Game),
		Habits:        handlers.NewHabitHandler(a.Habits, a.Game),
		Notifications: handlers.NewNotificationHandler(a.Notifications),
	}, handlers.RouterOptions{
		JWTSecret:  cfg.JWTSecret,
		Limiter:    middleware.NewRateLimiter(cfg.RateLimitPerMinute),
		LastActive: a.Users,
	})

	jobs, err := scheduler.StartNotificationCronJobs(a.Notifications)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to start cron jobs")
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader, "Retry-After"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           c.Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.WithField("port", cfg.Port).Info("Server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.WithError(err).Fatal("HTTP server failed")
		}
	}()

	<-ctx.Done()
	logger.Log.Info("Shutting down")

	<-jobs.Stop().Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.WithError(err).Error("Graceful shutdown failed")
	}
}
