package handlers

import (
	"net/http"

	"github.com/Dias221467/mindbloom/internal/models"
	"github.com/Dias221467/mindbloom/pkg/metrics"
	"github.com/Dias221467/mindbloom/pkg/middleware"
	"github.com/gorilla/mux"
)

// Handlers bundles every HTTP handler of the API.
type Handlers struct {
	Users         *UserHandler
	Achievements  *AchievementHandler
	Challenges    *ChallengeHandler
	Journal       *JournalHandler
	Habits        *HabitHandler
	Notifications *NotificationHandler
}

// RouterOptions configures the cross-cutting middleware.
type RouterOptions struct {
	JWTSecret  string
	Limiter    *middleware.RateLimiter
	LastActive middleware.LastActiveUpdater
}

// NewRouter registers every route on a gorilla/mux router.
func NewRouter(h *Handlers, opts RouterOptions) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.LoggingMiddleware)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")
	router.Handle("/metrics", metrics.Handler()).Methods("GET")

	// Public user routes
	public := router.PathPrefix("/users").Subrouter()
	if opts.Limiter != nil {
		public.Use(opts.Limiter.Handler)
	}
	public.HandleFunc("/register", h.Users.RegisterUserHandler).Methods("POST")
	public.HandleFunc("/login", h.Users.LoginUserHandler).Methods("POST")

	protected := func(prefix string) *mux.Router {
		sub := router.PathPrefix(prefix).Subrouter()
		sub.Use(middleware.AuthMiddleware(opts.JWTSecret))
		if opts.LastActive != nil {
			sub.Use(middleware.UpdateLastActiveMiddleware(opts.LastActive))
		}
		return sub
	}

	me := protected("/users/me")
	me.HandleFunc("", h.Users.GetMeHandler).Methods("GET")
	me.HandleFunc("", h.Users.UpdateMeHandler).Methods("PATCH")
	me.HandleFunc("/check-in", h.Users.CheckInHandler).Methods("POST")
	me.HandleFunc("/stats", h.Users.StatsHandler).Methods("GET")
	me.HandleFunc("/xp-history", h.Users.XPHistoryHandler).Methods("GET")

	profiles := protected("/users")
	profiles.HandleFunc("/{id}", h.Users.GetUserHandler).Methods("GET")

	achievements := protected("/achievements")
	achievements.HandleFunc("", h.Achievements.ListHandler).Methods("GET")
	achievements.HandleFunc("/initialize", h.Achievements.InitializeHandler).Methods("POST")
	achievements.HandleFunc("/completed", h.Achievements.CompletedHandler).Methods("GET")
	achievements.HandleFunc("/in-progress", h.Achievements.InProgressHandler).Methods("GET")
	achievements.HandleFunc("/recent", h.Achievements.RecentHandler).Methods("GET")
	achievements.HandleFunc("/stats", h.Achievements.StatsHandler).Methods("GET")
	achievements.HandleFunc("/{id}", h.Achievements.GetHandler).Methods("GET")
	achievements.HandleFunc("/{id}/progress", h.Achievements.UpdateProgressHandler).Methods("PATCH")

	badges := protected("/badges")
	badges.HandleFunc("", h.Achievements.ListBadgesHandler).Methods("GET")

	challenges := protected("/challenges")
	challenges.HandleFunc("", h.Challenges.CreateHandler).Methods("POST")
	challenges.HandleFunc("", h.Challenges.ListHandler).Methods("GET")
	challenges.HandleFunc("/user/active", h.Challenges.ActiveHandler).Methods("GET")
	challenges.HandleFunc("/user/completed", h.Challenges.CompletedHandler).Methods("GET")
	challenges.HandleFunc("/join/{code}", h.Challenges.JoinByCodeHandler).Methods("POST")
	challenges.HandleFunc("/{id}", h.Challenges.GetHandler).Methods("GET")
	challenges.HandleFunc("/{id}", h.Challenges.UpdateHandler).Methods("PUT")
	challenges.HandleFunc("/{id}", h.Challenges.DeleteHandler).Methods("DELETE")
	challenges.HandleFunc("/{id}/join", h.Challenges.JoinHandler).Methods("POST")
	challenges.HandleFunc("/{id}/leave", h.Challenges.LeaveHandler).Methods("POST")
	challenges.HandleFunc("/{id}/invite", h.Challenges.InviteHandler).Methods("POST")
	challenges.HandleFunc("/{id}/check-in", h.Challenges.CheckInHandler).Methods("POST")
	challenges.HandleFunc("/{id}/completed", h.Challenges.CompletionStatusHandler).Methods("GET")
	challenges.HandleFunc("/{id}/tasks/{taskId}/complete", h.Challenges.CompleteTaskHandler).Methods("POST")

	journal := protected("/journal")
	journal.HandleFunc("", h.Journal.CreateHandler).Methods("POST")
	journal.HandleFunc("", h.Journal.ListHandler).Methods("GET")
	journal.HandleFunc("/stats/mood", h.Journal.MoodStatsHandler).Methods("GET")
	journal.HandleFunc("/stats/tags", h.Journal.TagsHandler).Methods("GET")
	journal.HandleFunc("/stats/streak", h.Journal.StreakHandler).Methods("GET")
	journal.HandleFunc("/{id}", h.Journal.GetHandler).Methods("GET")
	journal.HandleFunc("/{id}", h.Journal.UpdateHandler).Methods("PUT")
	journal.HandleFunc("/{id}", h.Journal.DeleteHandler).Methods("DELETE")

	habits := protected("/habits")
	habits.HandleFunc("", h.Habits.ListHandler).Methods("GET")
	habits.HandleFunc("", h.Habits.CreateHandler).Methods("POST")
	habits.HandleFunc("/{id}/complete", h.Habits.CompleteHandler).Methods("POST")
	habits.HandleFunc("/{id}", h.Habits.DeleteHandler).Methods("DELETE")

	notifications := protected("/notifications")
	notifications.HandleFunc("", h.Notifications.GetUserNotificationsHandler).Methods("GET")
	notifications.HandleFunc("/{id}/read", h.Notifications.MarkAsReadHandler).Methods("POST")
	notifications.HandleFunc("/{id}", h.Notifications.DeleteNotificationHandler).Methods("DELETE")

	// Admin routes
	admin := protected("/admin")
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	admin.HandleFunc("/templates", h.Achievements.ListTemplatesHandler).Methods("GET")
	admin.HandleFunc("/templates", h.Achievements.CreateTemplateHandler).Methods("POST")
	admin.HandleFunc("/templates/{id}", h.Achievements.UpdateTemplateHandler).Methods("PUT")
	admin.HandleFunc("/templates/{id}", h.Achievements.DeleteTemplateHandler).Methods("DELETE")

	return router
}
