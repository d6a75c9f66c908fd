package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mindbloom",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mindbloom",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "route"},
	)

	xpAwarded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mindbloom",
			Subsystem: "gamification",
			Name:      "xp_awarded_total",
			Help:      "XP credited to users, by action.",
		},
		[]string{"action"},
	)

	levelUps = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "mindbloom",
			Subsystem: "gamification",
			Name:      "level_ups_total",
			Help:      "Levels gained across all users.",
		},
	)

	achievementsCompleted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mindbloom",
			Subsystem: "gamification",
			Name:      "achievements_completed_total",
			Help:      "Achievements that crossed their target.",
		},
		[]string{"category"},
	)

	checkIns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mindbloom",
			Subsystem: "gamification",
			Name:      "check_ins_total",
			Help:      "Accepted and rejected check-ins, by kind.",
		},
		[]string{"kind", "result"},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		httpRequests,
		httpDuration,
		xpAwarded,
		levelUps,
		achievementsCompleted,
		checkIns,
	)
}

// Handler exposes the registry in Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func RecordXPAward(action string, points, levelsGained int) {
	xpAwarded.WithLabelValues(action).Add(float64(points))
	if levelsGained > 0 {
		levelUps.Add(float64(levelsGained))
	}
}

func RecordAchievementCompleted(category string) {
	achievementsCompleted.WithLabelValues(category).Inc()
}

// RecordCheckIn counts a daily ("user") or challenge check-in attempt.
func RecordCheckIn(kind string, accepted bool) {
	result := "accepted"
	if !accepted {
		result = "rejected"
	}
	checkIns.WithLabelValues(kind, result).Inc()
}
