package middleware

import (
	"context"
	"net/http"

	"github.com/Dias221467/mindbloom/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LastActiveUpdater stamps a user's last activity.
type LastActiveUpdater interface {
	UpdateLastActive(ctx context.Context, userID primitive.ObjectID) error
}

// UpdateLastActiveMiddleware records activity for authenticated requests. It
// must run after AuthMiddleware.
func UpdateLastActiveMiddleware(users LastActiveUpdater) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID, ok := UserIDFromContext(r.Context()); ok {
				if err := users.UpdateLastActive(r.Context(), userID); err != nil {
					logger.Log.WithError(err).WithField("user_id", userID.Hex()).Debug("Failed to update last active")
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
