package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jwtutil "github.com/Dias221467/mindbloom/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const secret = "test-secret"

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func tokenFor(t *testing.T, userID, role string, expiry time.Duration) string {
	t.Helper()
	token, err := jwtutil.GenerateToken(userID, "u@example.com", role, secret, expiry)
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware(t *testing.T) {
	userID := primitive.NewObjectID()
	var seen primitive.ObjectID
	h := AuthMiddleware(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-token", http.StatusUnauthorized},
		{"expired token", "Bearer " + tokenFor(t, userID.Hex(), "user", -time.Minute), http.StatusUnauthorized},
		{"bad subject", "Bearer " + tokenFor(t, "nope", "user", time.Hour), http.StatusUnauthorized},
		{"valid token", "Bearer " + tokenFor(t, userID.Hex(), "user", time.Hour), http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tc.status, rec.Code)
		})
	}
	assert.Equal(t, userID, seen)
}

func TestRequireRole(t *testing.T) {
	h := RequireRole("admin")(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/admin/templates", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	ctx := WithClaims(context.Background(), &jwtutil.Claims{UserID: "u", Role: "user"})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req.WithContext(ctx))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	ctx = WithClaims(context.Background(), &jwtutil.Claims{UserID: "u", Role: "admin"})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req.WithContext(ctx))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRateLimiterPerClient(t *testing.T) {
	rl := NewRateLimiter(2)
	h := rl.Handler(okHandler())

	hit := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/users/login", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, hit("10.0.0.1:1111"))
	assert.Equal(t, http.StatusNoContent, hit("10.0.0.1:2222"))
	assert.Equal(t, http.StatusTooManyRequests, hit("10.0.0.1:3333"))
	assert.Equal(t, http.StatusNoContent, hit("10.0.0.2:1111"))
}

func TestLoggingMiddlewareSetsRequestID(t *testing.T) {
	var inner string
	h := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inner = RequestID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.NotEmpty(t, inner)
	assert.Equal(t, inner, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(RequestIDHeader, "given-id")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "given-id", inner)
}

type fakeActivity struct{ calls []primitive.ObjectID }

func (f *fakeActivity) UpdateLastActive(_ context.Context, id primitive.ObjectID) error {
	f.calls = append(f.calls, id)
	return nil
}

func TestUpdateLastActiveMiddleware(t *testing.T) {
	activity := &fakeActivity{}
	h := UpdateLastActiveMiddleware(activity)(okHandler())

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Empty(t, activity.calls)

	id := primitive.NewObjectID()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithClaims(req.Context(), &jwtutil.Claims{UserID: id.Hex()}))
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, []primitive.ObjectID{id}, activity.calls)
}
