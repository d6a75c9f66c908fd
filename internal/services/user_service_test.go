package services

import (
	"context"
	"testing"

	"github.com/Dias221467/mindbloom/internal/models"
	"github.com/Dias221467/mindbloom/pkg/apperror"
	jwtutil "github.com/Dias221467/mindbloom/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func register(t *testing.T, e *testEnv, emailAddr string) *AuthResult {
	t.Helper()
	res, err := e.accounts.RegisterUser(context.Background(), &RegisterInput{
		Username: "bloomer",
		Email:    emailAddr,
		Password: "secret123",
	})
	require.NoError(t, err)
	return res
}

func TestRegisterUser(t *testing.T) {
	e := newTestEnv(t)
	res := register(t, e, "Bloom@Example.com")

	assert.Equal(t, "bloom@example.com", res.User.Email)
	assert.Equal(t, 1, res.User.Level)
	assert.Equal(t, models.RoleUser, res.User.Role)
	assert.NotEqual(t, "secret123", res.User.HashedPassword)

	claims, err := jwtutil.ParseToken(res.Token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, res.User.ID.Hex(), claims.UserID)

	n, err := e.achievements.CountByUser(context.Background(), res.User.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(len(DefaultAchievementTemplates())), n)
}

func TestRegisterUserRejectsDuplicateEmail(t *testing.T) {
	e := newTestEnv(t)
	register(t, e, "bloom@example.com")

	_, err := e.accounts.RegisterUser(context.Background(), &RegisterInput{
		Username: "other",
		Email:    "BLOOM@example.com",
		Password: "secret123",
	})
	assert.True(t, apperror.Is(err, apperror.Conflict))
}

func TestRegisterUserValidation(t *testing.T) {
	e := newTestEnv(t)
	_, err := e.accounts.RegisterUser(context.Background(), &RegisterInput{Username: "x", Email: "nope", Password: "1"})
	assert.True(t, apperror.Is(err, apperror.Validation))
}

func TestLogin(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	register(t, e, "bloom@example.com")

	res, err := e.accounts.Login(ctx, "bloom@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)

	_, err = e.accounts.Login(ctx, "bloom@example.com", "wrong")
	assert.True(t, apperror.Is(err, apperror.Unauthorized))

	_, err = e.accounts.Login(ctx, "nobody@example.com", "secret123")
	assert.True(t, apperror.Is(err, apperror.Unauthorized))
}

func TestUpdateProfileKeepsEmptyFields(t *testing.T) {
	e := newTestEnv(t)
	res := register(t, e, "bloom@example.com")

	user, err := e.accounts.UpdateProfile(context.Background(), res.User.ID, &ProfileInput{FirstName: "Ada"})
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.FirstName)
	assert.Equal(t, "bloomer", user.Username)
}
