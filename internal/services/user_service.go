package services

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Dias221467/mindbloom/internal/models"
	"github.com/Dias221467/mindbloom/pkg/apperror"
	jwtutil "github.com/Dias221467/mindbloom/pkg/jwt"
	"github.com/Dias221467/mindbloom/pkg/logger"
	"github.com/Dias221467/mindbloom/pkg/validation"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RegisterInput is the registration payload.
type RegisterInput struct {
	Username  string `json:"username" validate:"required,min=3,max=30"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6,max=72"`
	FirstName string `json:"firstName" validate:"max=50"`
	LastName  string `json:"lastName" validate:"max=50"`
}

// ProfileInput holds the editable profile fields.
type ProfileInput struct {
	Username  string `json:"username" validate:"omitempty,min=3,max=30"`
	FirstName string `json:"firstName" validate:"max=50"`
	LastName  string `json:"lastName" validate:"max=50"`
	Avatar    string `json:"avatar" validate:"omitempty,max=500"`
}

// AuthResult is returned by register and login.
type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// AchievementInitializer creates a new user's achievements.
type AchievementInitializer interface {
	Initialize(ctx context.Context, userID primitive.ObjectID) ([]models.Achievement, error)
}

// UserService encapsulates the business logic for user operations.
type UserService struct {
	repo         UserStore
	achievements AchievementInitializer
	jwtSecret    string
	tokenExpiry  time.Duration
}

// NewUserService creates a new instance of UserService.
func NewUserService(repo UserStore, achievements AchievementInitializer, jwtSecret string, tokenExpiry time.Duration) *UserService {
	return &UserService{
		repo:         repo,
		achievements: achievements,
		jwtSecret:    jwtSecret,
		tokenExpiry:  tokenExpiry,
	}
}

// RegisterUser creates an account at level 1 with the default achievements.
func (s *UserService) RegisterUser(ctx context.Context, in *RegisterInput) (*AuthResult, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	emailAddr := strings.ToLower(strings.TrimSpace(in.Email))

	// Check if the email is already registered
	existing, err := s.repo.GetUserByEmail(ctx, emailAddr)
	if err != nil && !apperror.Is(err, apperror.NotFound) {
		return nil, err
	}
	if existing != nil {
		logger.Log.WithField("email", emailAddr).Warn("Email already in use")
		return nil, apperror.Conflictf("email already in use")
	}

	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.WithError(err).Error("Password hashing failed")
		return nil, &apperror.Error{Kind: apperror.Internal, Msg: "failed to hash password", Err: err}
	}

	user := &models.User{
		Username:       strings.TrimSpace(in.Username),
		Email:          emailAddr,
		HashedPassword: string(hashedPwd),
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Role:           models.RoleUser,
		Level:          1,
	}
	created, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		logger.Log.WithError(err).Error("User registration failed")
		return nil, err
	}

	if s.achievements != nil {
		if _, err := s.achievements.Initialize(ctx, created.ID); err != nil {
			logger.Log.WithError(err).WithField("user_id", created.ID.Hex()).Warn("Failed to create default achievements")
		}
	}

	token, err := s.issueToken(created)
	if err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"user_id": created.ID.Hex(),
		"role":    created.Role,
	}).Info("User registered successfully")
	return &AuthResult{Token: token, User: created}, nil
}

// Login verifies the credentials and issues a token.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.repo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if apperror.Is(err, apperror.NotFound) {
		return nil, apperror.Unauthorizedf("invalid email or password")
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		logger.Log.WithField("email", email).Warn("Invalid credentials")
		return nil, apperror.Unauthorizedf("invalid email or password")
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, err
	}
	logger.Log.WithField("user_id", user.ID.Hex()).Info("User authenticated successfully")
	return &AuthResult{Token: token, User: user}, nil
}

func (s *UserService) issueToken(user *models.User) (string, error) {
	token, err := jwtutil.GenerateToken(user.ID.Hex(), user.Email, user.Role, s.jwtSecret, s.tokenExpiry)
	if err != nil {
		return "", &apperror.Error{Kind: apperror.Internal, Msg: "failed to generate token", Err: err}
	}
	return token, nil
}

// GetUser retrieves a user by their ID.
func (s *UserService) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

// UpdateProfile changes the editable profile fields; empty fields keep their value.
func (s *UserService) UpdateProfile(ctx context.Context, id primitive.ObjectID, in *ProfileInput) (*models.User, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Username != "" {
		user.Username = strings.TrimSpace(in.Username)
	}
	if in.FirstName != "" {
		user.FirstName = in.FirstName
	}
	if in.LastName != "" {
		user.LastName = in.LastName
	}
	if in.Avatar != "" {
		user.Avatar = in.Avatar
	}
	if err := s.repo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateLastActive stamps the user's activity time.
func (s *UserService) UpdateLastActive(ctx context.Context, id primitive.ObjectID) error {
	return s.repo.UpdateLastActive(ctx, id)
}
