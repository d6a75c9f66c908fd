package repository

import (
	"context"
	"time"

	"github.com/Dias221467/mindbloom/internal/models"
	"github.com/Dias221467/mindbloom/pkg/apperror"
	"github.com/Dias221467/mindbloom/pkg/logger"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository handles database operations related to users.
type UserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{
		collection: db.Collection("users"),
	}
}

// CreateUser inserts a new user into the database.
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert user into database")
		return nil, mapError("user", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		logger.Log.Error("Failed to cast inserted ID to ObjectID")
		return nil, &apperror.Error{Kind: apperror.Internal, Msg: "failed to cast inserted ID"}
	}
	user.ID = insertedID

	logger.Log.WithField("user_id", user.ID.Hex()).Info("User inserted successfully")
	return user, nil
}

// GetUserByEmail retrieves a user by email.
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		logger.Log.WithFields(logrus.Fields{
			"email": email,
			"error": err,
		}).Warn("Failed to find user by email")
		return nil, mapError("user", err)
	}
	return &user, nil
}

// GetUserByID retrieves a user by their ID.
func (r *UserRepository) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		logger.Log.WithFields(logrus.Fields{
			"user_id": id.Hex(),
			"error":   err,
		}).Warn("Failed to find user by ID")
		return nil, mapError("user", err)
	}
	return &user, nil
}

// UpdateProfile writes the editable profile fields.
func (r *UserRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"username":   user.Username,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"avatar":     user.Avatar,
		"updated_at": user.UpdatedAt,
	}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": user.ID}, update)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", user.ID.Hex()).Error("Failed to update user profile")
		return mapError("user", err)
	}
	if res.MatchedCount == 0 {
		return apperror.NotFoundf("user not found")
	}
	return nil
}

// SaveProgress writes the gamification counters of user. Callers hold the
// per-user lock so the read-modify-write is not interleaved.
func (r *UserRepository) SaveProgress(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()
	set := bson.M{
		"level":       user.Level,
		"xp":          user.XP,
		"total_xp":    user.TotalXP,
		"streak_days": user.StreakDays,
		"updated_at":  user.UpdatedAt,
	}
	if user.LastCheckIn != nil {
		set["last_check_in"] = user.LastCheckIn
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": set})
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", user.ID.Hex()).Error("Failed to save user progress")
		return mapError("user", err)
	}
	if res.MatchedCount == 0 {
		return apperror.NotFoundf("user not found")
	}
	return nil
}

// AddBadge links a badge to the user; repeated calls are harmless.
func (r *UserRepository) AddBadge(ctx context.Context, userID, badgeID primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": userID},
		bson.M{"$addToSet": bson.M{"badges": badgeID}}, // avoid duplicates
	)
	if err != nil {
		return mapError("user", err)
	}
	return nil
}

// UpdateLastActive stamps the last time the user made an authenticated request.
func (r *UserRepository) UpdateLastActive(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": bson.M{"last_active_at": time.Now()}})
	if err != nil {
		return mapError("user", err)
	}
	return nil
}

// ListStaleCheckIns returns users whose last check-in is before cutoff or who
// never checked in.
func (r *UserRepository) ListStaleCheckIns(ctx context.Context, cutoff time.Time) ([]models.User, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"last_check_in": bson.M{"$lt": cutoff}},
		bson.M{"last_check_in": bson.M{"$exists": false}},
	}}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, mapError("users", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, mapError("users", err)
	}
	return users, nil
}
