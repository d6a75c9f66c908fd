package repository

import (
	"context"
	"time"

	"github.com/Dias221467/mindbloom/internal/models"
	"github.com/Dias221467/mindbloom/pkg/logger"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AchievementRepository handles the per-user achievement documents.
type AchievementRepository struct {
	collection *mongo.Collection
}

func NewAchievementRepository(db *mongo.Database) *AchievementRepository {
	return &AchievementRepository{
		collection: db.Collection("achievements"),
	}
}

func (r *AchievementRepository) CountByUser(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, mapError("achievements", err)
	}
	return n, nil
}

// InsertMany creates the given achievements and fills in their IDs.
func (r *AchievementRepository) InsertMany(ctx context.Context, achievements []models.Achievement) error {
	if len(achievements) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(achievements))
	for i := range achievements {
		achievements[i].ID = primitive.NewObjectID()
		docs = append(docs, achievements[i])
	}
	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		logger.Log.WithError(err).Error("Failed to insert achievements")
		return mapError("achievement", err)
	}
	return nil
}

// GetByID returns the achievement only if it belongs to userID.
func (r *AchievementRepository) GetByID(ctx context.Context, userID, id primitive.ObjectID) (*models.Achievement, error) {
	var a models.Achievement
	if err := r.collection.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&a); err != nil {
		return nil, mapError("achievement", err)
	}
	return &a, nil
}

// FindByTitle returns the user's achievement with the given title.
func (r *AchievementRepository) FindByTitle(ctx context.Context, userID primitive.ObjectID, title string) (*models.Achievement, error) {
	var a models.Achievement
	if err := r.collection.FindOne(ctx, bson.M{"user_id": userID, "title": title}).Decode(&a); err != nil {
		return nil, mapError("achievement", err)
	}
	return &a, nil
}

// List returns the user's achievements. sort follows the driver's bson.D form.
func (r *AchievementRepository) List(ctx context.Context, userID primitive.ObjectID, filter models.AchievementFilter, sort bson.D, limit int64) ([]models.Achievement, error) {
	query := bson.M{"user_id": userID}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Completed != nil {
		query["is_completed"] = *filter.Completed
	}

	opts := options.Find().SetSort(sort)
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, mapError("achievements", err)
	}
	defer cursor.Close(ctx)

	achievements := []models.Achievement{}
	if err := cursor.All(ctx, &achievements); err != nil {
		return nil, mapError("achievements", err)
	}
	return achievements, nil
}

// UpdateValue persists a new current value for an open achievement. The
// is_completed filter keeps completed achievements frozen.
func (r *AchievementRepository) UpdateValue(ctx context.Context, id primitive.ObjectID, value int) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "is_completed": false},
		bson.M{"$set": bson.M{"current_value": value, "updated_at": time.Now()}},
	)
	if err != nil {
		logger.Log.WithError(err).WithField("achievement_id", id.Hex()).Error("Failed to update achievement progress")
		return mapError("achievement", err)
	}
	return nil
}

// MarkCompleted flips is_completed from false to true. It reports false when
// another writer already completed the achievement, so the reward is only
// granted by whoever wins this update.
func (r *AchievementRepository) MarkCompleted(ctx context.Context, id primitive.ObjectID, at time.Time) (bool, error) {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "is_completed": false},
		bson.M{"$set": bson.M{"is_completed": true, "completed_date": at, "updated_at": at}},
	)
	if err != nil {
		return false, mapError("achievement", err)
	}
	if res.ModifiedCount == 0 {
		logger.Log.WithFields(logrus.Fields{"achievement_id": id.Hex()}).Debug("Achievement already completed")
		return false, nil
	}
	return true, nil
}
