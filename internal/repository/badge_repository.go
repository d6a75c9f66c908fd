package repository

import (
	"context"
	"time"

	"github.com/Dias221467/mindbloom/internal/models"
	"github.com/Dias221467/mindbloom/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BadgeRepository stores the shared badge catalog.
type BadgeRepository struct {
	collection *mongo.Collection
}

func NewBadgeRepository(db *mongo.Database) *BadgeRepository {
	return &BadgeRepository{
		collection: db.Collection("badges"),
	}
}

func (r *BadgeRepository) CountBadges(ctx context.Context) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, mapError("badges", err)
	}
	return n, nil
}

func (r *BadgeRepository) InsertBadges(ctx context.Context, badges []models.Badge) error {
	docs := make([]interface{}, 0, len(badges))
	now := time.Now()
	for i := range badges {
		badges[i].CreatedAt = now
		docs = append(docs, badges[i])
	}
	if len(docs) == 0 {
		return nil
	}
	if _, err := r.collection.InsertMany(ctx, docs); err != nil {
		logger.Log.WithError(err).Error("Failed to seed badges")
		return mapError("badge", err)
	}
	return nil
}

func (r *BadgeRepository) ListBadges(ctx context.Context) ([]models.Badge, error) {
	opts := options.Find().SetSort(bson.D{{Key: "category", Value: 1}, {Key: "title", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"is_active": true}, opts)
	if err != nil {
		return nil, mapError("badges", err)
	}
	defer cursor.Close(ctx)

	badges := []models.Badge{}
	if err := cursor.All(ctx, &badges); err != nil {
		return nil, mapError("badges", err)
	}
	return badges, nil
}

func (r *BadgeRepository) GetBadgeByTitle(ctx context.Context, title string) (*models.Badge, error) {
	var badge models.Badge
	if err := r.collection.FindOne(ctx, bson.M{"title": title}).Decode(&badge); err != nil {
		return nil, mapError("badge", err)
	}
	return &badge, nil
}
