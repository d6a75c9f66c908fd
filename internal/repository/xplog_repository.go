package repository

import (
	"context"
	"time"

	"github.com/Dias221467/mindbloom/internal/models"
	"github.com/Dias221467/mindbloom/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// XPLogRepository stores the append-only XP ledger.
type XPLogRepository struct {
	collection *mongo.Collection
}

func NewXPLogRepository(db *mongo.Database) *XPLogRepository {
	return &XPLogRepository{
		collection: db.Collection("xp_logs"),
	}
}

// CreateXPLog inserts a new ledger entry
func (r *XPLogRepository) CreateXPLog(ctx context.Context, entry *models.XPLog) error {
	if entry.Date.IsZero() {
		entry.Date = time.Now()
	}
	res, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert xp log")
		return mapError("xp log", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		entry.ID = id
	}
	return nil
}

// GetUserXPLogs fetches the most recent ledger entries of a user
func (r *XPLogRepository) GetUserXPLogs(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.XPLog, error) {
	filter := bson.M{"user_id": userID}
	sort := bson.D{{Key: "date", Value: -1}}

	opts := options.Find().SetSort(sort).SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, mapError("xp logs", err)
	}
	defer cursor.Close(ctx)

	logs := []models.XPLog{}
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, mapError("xp logs", err)
	}
	return logs, nil
}
