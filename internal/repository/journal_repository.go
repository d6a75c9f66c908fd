package repository

import (
	"context"
	"time"

	"github.com/Dias221467/mindbloom/internal/models"
	"github.com/Dias221467/mindbloom/pkg/apperror"
	"github.com/Dias221467/mindbloom/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// JournalRepository handles journal entries and their aggregations.
type JournalRepository struct {
	collection *mongo.Collection
}

func NewJournalRepository(db *mongo.Database) *JournalRepository {
	return &JournalRepository{
		collection: db.Collection("journals"),
	}
}

// JournalQuery selects a user's entries within an optional date range.
type JournalQuery struct {
	From  *time.Time
	To    *time.Time
	Limit int64
	Skip  int64
}

func (r *JournalRepository) CreateEntry(ctx context.Context, entry *models.JournalEntry) error {
	entry.CreatedAt = time.Now()
	entry.UpdatedAt = entry.CreatedAt
	if entry.Date.IsZero() {
		entry.Date = entry.CreatedAt
	}

	res, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert journal entry")
		return mapError("journal entry", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		entry.ID = id
	}
	return nil
}

func (r *JournalRepository) GetEntry(ctx context.Context, userID, id primitive.ObjectID) (*models.JournalEntry, error) {
	var entry models.JournalEntry
	if err := r.collection.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&entry); err != nil {
		return nil, mapError("journal entry", err)
	}
	return &entry, nil
}

func dateRange(from, to *time.Time) bson.M {
	r := bson.M{}
	if from != nil {
		r["$gte"] = *from
	}
	if to != nil {
		r["$lte"] = *to
	}
	return r
}

// ListEntries returns entries newest first plus the total number of matches.
func (r *JournalRepository) ListEntries(ctx context.Context, userID primitive.ObjectID, q JournalQuery) ([]models.JournalEntry, int64, error) {
	filter := bson.M{"user_id": userID}
	if rng := dateRange(q.From, q.To); len(rng) > 0 {
		filter["date"] = rng
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, mapError("journal entries", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}
	if q.Skip > 0 {
		opts.SetSkip(q.Skip)
	}
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, mapError("journal entries", err)
	}
	defer cursor.Close(ctx)

	entries := []models.JournalEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, 0, mapError("journal entries", err)
	}
	return entries, total, nil
}

// EntryDates returns the date of every entry of the user, oldest first.
func (r *JournalRepository) EntryDates(ctx context.Context, userID primitive.ObjectID) ([]time.Time, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: 1}}).
		SetProjection(bson.M{"date": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, mapError("journal entries", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Date time.Time `bson:"date"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, mapError("journal entries", err)
	}
	dates := make([]time.Time, 0, len(rows))
	for _, row := range rows {
		dates = append(dates, row.Date)
	}
	return dates, nil
}

func (r *JournalRepository) UpdateEntry(ctx context.Context, entry *models.JournalEntry) error {
	entry.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"mood":       entry.Mood,
		"content":    entry.Content,
		"prompt":     entry.Prompt,
		"tags":       entry.Tags,
		"gratitude":  entry.Gratitude,
		"activities": entry.Activities,
		"is_private": entry.IsPrivate,
		"updated_at": entry.UpdatedAt,
	}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": entry.ID, "user_id": entry.UserID}, update)
	if err != nil {
		return mapError("journal entry", err)
	}
	if res.MatchedCount == 0 {
		return apperror.NotFoundf("journal entry not found")
	}
	return nil
}

func (r *JournalRepository) DeleteEntry(ctx context.Context, userID, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return mapError("journal entry", err)
	}
	if res.DeletedCount == 0 {
		return apperror.NotFoundf("journal entry not found")
	}
	return nil
}

// MoodAverages groups entries since from by calendar day (UTC) and averages mood.
func (r *JournalRepository) MoodAverages(ctx context.Context, userID primitive.ObjectID, from time.Time) ([]models.MoodAverage, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID, "date": bson.M{"$gte": from}}}},
		{{Key: "$group", Value: bson.M{
			"_id":          bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$date"}},
			"average_mood": bson.M{"$avg": "$mood"},
			"count":        bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, mapError("mood stats", err)
	}
	defer cursor.Close(ctx)

	stats := []models.MoodAverage{}
	if err := cursor.All(ctx, &stats); err != nil {
		return nil, mapError("mood stats", err)
	}
	return stats, nil
}

// TopTags ranks the user's tags by frequency.
func (r *JournalRepository) TopTags(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.TagCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID}}},
		{{Key: "$unwind", Value: "$tags"}},
		{{Key: "$group", Value: bson.M{"_id": "$tags", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: limit}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, mapError("tag stats", err)
	}
	defer cursor.Close(ctx)

	tags := []models.TagCount{}
	if err := cursor.All(ctx, &tags); err != nil {
		return nil, mapError("tag stats", err)
	}
	return tags, nil
}
