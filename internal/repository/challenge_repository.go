package repository

import (
	"context"
	"regexp"
	"time"

	"github.com/Dias221467/mindbloom/internal/models"
	"github.com/Dias221467/mindbloom/pkg/apperror"
	"github.com/Dias221467/mindbloom/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ChallengeRepository handles challenges and their embedded participants.
type ChallengeRepository struct {
	collection *mongo.Collection
}

func NewChallengeRepository(db *mongo.Database) *ChallengeRepository {
	return &ChallengeRepository{
		collection: db.Collection("challenges"),
	}
}

// CreateChallenge inserts the challenge. A join code collision surfaces as a
// Conflict error so the caller can draw a new code.
func (r *ChallengeRepository) CreateChallenge(ctx context.Context, ch *models.Challenge) error {
	ch.CreatedAt = time.Now()
	ch.UpdatedAt = ch.CreatedAt

	result, err := r.collection.InsertOne(ctx, ch)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert challenge")
		return mapError("challenge", err)
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return &apperror.Error{Kind: apperror.Internal, Msg: "failed to cast inserted ID"}
	}
	ch.ID = insertedID

	logger.Log.WithField("challenge_id", ch.ID.Hex()).Info("Challenge created successfully")
	return nil
}

func (r *ChallengeRepository) GetChallengeByID(ctx context.Context, id primitive.ObjectID) (*models.Challenge, error) {
	var ch models.Challenge
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&ch); err != nil {
		return nil, mapError("challenge", err)
	}
	return &ch, nil
}

func (r *ChallengeRepository) GetChallengeByJoinCode(ctx context.Context, code string) (*models.Challenge, error) {
	var ch models.Challenge
	if err := r.collection.FindOne(ctx, bson.M{"join_code": code}).Decode(&ch); err != nil {
		return nil, mapError("challenge", err)
	}
	return &ch, nil
}

// ListChallenges returns one page of challenges matching filter and the total
// number of matches.
func (r *ChallengeRepository) ListChallenges(ctx context.Context, filter models.ChallengeFilter) ([]models.Challenge, int64, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.PublicOnly {
		query["is_private"] = false
	}
	if filter.ActiveOnly {
		query["is_active"] = true
		query["end_date"] = bson.M{"$gte": time.Now()}
	}
	if filter.JoinedBy != nil {
		query["participants.user_id"] = *filter.JoinedBy
	}
	if filter.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"title": pattern},
			bson.M{"description": pattern},
		}
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, mapError("challenges", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}
	if filter.Skip > 0 {
		opts.SetSkip(filter.Skip)
	}

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, mapError("challenges", err)
	}
	defer cursor.Close(ctx)

	challenges := []models.Challenge{}
	if err := cursor.All(ctx, &challenges); err != nil {
		return nil, 0, mapError("challenges", err)
	}
	return challenges, total, nil
}

// SaveChallenge replaces the stored document. Callers hold the per-challenge lock.
func (r *ChallengeRepository) SaveChallenge(ctx context.Context, ch *models.Challenge) error {
	ch.UpdatedAt = time.Now()
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": ch.ID}, ch)
	if err != nil {
		logger.Log.WithError(err).WithField("challenge_id", ch.ID.Hex()).Error("Failed to save challenge")
		return mapError("challenge", err)
	}
	if res.MatchedCount == 0 {
		return apperror.NotFoundf("challenge not found")
	}
	return nil
}

func (r *ChallengeRepository) DeleteChallenge(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapError("challenge", err)
	}
	if res.DeletedCount == 0 {
		return apperror.NotFoundf("challenge not found")
	}
	logger.Log.WithField("challenge_id", id.Hex()).Info("Challenge deleted successfully")
	return nil
}
