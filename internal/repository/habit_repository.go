package repository

import (
	"context"
	"time"

	"github.com/Dias221467/mindbloom/internal/models"
	"github.com/Dias221467/mindbloom/pkg/apperror"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type HabitRepository struct {
	collection *mongo.Collection
}

func NewHabitRepository(db *mongo.Database) *HabitRepository {
	return &HabitRepository{
		collection: db.Collection("habits"),
	}
}

func (r *HabitRepository) CreateHabit(ctx context.Context, habit *models.Habit) error {
	habit.CreatedAt = time.Now()
	habit.UpdatedAt = habit.CreatedAt

	res, err := r.collection.InsertOne(ctx, habit)
	if err != nil {
		return mapError("habit", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		habit.ID = id
	}
	return nil
}

func (r *HabitRepository) ListHabits(ctx context.Context, userID primitive.ObjectID) ([]models.Habit, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, mapError("habits", err)
	}
	defer cursor.Close(ctx)

	habits := []models.Habit{}
	if err := cursor.All(ctx, &habits); err != nil {
		return nil, mapError("habits", err)
	}
	return habits, nil
}

func (r *HabitRepository) GetHabit(ctx context.Context, userID, id primitive.ObjectID) (*models.Habit, error) {
	var habit models.Habit
	if err := r.collection.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&habit); err != nil {
		return nil, mapError("habit", err)
	}
	return &habit, nil
}

// SaveStreak persists the streak counters after a completion.
func (r *HabitRepository) SaveStreak(ctx context.Context, habit *models.Habit) error {
	habit.UpdatedAt = time.Now()
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": habit.ID, "user_id": habit.UserID},
		bson.M{"$set": bson.M{"streak": habit.Streak, "last_completed": habit.LastCompleted, "updated_at": habit.UpdatedAt}},
	)
	if err != nil {
		return mapError("habit", err)
	}
	if res.MatchedCount == 0 {
		return apperror.NotFoundf("habit not found")
	}
	return nil
}

func (r *HabitRepository) DeleteHabit(ctx context.Context, userID, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return mapError("habit", err)
	}
	if res.DeletedCount == 0 {
		return apperror.NotFoundf("habit not found")
	}
	return nil
}
