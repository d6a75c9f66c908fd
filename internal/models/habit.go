package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Habit struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID `bson:"user_id" json:"user"`
	Name          string             `bson:"name" json:"name"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	Category      string             `bson:"category,omitempty" json:"category,omitempty"`
	Streak        int                `bson:"streak" json:"streak"`
	LastCompleted *time.Time         `bson:"last_completed,omitempty" json:"lastCompleted"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updatedAt"`
}
