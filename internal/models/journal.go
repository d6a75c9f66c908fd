package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JournalEntry is a mood-rated free text entry; it drives the journal streak.
type JournalEntry struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"user_id" json:"user"`
	Date       time.Time          `bson:"date" json:"date"`
	Mood       int                `bson:"mood" json:"mood"`
	Content    string             `bson:"content" json:"content"`
	Prompt     string             `bson:"prompt,omitempty" json:"prompt,omitempty"`
	Tags       []string           `bson:"tags" json:"tags"`
	Gratitude  []string           `bson:"gratitude" json:"gratitude"`
	Activities []string           `bson:"activities" json:"activities"`
	IsPrivate  bool               `bson:"is_private" json:"isPrivate"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updatedAt"`
}

type MoodAverage struct {
	Date        string  `bson:"_id" json:"date"`
	AverageMood float64 `bson:"average_mood" json:"averageMood"`
	Count       int     `bson:"count" json:"count"`
}

type TagCount struct {
	Tag   string `bson:"_id" json:"tag"`
	Count int    `bson:"count" json:"count"`
}
