package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Achievement is a per-user progress counter toward a target.
type Achievement struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID  `bson:"user_id" json:"user"`
	Title         string              `bson:"title" json:"title"`
	Description   string              `bson:"description" json:"description"`
	Category      string              `bson:"category" json:"category"`
	Icon          string              `bson:"icon,omitempty" json:"icon,omitempty"`
	Target        int                 `bson:"target" json:"target"`
	CurrentValue  int                 `bson:"current_value" json:"currentValue"`
	IsCompleted   bool                `bson:"is_completed" json:"isCompleted"`
	CompletedDate *time.Time          `bson:"completed_date,omitempty" json:"completedDate"`
	BadgeID       *primitive.ObjectID `bson:"badge_id,omitempty" json:"badge,omitempty"`
	XPReward      int                 `bson:"xp_reward" json:"xpReward"`
	CreatedAt     time.Time           `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time           `bson:"updated_at" json:"updatedAt"`
}

// AchievementTemplate is the catalog entry achievements are instantiated from.
type AchievementTemplate struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title" validate:"required"`
	Description string             `bson:"description" json:"description" validate:"required"`
	Category    string             `bson:"category" json:"category" validate:"required"`
	Icon        string             `bson:"icon,omitempty" json:"icon,omitempty"`
	Target      int                `bson:"target" json:"target" validate:"gt=0"`
	XPReward    int                `bson:"xp_reward" json:"xpReward" validate:"gt=0"`
	BadgeTitle  string             `bson:"badge_title,omitempty" json:"badgeTitle,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
}

// Badge is shared, read-mostly reward catalog data.
type Badge struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Category    string             `bson:"category" json:"category"`
	Icon        string             `bson:"icon,omitempty" json:"icon,omitempty"`
	Rarity      string             `bson:"rarity" json:"rarity"`
	XPReward    int                `bson:"xp_reward" json:"xpReward"`
	IsActive    bool               `bson:"is_active" json:"isActive"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
}

// AchievementFilter narrows a user's achievement list.
type AchievementFilter struct {
	Category  string
	Completed *bool
}

// CategoryStats counts achievements within one category.
type CategoryStats struct {
	Total      int     `json:"total"`
	Completed  int     `json:"completed"`
	Percentage float64 `json:"percentage"`
}

// AchievementStats is the summary returned by the stats endpoint.
type AchievementStats struct {
	TotalAchievements     int                      `json:"totalAchievements"`
	CompletedAchievements int                      `json:"completedAchievements"`
	CompletionPercentage  float64                  `json:"completionPercentage"`
	Categories            map[string]CategoryStats `json:"categories"`
	RecentlyCompleted     []Achievement            `json:"recentlyCompleted"`
}
