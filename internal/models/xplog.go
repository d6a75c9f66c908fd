package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// XP log actions.
const (
	XPActionJournal     = "journal"
	XPActionHabit       = "habit"
	XPActionChallenge   = "challenge"
	XPActionAchievement = "achievement"
	XPActionOther       = "other"
)

var AllowedXPActions = map[string]struct{}{
	XPActionJournal:     {},
	XPActionHabit:       {},
	XPActionChallenge:   {},
	XPActionAchievement: {},
	XPActionOther:       {},
}

// XPLog is an append-only record of one XP award.
type XPLog struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"user_id" json:"user"`
	Action string             `bson:"action" json:"action"`
	Points int                `bson:"points" json:"points"`
	Date   time.Time          `bson:"date" json:"date"`
}
