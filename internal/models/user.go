package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a MindBloom account and its gamification counters.
type User struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Username       string               `bson:"username" json:"username"`
	Email          string               `bson:"email" json:"email"`
	HashedPassword string               `bson:"hashed_password" json:"-"`
	FirstName      string               `bson:"first_name,omitempty" json:"firstName,omitempty"`
	LastName       string               `bson:"last_name,omitempty" json:"lastName,omitempty"`
	Avatar         string               `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Role           string               `bson:"role" json:"role"`
	Level          int                  `bson:"level" json:"level"`
	XP             int                  `bson:"xp" json:"xp"`
	TotalXP        int                  `bson:"total_xp" json:"totalXp"`
	StreakDays     int                  `bson:"streak_days" json:"streakDays"`
	LastCheckIn    *time.Time           `bson:"last_check_in,omitempty" json:"lastCheckIn"`
	Badges         []primitive.ObjectID `bson:"badges,omitempty" json:"badges,omitempty"`
	LastActiveAt   time.Time            `bson:"last_active_at,omitempty" json:"lastActiveAt,omitempty"`
	CreatedAt      time.Time            `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time            `bson:"updated_at" json:"updatedAt"`
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// PublicUser is the subset of a user shown to other users.
type PublicUser struct {
	ID       primitive.ObjectID `json:"id"`
	Username string             `json:"username"`
	Avatar   string             `json:"avatar,omitempty"`
	Level    int                `json:"level"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username, Avatar: u.Avatar, Level: u.Level}
}
