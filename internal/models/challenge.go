package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var AllowedChallengeCategories = map[string]struct{}{
	"Meditation": {},
	"Exercise":   {},
	"Journaling": {},
	"Habits":     {},
	"Sleep":      {},
	"Nutrition":  {},
	"Social":     {},
	"Other":      {},
}

// Challenge is a time-boxed activity that several users can join.
type Challenge struct {
	ID                  primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title               string               `bson:"title" json:"title"`
	Description         string               `bson:"description" json:"description"`
	Category            string               `bson:"category" json:"category"`
	Difficulty          string               `bson:"difficulty,omitempty" json:"difficulty,omitempty"`
	CreatorID           primitive.ObjectID   `bson:"creator_id" json:"creator"`
	StartDate           time.Time            `bson:"start_date" json:"startDate"`
	EndDate             time.Time            `bson:"end_date" json:"endDate"`
	Duration            int                  `bson:"duration" json:"duration"`
	IsPrivate           bool                 `bson:"is_private" json:"isPrivate"`
	JoinCode            string               `bson:"join_code,omitempty" json:"joinCode,omitempty"`
	MaxParticipants     int                  `bson:"max_participants" json:"maxParticipants"`
	Tasks               []Task               `bson:"tasks" json:"tasks"`
	Participants        []Participant        `bson:"participants" json:"participants"`
	InvitedUsers        []primitive.ObjectID `bson:"invited_users,omitempty" json:"invitedUsers,omitempty"`
	CompletionThreshold int                  `bson:"completion_threshold" json:"completionThreshold"`
	XPReward            int                  `bson:"xp_reward" json:"xpReward"`
	IsActive            bool                 `bson:"is_active" json:"isActive"`
	CreatedAt           time.Time            `bson:"created_at" json:"createdAt"`
	UpdatedAt           time.Time            `bson:"updated_at" json:"updatedAt"`
}

type Task struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Duration    int                `bson:"duration" json:"duration"` // minutes
	Points      int                `bson:"points" json:"points"`
}

// Participant is a user's membership and progress inside a challenge.
type Participant struct {
	UserID        primitive.ObjectID `bson:"user_id" json:"user"`
	IsCreator     bool               `bson:"is_creator" json:"isCreator"`
	JoinDate      time.Time          `bson:"join_date" json:"joinDate"`
	Progress      int                `bson:"progress" json:"progress"`
	TaskProgress  []TaskProgress     `bson:"task_progress" json:"taskProgress"`
	CompletedDays []time.Time        `bson:"completed_days" json:"completedDays"`
	LastCheckIn   *time.Time         `bson:"last_check_in,omitempty" json:"lastCheckIn"`
	IsActive      bool               `bson:"is_active" json:"isActive"`
	Rewarded      bool               `bson:"rewarded" json:"rewarded"`
}

type TaskProgress struct {
	TaskID      primitive.ObjectID `bson:"task_id" json:"taskId"`
	IsCompleted bool               `bson:"is_completed" json:"isCompleted"`
	CompletedAt *time.Time         `bson:"completed_at,omitempty" json:"completedAt"`
}

// ChallengeFilter narrows challenge listings.
type ChallengeFilter struct {
	Category   string
	PublicOnly bool
	ActiveOnly bool
	JoinedBy   *primitive.ObjectID
	Search     string
	Limit      int64
	Skip       int64
}

// FindParticipant returns the index of userID in the participant list, or -1.
func (c *Challenge) FindParticipant(userID primitive.ObjectID) int {
	for i, p := range c.Participants {
		if p.UserID == userID {
			return i
		}
	}
	return -1
}

func (c *Challenge) HasTask(taskID primitive.ObjectID) bool {
	for _, t := range c.Tasks {
		if t.ID == taskID {
			return true
		}
	}
	return false
}

func (c *Challenge) IsInvited(userID primitive.ObjectID) bool {
	for _, id := range c.InvitedUsers {
		if id == userID {
			return true
		}
	}
	return false
}
