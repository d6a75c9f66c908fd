package gamification

import (
	"time"

	"github.com/Dias221467/mindbloom/internal/models"
	"github.com/Dias221467/mindbloom/pkg/apperror"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AddParticipant appends userID with zero progress. It fails when the user is
// already in the list or the challenge has a positive capacity that is reached.
func AddParticipant(ch *models.Challenge, userID primitive.ObjectID, now time.Time) error {
	if ch.FindParticipant(userID) >= 0 {
		return apperror.Conflictf("already participating in this challenge")
	}
	if ch.MaxParticipants > 0 && len(ch.Participants) >= ch.MaxParticipants {
		return apperror.Conflictf("challenge is full (%d participants)", ch.MaxParticipants)
	}

	ch.Participants = append(ch.Participants, models.Participant{
		UserID:        userID,
		IsCreator:     userID == ch.CreatorID,
		JoinDate:      now,
		TaskProgress:  []models.TaskProgress{},
		CompletedDays: []time.Time{},
		IsActive:      true,
	})
	return nil
}

// RemoveParticipant drops userID from the challenge. The creator cannot leave.
func RemoveParticipant(ch *models.Challenge, userID primitive.ObjectID) error {
	idx := ch.FindParticipant(userID)
	if idx < 0 {
		return apperror.NotFoundf("not participating in this challenge")
	}
	if ch.Participants[idx].IsCreator || ch.CreatorID == userID {
		return apperror.Conflictf("the creator cannot leave the challenge; delete it instead")
	}
	ch.Participants = append(ch.Participants[:idx], ch.Participants[idx+1:]...)
	return nil
}

// CheckIn records today for the participant and recomputes progress.
func CheckIn(ch *models.Challenge, userID primitive.ObjectID, now time.Time) (*models.Participant, error) {
	idx := ch.FindParticipant(userID)
	if idx < 0 {
		return nil, apperror.NotFoundf("not participating in this challenge")
	}
	p := &ch.Participants[idx]

	if ContainsDay(p.CompletedDays, now, now.Location()) {
		return nil, apperror.Conflictf("already checked in today")
	}

	p.CompletedDays = append(p.CompletedDays, Day(now))
	p.LastCheckIn = &now
	p.Progress = ParticipantProgress(len(p.CompletedDays), TotalChallengeDays(ch.StartDate, ch.EndDate))
	return p, nil
}

// CompleteTask marks taskID done for the participant and reports whether every
// task of the challenge is now complete for them. Completing an already
// completed task is accepted and leaves the timestamp untouched.
func CompleteTask(ch *models.Challenge, userID, taskID primitive.ObjectID, now time.Time) (bool, error) {
	idx := ch.FindParticipant(userID)
	if idx < 0 {
		return false, apperror.NotFoundf("not participating in this challenge")
	}
	if !ch.HasTask(taskID) {
		return false, apperror.NotFoundf("task %s not found in challenge", taskID.Hex())
	}
	p := &ch.Participants[idx]

	found := false
	for i := range p.TaskProgress {
		if p.TaskProgress[i].TaskID != taskID {
			continue
		}
		found = true
		if !p.TaskProgress[i].IsCompleted {
			p.TaskProgress[i].IsCompleted = true
			p.TaskProgress[i].CompletedAt = &now
		}
	}
	if !found {
		p.TaskProgress = append(p.TaskProgress, models.TaskProgress{TaskID: taskID, IsCompleted: true, CompletedAt: &now})
	}

	return allTasksDone(ch, p), nil
}

// TaskAlreadyCompleted reports whether taskID is marked done for userID.
func TaskAlreadyCompleted(ch *models.Challenge, userID, taskID primitive.ObjectID) bool {
	idx := ch.FindParticipant(userID)
	if idx < 0 {
		return false
	}
	for _, tp := range ch.Participants[idx].TaskProgress {
		if tp.TaskID == taskID && tp.IsCompleted {
			return true
		}
	}
	return false
}

func allTasksDone(ch *models.Challenge, p *models.Participant) bool {
	if len(ch.Tasks) == 0 {
		return false
	}
	done := make(map[primitive.ObjectID]bool, len(p.TaskProgress))
	for _, tp := range p.TaskProgress {
		if tp.IsCompleted {
			done[tp.TaskID] = true
		}
	}
	for _, t := range ch.Tasks {
		if !done[t.ID] {
			return false
		}
	}
	return true
}

// IsCompletedByUser is true iff the participant's progress reached the threshold.
func IsCompletedByUser(ch *models.Challenge, userID primitive.ObjectID) bool {
	idx := ch.FindParticipant(userID)
	if idx < 0 {
		return false
	}
	return ch.Participants[idx].Progress >= ch.CompletionThreshold
}
