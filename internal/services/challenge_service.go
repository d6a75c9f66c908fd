package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Dias221467/mindbloom/internal/gamification"
	"github.com/Dias221467/mindbloom/internal/models"
	"github.com/Dias221467/mindbloom/pkg/apperror"
	"github.com/Dias221467/mindbloom/pkg/lock"
	"github.com/Dias221467/mindbloom/pkg/logger"
	"github.com/Dias221467/mindbloom/pkg/metrics"
	"github.com/Dias221467/mindbloom/pkg/validation"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	joinCodeAttempts = 5
	defaultTaskPoint = 10
	maxPageSize      = 50
)

// TaskInput describes one task of a new or edited challenge.
type TaskInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
	Duration    int    `json:"duration" validate:"gte=0"`
	Points      int    `json:"points" validate:"gte=0"`
}

// ChallengeInput is the create/update payload.
type ChallengeInput struct {
	Title               string      `json:"title" validate:"required,max=100"`
	Description         string      `json:"description" validate:"required,max=2000"`
	Category            string      `json:"category" validate:"required"`
	Difficulty          string      `json:"difficulty" validate:"omitempty,oneof=Beginner Intermediate Advanced"`
	StartDate           time.Time   `json:"startDate" validate:"required"`
	EndDate             time.Time   `json:"endDate" validate:"required"`
	IsPrivate           bool        `json:"isPrivate"`
	MaxParticipants     int         `json:"maxParticipants" validate:"gte=0"`
	CompletionThreshold int         `json:"completionThreshold" validate:"gte=0,lte=100"`
	XPReward            int         `json:"xpReward" validate:"gte=0"`
	Tasks               []TaskInput `json:"tasks" validate:"dive"`
}

func (in *ChallengeInput) validate() error {
	if err := validation.Struct(in); err != nil {
		return err
	}
	if _, ok := models.AllowedChallengeCategories[in.Category]; !ok {
		return apperror.Validationf("unknown challenge category %q", in.Category)
	}
	if !in.EndDate.After(in.StartDate) {
		return apperror.Validationf("endDate must be after startDate")
	}
	return nil
}

func buildTasks(in []TaskInput) []models.Task {
	tasks := make([]models.Task, 0, len(in))
	for _, t := range in {
		points := t.Points
		if points == 0 {
			points = defaultTaskPoint
		}
		tasks = append(tasks, models.Task{
			ID:          primitive.NewObjectID(),
			Name:        t.Name,
			Description: t.Description,
			Duration:    t.Duration,
			Points:      points,
		})
	}
	return tasks
}

// ChallengePage is one page of a challenge listing.
type ChallengePage struct {
	Challenges []models.Challenge `json:"challenges"`
	Total      int64              `json:"total"`
	HasMore    bool               `json:"hasMore"`
}

// CheckInResult carries the participant state after a challenge check-in.
type CheckInResult struct {
	Challenge   *models.Challenge   `json:"challenge"`
	Participant *models.Participant `json:"participant"`
	// JustCompleted is set exactly once per participant, on the check-in
	// that first reaches the completion threshold.
	JustCompleted bool `json:"justCompleted"`
}

// TaskResult carries the outcome of completing a task.
type TaskResult struct {
	Challenge        *models.Challenge `json:"challenge"`
	Task             models.Task       `json:"task"`
	AlreadyCompleted bool              `json:"alreadyCompleted"`

	// AllTasksDone is set when this call closed the participant's last open task.
	AllTasksDone  bool `json:"allTasksDone"`
	JustCompleted bool `json:"justCompleted"`
}

type ChallengeService struct {
	repo     ChallengeStore
	users    UserStore
	notifier Notifier
	locker   lock.Locker
	now      Clock
	joinCode func() (string, error)
}

func NewChallengeService(repo ChallengeStore, users UserStore, notifier Notifier, locker lock.Locker) *ChallengeService {
	return &ChallengeService{
		repo:     repo,
		users:    users,
		notifier: notifier,
		locker:   locker,
		now:      utcNow,
		joinCode: gamification.GenerateJoinCode,
	}
}

// Create stores a new challenge with the creator as its first participant.
// Private challenges get a join code; a colliding code is redrawn.
func (s *ChallengeService) Create(ctx context.Context, creatorID primitive.ObjectID, in *ChallengeInput) (*models.Challenge, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	ch := &models.Challenge{
		Title:               in.Title,
		Description:         in.Description,
		Category:            in.Category,
		Difficulty:          in.Difficulty,
		CreatorID:           creatorID,
		StartDate:           in.StartDate,
		EndDate:             in.EndDate,
		Duration:            gamification.TotalChallengeDays(in.StartDate, in.EndDate),
		IsPrivate:           in.IsPrivate,
		MaxParticipants:     in.MaxParticipants,
		Tasks:               buildTasks(in.Tasks),
		CompletionThreshold: in.CompletionThreshold,
		XPReward:            in.XPReward,
		IsActive:            true,
	}
	if ch.CompletionThreshold == 0 {
		ch.CompletionThreshold = defaultCompletionTarget
	}
	if ch.XPReward == 0 {
		ch.XPReward = defaultChallengeXP
	}
	if err := gamification.AddParticipant(ch, creatorID, s.now()); err != nil {
		return nil, err
	}

	if !ch.IsPrivate {
		if err := s.repo.CreateChallenge(ctx, ch); err != nil {
			return nil, err
		}
		return ch, nil
	}

	if err := s.storeWithJoinCode(ctx, ch, s.repo.CreateChallenge); err != nil {
		return nil, err
	}
	return ch, nil
}

// storeWithJoinCode draws a join code and stores ch with it, redrawing when the
// unique index rejects the code.
func (s *ChallengeService) storeWithJoinCode(ctx context.Context, ch *models.Challenge, store func(context.Context, *models.Challenge) error) error {
	for attempt := 1; ; attempt++ {
		code, err := s.joinCode()
		if err != nil {
			return fmt.Errorf("generate join code: %w", err)
		}
		ch.JoinCode = code

		err = store(ctx, ch)
		if err == nil {
			return nil
		}
		if !apperror.Is(err, apperror.Conflict) || attempt >= joinCodeAttempts {
			return err
		}
		logger.Log.WithField("attempt", attempt).Warn("Join code collision, retrying")
	}
}

// Get returns a challenge. Private challenges are visible only to
// participants, invitees and the creator; only the creator sees the join code.
func (s *ChallengeService) Get(ctx context.Context, id, userID primitive.ObjectID) (*models.Challenge, error) {
	ch, err := s.repo.GetChallengeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ch.IsPrivate && ch.CreatorID != userID && ch.FindParticipant(userID) < 0 && !ch.IsInvited(userID) {
		return nil, apperror.Forbiddenf("this challenge is private")
	}
	return redact(ch, userID), nil
}

func redact(ch *models.Challenge, userID primitive.ObjectID) *models.Challenge {
	if ch.CreatorID != userID {
		ch.JoinCode = ""
	}
	return ch
}

// List returns one page of challenges and whether more remain.
func (s *ChallengeService) List(ctx context.Context, filter models.ChallengeFilter, userID primitive.ObjectID) (*ChallengePage, error) {
	if filter.Limit <= 0 || filter.Limit > maxPageSize {
		filter.Limit = 10
	}
	if filter.Skip < 0 {
		filter.Skip = 0
	}
	items, total, err := s.repo.ListChallenges(ctx, filter)
	if err != nil {
		return nil, err
	}
	for i := range items {
		redact(&items[i], userID)
	}
	return &ChallengePage{
		Challenges: items,
		Total:      total,
		HasMore:    filter.Skip+int64(len(items)) < total,
	}, nil
}

// mutate loads the challenge under its lock, applies fn and saves the result.
func (s *ChallengeService) mutate(ctx context.Context, id primitive.ObjectID, fn func(ch *models.Challenge) error) (*models.Challenge, error) {
	var out *models.Challenge
	err := lock.WithLock(ctx, s.locker, lock.ChallengeKey(id.Hex()), func() error {
		ch, err := s.repo.GetChallengeByID(ctx, id)
		if err != nil {
			return err
		}
		if err := fn(ch); err != nil {
			return err
		}
		if err := s.repo.SaveChallenge(ctx, ch); err != nil {
			return err
		}
		out = ch
		return nil
	})
	return out, err
}

// Update edits a challenge that has not started yet. Only the creator may edit.
func (s *ChallengeService) Update(ctx context.Context, id, userID primitive.ObjectID, in *ChallengeInput) (*models.Challenge, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var out *models.Challenge
	err := lock.WithLock(ctx, s.locker, lock.ChallengeKey(id.Hex()), func() error {
		ch, err := s.repo.GetChallengeByID(ctx, id)
		if err != nil {
			return err
		}
		if ch.CreatorID != userID {
			return apperror.Forbiddenf("only the creator can edit this challenge")
		}
		if !s.now().Before(ch.StartDate) {
			return apperror.Conflictf("a challenge cannot be edited after it has started")
		}
		if in.MaxParticipants > 0 && len(ch.Participants) > in.MaxParticipants {
			return apperror.Conflictf("challenge already has %d participants", len(ch.Participants))
		}

		ch.Title = in.Title
		ch.Description = in.Description
		ch.Category = in.Category
		ch.Difficulty = in.Difficulty
		ch.StartDate = in.StartDate
		ch.EndDate = in.EndDate
		ch.Duration = gamification.TotalChallengeDays(in.StartDate, in.EndDate)
		ch.MaxParticipants = in.MaxParticipants
		if in.CompletionThreshold > 0 {
			ch.CompletionThreshold = in.CompletionThreshold
		}
		if in.XPReward > 0 {
			ch.XPReward = in.XPReward
		}
		if in.Tasks != nil {
			ch.Tasks = buildTasks(in.Tasks)
		}

		needsCode := in.IsPrivate && ch.JoinCode == ""
		if !in.IsPrivate {
			ch.JoinCode = ""
		}
		ch.IsPrivate = in.IsPrivate

		if needsCode {
			err = s.storeWithJoinCode(ctx, ch, s.repo.SaveChallenge)
		} else {
			err = s.repo.SaveChallenge(ctx, ch)
		}
		if err != nil {
			return err
		}
		out = ch
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a challenge. Started challenges with other participants stay.
func (s *ChallengeService) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	return lock.WithLock(ctx, s.locker, lock.ChallengeKey(id.Hex()), func() error {
		ch, err := s.repo.GetChallengeByID(ctx, id)
		if err != nil {
			return err
		}
		if ch.CreatorID != userID {
			return apperror.Forbiddenf("only the creator can delete this challenge")
		}
		others := 0
		for _, p := range ch.Participants {
			if p.UserID != userID {
				others++
			}
		}
		if !s.now().Before(ch.StartDate) && others > 0 {
			return apperror.Conflictf("cannot delete an active challenge with %d other participants", others)
		}
		return s.repo.DeleteChallenge(ctx, id)
	})
}

// Join adds userID to the challenge. Private challenges need the join code or
// a pending invitation.
func (s *ChallengeService) Join(ctx context.Context, id, userID primitive.ObjectID, joinCode string) (*models.Challenge, error) {
	ch, err := s.mutate(ctx, id, func(ch *models.Challenge) error {
		if !ch.IsActive || s.now().After(ch.EndDate) {
			return apperror.Conflictf("challenge has ended")
		}
		if ch.IsPrivate && joinCode != ch.JoinCode && !ch.IsInvited(userID) {
			return apperror.Forbiddenf("a valid join code or invitation is required")
		}
		if err := gamification.AddParticipant(ch, userID, s.now()); err != nil {
			return err
		}

		invited := ch.InvitedUsers[:0]
		for _, u := range ch.InvitedUsers {
			if u != userID {
				invited = append(invited, u)
			}
		}
		ch.InvitedUsers = invited
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Log.WithFields(logrus.Fields{"challenge_id": id.Hex(), "user_id": userID.Hex()}).Info("User joined challenge")
	return redact(ch, userID), nil
}

// JoinByCode resolves a private challenge by code and joins it.
func (s *ChallengeService) JoinByCode(ctx context.Context, code string, userID primitive.ObjectID) (*models.Challenge, error) {
	if len(code) != gamification.JoinCodeLength {
		return nil, apperror.Validationf("join code must be %d characters", gamification.JoinCodeLength)
	}
	ch, err := s.repo.GetChallengeByJoinCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return s.Join(ctx, ch.ID, userID, code)
}

// Leave removes userID. The creator has to delete the challenge instead.
func (s *ChallengeService) Leave(ctx context.Context, id, userID primitive.ObjectID) error {
	_, err := s.mutate(ctx, id, func(ch *models.Challenge) error {
		return gamification.RemoveParticipant(ch, userID)
	})
	return err
}

// Invite lets the creator grant inviteeID access to a challenge.
func (s *ChallengeService) Invite(ctx context.Context, id, creatorID, inviteeID primitive.ObjectID) (*models.Challenge, error) {
	if _, err := s.users.GetUserByID(ctx, inviteeID); err != nil {
		return nil, err
	}
	ch, err := s.mutate(ctx, id, func(ch *models.Challenge) error {
		if ch.CreatorID != creatorID {
			return apperror.Forbiddenf("only the creator can invite users")
		}
		if ch.FindParticipant(inviteeID) >= 0 {
			return apperror.Conflictf("user is already participating")
		}
		if !ch.IsInvited(inviteeID) {
			ch.InvitedUsers = append(ch.InvitedUsers, inviteeID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		msg := fmt.Sprintf("You were invited to join \"%s\".", ch.Title)
		if err := s.notifier.Notify(ctx, inviteeID, models.NotificationChallengeInvite, "Challenge invitation", msg, &ch.ID); err != nil {
			logger.Log.WithError(err).Warn("Failed to record invitation notification")
		}
	}
	return ch, nil
}

// CheckIn records today's check-in for userID.
func (s *ChallengeService) CheckIn(ctx context.Context, id, userID primitive.ObjectID) (*CheckInResult, error) {
	result := &CheckInResult{}
	ch, err := s.mutate(ctx, id, func(ch *models.Challenge) error {
		p, err := gamification.CheckIn(ch, userID, s.now())
		if err != nil {
			return err
		}
		if gamification.IsCompletedByUser(ch, userID) && !p.Rewarded {
			p.Rewarded = true
			result.JustCompleted = true
		}
		result.Participant = p
		return nil
	})
	metrics.RecordCheckIn("challenge", err == nil)
	if err != nil {
		return nil, err
	}
	result.Challenge = redact(ch, userID)
	return result, nil
}

// CompleteTask marks a task done for userID.
func (s *ChallengeService) CompleteTask(ctx context.Context, id, userID, taskID primitive.ObjectID) (*TaskResult, error) {
	result := &TaskResult{}
	ch, err := s.mutate(ctx, id, func(ch *models.Challenge) error {
		result.AlreadyCompleted = gamification.TaskAlreadyCompleted(ch, userID, taskID)
		all, err := gamification.CompleteTask(ch, userID, taskID, s.now())
		if err != nil {
			return err
		}
		result.AllTasksDone = all && !result.AlreadyCompleted
		if result.AllTasksDone {
			p := &ch.Participants[ch.FindParticipant(userID)]
			if !p.Rewarded {
				p.Rewarded = true
				result.JustCompleted = true
			}
		}
		for _, t := range ch.Tasks {
			if t.ID == taskID {
				result.Task = t
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	result.Challenge = redact(ch, userID)
	return result, nil
}

// IsCompletedByUser reports whether the user reached the completion threshold.
func (s *ChallengeService) IsCompletedByUser(ctx context.Context, id, userID primitive.ObjectID) (bool, error) {
	ch, err := s.repo.GetChallengeByID(ctx, id)
	if err != nil {
		return false, err
	}
	if ch.FindParticipant(userID) < 0 {
		return false, apperror.NotFoundf("not participating in this challenge")
	}
	return gamification.IsCompletedByUser(ch, userID), nil
}

func (s *ChallengeService) joined(ctx context.Context, userID primitive.ObjectID, activeOnly bool) ([]models.Challenge, error) {
	items, _, err := s.repo.ListChallenges(ctx, models.ChallengeFilter{JoinedBy: &userID, ActiveOnly: activeOnly})
	return items, err
}

// ActiveForUser lists running challenges the user joined and has not completed.
func (s *ChallengeService) ActiveForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Challenge, error) {
	items, err := s.joined(ctx, userID, true)
	if err != nil {
		return nil, err
	}
	out := []models.Challenge{}
	for i := range items {
		if !gamification.IsCompletedByUser(&items[i], userID) {
			out = append(out, *redact(&items[i], userID))
		}
	}
	return out, nil
}

// CompletedForUser lists challenges the user completed.
func (s *ChallengeService) CompletedForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Challenge, error) {
	items, err := s.joined(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	out := []models.Challenge{}
	for i := range items {
		if gamification.IsCompletedByUser(&items[i], userID) {
			out = append(out, *redact(&items[i], userID))
		}
	}
	return out, nil
}
