package services

import (
	"context"
	"time"

	"github.com/Dias221467/mindbloom/internal/gamification"
	"github.com/Dias221467/mindbloom/internal/models"
	"github.com/Dias221467/mindbloom/internal/repository"
	"github.com/Dias221467/mindbloom/pkg/apperror"
	"github.com/Dias221467/mindbloom/pkg/validation"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JournalInput is the create/update payload of a journal entry.
type JournalInput struct {
	Date       *time.Time `json:"date"`
	Mood       int        `json:"mood" validate:"required,min=1,max=10"`
	Content    string     `json:"content" validate:"required,max=10000"`
	Prompt     string     `json:"prompt" validate:"max=500"`
	Tags       []string   `json:"tags" validate:"max=20,dive,max=40"`
	Gratitude  []string   `json:"gratitude" validate:"max=20,dive,max=200"`
	Activities []string   `json:"activities" validate:"max=20,dive,max=60"`
	IsPrivate  *bool      `json:"isPrivate"`
}

// JournalPage is one page of entries.
type JournalPage struct {
	Entries []models.JournalEntry `json:"entries"`
	Total   int64                 `json:"total"`
	HasMore bool                  `json:"hasMore"`
}

type JournalService struct {
	repo JournalStore
	now  Clock
}

func NewJournalService(repo JournalStore) *JournalService {
	return &JournalService{repo: repo, now: utcNow}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func (s *JournalService) Create(ctx context.Context, userID primitive.ObjectID, in *JournalInput) (*models.JournalEntry, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	entry := &models.JournalEntry{
		UserID:     userID,
		Mood:       in.Mood,
		Content:    in.Content,
		Prompt:     in.Prompt,
		Tags:       orEmpty(in.Tags),
		Gratitude:  orEmpty(in.Gratitude),
		Activities: orEmpty(in.Activities),
		IsPrivate:  true,
		Date:       s.now(),
	}
	if in.Date != nil {
		if in.Date.After(s.now().Add(24 * time.Hour)) {
			return nil, apperror.Validationf("journal date cannot be in the future")
		}
		entry.Date = *in.Date
	}
	if in.IsPrivate != nil {
		entry.IsPrivate = *in.IsPrivate
	}
	if err := s.repo.CreateEntry(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *JournalService) Get(ctx context.Context, userID, id primitive.ObjectID) (*models.JournalEntry, error) {
	return s.repo.GetEntry(ctx, userID, id)
}

// List pages through entries, newest first.
func (s *JournalService) List(ctx context.Context, userID primitive.ObjectID, q repository.JournalQuery) (*JournalPage, error) {
	if q.Limit <= 0 || q.Limit > maxPageSize {
		q.Limit = 10
	}
	if q.Skip < 0 {
		q.Skip = 0
	}
	entries, total, err := s.repo.ListEntries(ctx, userID, q)
	if err != nil {
		return nil, err
	}
	return &JournalPage{Entries: entries, Total: total, HasMore: q.Skip+int64(len(entries)) < total}, nil
}

func (s *JournalService) Update(ctx context.Context, userID, id primitive.ObjectID, in *JournalInput) (*models.JournalEntry, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	entry, err := s.repo.GetEntry(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	entry.Mood = in.Mood
	entry.Content = in.Content
	entry.Prompt = in.Prompt
	entry.Tags = orEmpty(in.Tags)
	entry.Gratitude = orEmpty(in.Gratitude)
	entry.Activities = orEmpty(in.Activities)
	if in.IsPrivate != nil {
		entry.IsPrivate = *in.IsPrivate
	}
	if err := s.repo.UpdateEntry(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *JournalService) Delete(ctx context.Context, userID, id primitive.ObjectID) error {
	return s.repo.DeleteEntry(ctx, userID, id)
}

// Streak computes the journal streak from every entry date.
func (s *JournalService) Streak(ctx context.Context, userID primitive.ObjectID) (gamification.StreakInfo, error) {
	dates, err := s.repo.EntryDates(ctx, userID)
	if err != nil {
		return gamification.StreakInfo{}, err
	}
	return gamification.ComputeStreak(dates, s.now()), nil
}

// MoodStats averages mood per day over the last days days (default 30).
func (s *JournalService) MoodStats(ctx context.Context, userID primitive.ObjectID, days int) ([]models.MoodAverage, error) {
	if days <= 0 || days > 365 {
		days = 30
	}
	from := gamification.Day(s.now()).AddDate(0, 0, -(days - 1))
	return s.repo.MoodAverages(ctx, userID, from)
}

// TopTags ranks the user's tags (default 10).
func (s *JournalService) TopTags(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.TagCount, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return s.repo.TopTags(ctx, userID, limit)
}
