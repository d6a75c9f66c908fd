package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Dias221467/mindbloom/internal/models"
	"github.com/Dias221467/mindbloom/internal/repository"
	"github.com/Dias221467/mindbloom/pkg/apperror"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type testClock struct {
	mu sync.Mutex
	t  time.Time
}

func newTestClock(t time.Time) *testClock { return &testClock{t: t} }

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

// users

type fakeUsers struct {
	mu    sync.Mutex
	byID  map[primitive.ObjectID]models.User
	saves int
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: map[primitive.ObjectID]models.User{}}
}

func (f *fakeUsers) add(u models.User) *models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if u.Level == 0 {
		u.Level = 1
	}
	f.byID[u.ID] = u
	return &u
}

func (f *fakeUsers) get(id primitive.ObjectID) models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byID[id]
}

func (f *fakeUsers) CreateUser(_ context.Context, user *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == user.Email {
			return nil, apperror.Conflictf("user already exists")
		}
	}
	user.ID = primitive.NewObjectID()
	f.byID[user.ID] = *user
	return user, nil
}

func (f *fakeUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, apperror.NotFoundf("user not found")
}

func (f *fakeUsers) GetUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, apperror.NotFoundf("user not found")
	}
	return &u, nil
}

func (f *fakeUsers) UpdateProfile(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[user.ID]
	if !ok {
		return apperror.NotFoundf("user not found")
	}
	u.Username, u.FirstName, u.LastName, u.Avatar = user.Username, user.FirstName, user.LastName, user.Avatar
	f.byID[user.ID] = u
	return nil
}

func (f *fakeUsers) SaveProgress(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[user.ID]
	if !ok {
		return apperror.NotFoundf("user not found")
	}
	u.Level, u.XP, u.TotalXP, u.StreakDays = user.Level, user.XP, user.TotalXP, user.StreakDays
	if user.LastCheckIn != nil {
		t := *user.LastCheckIn
		u.LastCheckIn = &t
	}
	f.byID[user.ID] = u
	f.saves++
	return nil
}

func (f *fakeUsers) AddBadge(_ context.Context, userID, badgeID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := f.byID[userID]
	for _, b := range u.Badges {
		if b == badgeID {
			return nil
		}
	}
	u.Badges = append(u.Badges, badgeID)
	f.byID[userID] = u
	return nil
}

func (f *fakeUsers) UpdateLastActive(_ context.Context, userID primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := f.byID[userID]
	u.LastActiveAt = time.Now()
	f.byID[userID] = u
	return nil
}

func (f *fakeUsers) ListStaleCheckIns(_ context.Context, cutoff time.Time) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.User
	for _, u := range f.byID {
		if u.LastCheckIn == nil || u.LastCheckIn.Before(cutoff) {
			out = append(out, u)
		}
	}
	return out, nil
}

// xp logs

type fakeXPLogs struct {
	mu   sync.Mutex
	logs []models.XPLog
}

func (f *fakeXPLogs) CreateXPLog(_ context.Context, entry *models.XPLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry.ID = primitive.NewObjectID()
	f.logs = append(f.logs, *entry)
	return nil
}

func (f *fakeXPLogs) GetUserXPLogs(_ context.Context, userID primitive.ObjectID, limit int) ([]models.XPLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.XPLog{}
	for i := len(f.logs) - 1; i >= 0 && len(out) < limit; i-- {
		if f.logs[i].UserID == userID {
			out = append(out, f.logs[i])
		}
	}
	return out, nil
}

func (f *fakeXPLogs) total(userID primitive.ObjectID, action string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	sum := 0
	for _, l := range f.logs {
		if l.UserID == userID && (action == "" || l.Action == action) {
			sum += l.Points
		}
	}
	return sum
}

// notifications

type fakeNotifications struct {
	mu    sync.Mutex
	items []models.Notification
}

func (f *fakeNotifications) Notify(ctx context.Context, userID primitive.ObjectID, kind, title, message string, target *primitive.ObjectID) error {
	return f.CreateNotification(ctx, &models.Notification{UserID: userID, Type: kind, Title: title, Message: message, TargetID: target})
}

func (f *fakeNotifications) CreateNotification(_ context.Context, n *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	n.ID = primitive.NewObjectID()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	f.items = append(f.items, *n)
	return nil
}

func (f *fakeNotifications) GetUserNotifications(_ context.Context, userID primitive.ObjectID) ([]models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Notification{}
	for _, n := range f.items {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotifications) MarkAsRead(_ context.Context, userID, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == id && f.items[i].UserID == userID {
			f.items[i].Read = true
			return nil
		}
	}
	return apperror.NotFoundf("notification not found")
}

func (f *fakeNotifications) DeleteNotification(_ context.Context, userID, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == id && f.items[i].UserID == userID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return apperror.NotFoundf("notification not found")
}

func (f *fakeNotifications) GetLatestNotificationByType(_ context.Context, userID primitive.ObjectID, kind string) (*models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.items) - 1; i >= 0; i-- {
		if f.items[i].UserID == userID && f.items[i].Type == kind {
			n := f.items[i]
			return &n, nil
		}
	}
	return nil, apperror.NotFoundf("notification not found")
}

func (f *fakeNotifications) DeleteExpiredNotifications(_ context.Context) (int64, error) {
	return 0, nil
}

func (f *fakeNotifications) count(userID primitive.ObjectID, kind string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, item := range f.items {
		if item.UserID == userID && item.Type == kind {
			n++
		}
	}
	return n
}

// achievements

type fakeAchievements struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]models.Achievement

	// failCompletions makes the next N MarkCompleted calls fail.
	failCompletions int
}

func newFakeAchievements() *fakeAchievements {
	return &fakeAchievements{items: map[primitive.ObjectID]models.Achievement{}}
}

func (f *fakeAchievements) CountByUser(_ context.Context, userID primitive.ObjectID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, a := range f.items {
		if a.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeAchievements) InsertMany(_ context.Context, achievements []models.Achievement) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range achievements {
		achievements[i].ID = primitive.NewObjectID()
		f.items[achievements[i].ID] = achievements[i]
	}
	return nil
}

func (f *fakeAchievements) GetByID(_ context.Context, userID, id primitive.ObjectID) (*models.Achievement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.items[id]
	if !ok || a.UserID != userID {
		return nil, apperror.NotFoundf("achievement not found")
	}
	return &a, nil
}

func (f *fakeAchievements) FindByTitle(_ context.Context, userID primitive.ObjectID, title string) (*models.Achievement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.items {
		if a.UserID == userID && a.Title == title {
			return &a, nil
		}
	}
	return nil, apperror.NotFoundf("achievement not found")
}

func achievementField(a models.Achievement, key string) (float64, string) {
	switch key {
	case "is_completed":
		if a.IsCompleted {
			return 1, ""
		}
		return 0, ""
	case "current_value":
		return float64(a.CurrentValue), ""
	case "completed_date":
		if a.CompletedDate == nil {
			return 0, ""
		}
		return float64(a.CompletedDate.UnixNano()), ""
	case "category":
		return 0, a.Category
	case "title":
		return 0, a.Title
	default:
		return 0, a.ID.Hex()
	}
}

func (f *fakeAchievements) List(_ context.Context, userID primitive.ObjectID, filter models.AchievementFilter, sortBy bson.D, limit int64) ([]models.Achievement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Achievement{}
	for _, a := range f.items {
		if a.UserID != userID {
			continue
		}
		if filter.Category != "" && a.Category != filter.Category {
			continue
		}
		if filter.Completed != nil && a.IsCompleted != *filter.Completed {
			continue
		}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool {
		for _, e := range sortBy {
			dir, _ := e.Value.(int)
			ni, si := achievementField(out[i], e.Key)
			nj, sj := achievementField(out[j], e.Key)
			if ni == nj && si == sj {
				continue
			}
			less := ni < nj || (ni == nj && si < sj)
			if dir < 0 {
				return !less
			}
			return less
		}
		return false
	})
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeAchievements) UpdateValue(_ context.Context, id primitive.ObjectID, value int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a := f.items[id]
	if !a.IsCompleted {
		a.CurrentValue = value
		f.items[id] = a
	}
	return nil
}

func (f *fakeAchievements) MarkCompleted(_ context.Context, id primitive.ObjectID, at time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCompletions > 0 {
		f.failCompletions--
		return false, apperror.Unavailable("failed to access achievement", errors.New("i/o timeout"))
	}
	a := f.items[id]
	if a.IsCompleted {
		return false, nil
	}
	a.IsCompleted = true
	a.CompletedDate = &at
	f.items[id] = a
	return true, nil
}

func (f *fakeAchievements) byTitle(userID primitive.ObjectID, title string) models.Achievement {
	a, _ := f.FindByTitle(context.Background(), userID, title)
	if a == nil {
		return models.Achievement{}
	}
	return *a
}

// templates and badges

type fakeTemplates struct {
	mu    sync.Mutex
	items []models.AchievementTemplate
}

func (f *fakeTemplates) CreateTemplate(_ context.Context, t *models.AchievementTemplate) (*models.AchievementTemplate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t.ID = primitive.NewObjectID()
	f.items = append(f.items, *t)
	return t, nil
}

func (f *fakeTemplates) InsertTemplates(_ context.Context, templates []models.AchievementTemplate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range templates {
		t.ID = primitive.NewObjectID()
		f.items = append(f.items, t)
	}
	return nil
}

func (f *fakeTemplates) CountTemplates(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.items)), nil
}

func (f *fakeTemplates) GetAllTemplates(_ context.Context) ([]models.AchievementTemplate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.AchievementTemplate{}, f.items...), nil
}

func (f *fakeTemplates) GetTemplateByID(_ context.Context, id primitive.ObjectID) (*models.AchievementTemplate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.items {
		if t.ID == id {
			return &t, nil
		}
	}
	return nil, apperror.NotFoundf("achievement template not found")
}

func (f *fakeTemplates) UpdateTemplate(_ context.Context, t *models.AchievementTemplate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == t.ID {
			f.items[i] = *t
			return nil
		}
	}
	return apperror.NotFoundf("achievement template not found")
}

func (f *fakeTemplates) DeleteTemplate(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return apperror.NotFoundf("achievement template not found")
}

type fakeBadges struct {
	mu    sync.Mutex
	items []models.Badge
}

func (f *fakeBadges) CountBadges(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.items)), nil
}

func (f *fakeBadges) InsertBadges(_ context.Context, badges []models.Badge) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range badges {
		b.ID = primitive.NewObjectID()
		f.items = append(f.items, b)
	}
	return nil
}

func (f *fakeBadges) ListBadges(_ context.Context) ([]models.Badge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Badge{}, f.items...), nil
}

func (f *fakeBadges) GetBadgeByTitle(_ context.Context, title string) (*models.Badge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.items {
		if b.Title == title {
			return &b, nil
		}
	}
	return nil, apperror.NotFoundf("badge not found")
}

// challenges

type fakeChallenges struct {
	mu             sync.Mutex
	items          map[primitive.ObjectID]models.Challenge
	codeConflicts  int
	createAttempts int
	saveAttempts   int
}

func newFakeChallenges() *fakeChallenges {
	return &fakeChallenges{items: map[primitive.ObjectID]models.Challenge{}}
}

func cloneChallenge(ch models.Challenge) models.Challenge {
	ch.Participants = append([]models.Participant(nil), ch.Participants...)
	for i := range ch.Participants {
		p := &ch.Participants[i]
		p.CompletedDays = append([]time.Time(nil), p.CompletedDays...)
		p.TaskProgress = append([]models.TaskProgress(nil), p.TaskProgress...)
	}
	ch.Tasks = append([]models.Task(nil), ch.Tasks...)
	ch.InvitedUsers = append([]primitive.ObjectID(nil), ch.InvitedUsers...)
	return ch
}

func (f *fakeChallenges) CreateChallenge(_ context.Context, ch *models.Challenge) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createAttempts++
	if ch.JoinCode != "" && f.codeConflicts > 0 {
		f.codeConflicts--
		return apperror.Conflictf("challenge already exists")
	}
	for _, other := range f.items {
		if ch.JoinCode != "" && other.JoinCode == ch.JoinCode {
			return apperror.Conflictf("challenge already exists")
		}
	}
	ch.ID = primitive.NewObjectID()
	f.items[ch.ID] = cloneChallenge(*ch)
	return nil
}

func (f *fakeChallenges) GetChallengeByID(_ context.Context, id primitive.ObjectID) (*models.Challenge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch, ok := f.items[id]
	if !ok {
		return nil, apperror.NotFoundf("challenge not found")
	}
	c := cloneChallenge(ch)
	return &c, nil
}

func (f *fakeChallenges) GetChallengeByJoinCode(_ context.Context, code string) (*models.Challenge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ch := range f.items {
		if ch.JoinCode == code {
			c := cloneChallenge(ch)
			return &c, nil
		}
	}
	return nil, apperror.NotFoundf("challenge not found")
}

func (f *fakeChallenges) ListChallenges(_ context.Context, filter models.ChallengeFilter) ([]models.Challenge, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []models.Challenge
	for _, ch := range f.items {
		if filter.Category != "" && ch.Category != filter.Category {
			continue
		}
		if filter.PublicOnly && ch.IsPrivate {
			continue
		}
		if filter.ActiveOnly && !ch.IsActive {
			continue
		}
		if filter.JoinedBy != nil && ch.FindParticipant(*filter.JoinedBy) < 0 {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(ch.Title), strings.ToLower(filter.Search)) {
			continue
		}
		all = append(all, cloneChallenge(ch))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].StartDate.After(all[j].StartDate) })
	total := int64(len(all))
	if filter.Skip > 0 {
		if filter.Skip >= total {
			all = nil
		} else {
			all = all[filter.Skip:]
		}
	}
	if filter.Limit > 0 && int64(len(all)) > filter.Limit {
		all = all[:filter.Limit]
	}
	if all == nil {
		all = []models.Challenge{}
	}
	return all, total, nil
}

func (f *fakeChallenges) SaveChallenge(_ context.Context, ch *models.Challenge) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saveAttempts++
	if _, ok := f.items[ch.ID]; !ok {
		return apperror.NotFoundf("challenge not found")
	}
	if ch.JoinCode != "" && f.codeConflicts > 0 {
		f.codeConflicts--
		return apperror.Conflictf("challenge already exists")
	}
	for id, other := range f.items {
		if id != ch.ID && ch.JoinCode != "" && other.JoinCode == ch.JoinCode {
			return apperror.Conflictf("challenge already exists")
		}
	}
	f.items[ch.ID] = cloneChallenge(*ch)
	return nil
}

func (f *fakeChallenges) DeleteChallenge(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return apperror.NotFoundf("challenge not found")
	}
	delete(f.items, id)
	return nil
}

// journal

type fakeJournal struct {
	mu      sync.Mutex
	entries []models.JournalEntry
}

func (f *fakeJournal) CreateEntry(_ context.Context, e *models.JournalEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	e.ID = primitive.NewObjectID()
	if e.Date.IsZero() {
		e.Date = time.Now()
	}
	f.entries = append(f.entries, *e)
	return nil
}

func (f *fakeJournal) GetEntry(_ context.Context, userID, id primitive.ObjectID) (*models.JournalEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.entries {
		if e.ID == id && e.UserID == userID {
			return &e, nil
		}
	}
	return nil, apperror.NotFoundf("journal entry not found")
}

func (f *fakeJournal) ListEntries(_ context.Context, userID primitive.ObjectID, q repository.JournalQuery) ([]models.JournalEntry, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.JournalEntry{}
	for _, e := range f.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	total := int64(len(out))
	if q.Limit > 0 && int64(len(out)) > q.Limit {
		out = out[:q.Limit]
	}
	return out, total, nil
}

func (f *fakeJournal) EntryDates(_ context.Context, userID primitive.ObjectID) ([]time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var dates []time.Time
	for _, e := range f.entries {
		if e.UserID == userID {
			dates = append(dates, e.Date)
		}
	}
	return dates, nil
}

func (f *fakeJournal) UpdateEntry(_ context.Context, e *models.JournalEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.entries {
		if f.entries[i].ID == e.ID && f.entries[i].UserID == e.UserID {
			f.entries[i] = *e
			return nil
		}
	}
	return apperror.NotFoundf("journal entry not found")
}

func (f *fakeJournal) DeleteEntry(_ context.Context, userID, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.entries {
		if f.entries[i].ID == id && f.entries[i].UserID == userID {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return apperror.NotFoundf("journal entry not found")
}

func (f *fakeJournal) MoodAverages(_ context.Context, userID primitive.ObjectID, from time.Time) ([]models.MoodAverage, error) {
	return []models.MoodAverage{}, nil
}

func (f *fakeJournal) TopTags(_ context.Context, userID primitive.ObjectID, limit int) ([]models.TagCount, error) {
	return []models.TagCount{}, nil
}

// habits

type fakeHabits struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]models.Habit
}

func newFakeHabits() *fakeHabits {
	return &fakeHabits{items: map[primitive.ObjectID]models.Habit{}}
}

func (f *fakeHabits) CreateHabit(_ context.Context, h *models.Habit) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	h.ID = primitive.NewObjectID()
	f.items[h.ID] = *h
	return nil
}

func (f *fakeHabits) ListHabits(_ context.Context, userID primitive.ObjectID) ([]models.Habit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Habit{}
	for _, h := range f.items {
		if h.UserID == userID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeHabits) GetHabit(_ context.Context, userID, id primitive.ObjectID) (*models.Habit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	h, ok := f.items[id]
	if !ok || h.UserID != userID {
		return nil, apperror.NotFoundf("habit not found")
	}
	return &h, nil
}

func (f *fakeHabits) SaveStreak(_ context.Context, h *models.Habit) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[h.ID] = *h
	return nil
}

func (f *fakeHabits) DeleteHabit(_ context.Context, userID, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if h, ok := f.items[id]; !ok || h.UserID != userID {
		return apperror.NotFoundf("habit not found")
	}
	delete(f.items, id)
	return nil
}
