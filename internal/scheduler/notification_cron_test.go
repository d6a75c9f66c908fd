package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubJobs struct {
	reminders int
	cleanups  int
	err       error
}

func (s *stubJobs) SendStreakReminders(ctx context.Context) (int, error) {
	s.reminders++
	_, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		return 0, errors.New("missing deadline")
	}
	return 2, s.err
}

func (s *stubJobs) DeleteExpiredNotifications(context.Context) (int64, error) {
	s.cleanups++
	return 3, s.err
}

func TestSpecsParse(t *testing.T) {
	for _, spec := range []string{StreakReminderSpec, NotificationCleanupSpec} {
		_, err := cron.ParseStandard(spec)
		assert.NoError(t, err, spec)
	}
}

func TestRunJobs(t *testing.T) {
	jobs := &stubJobs{}
	RunStreakReminders(jobs)
	RunNotificationCleanup(jobs)
	assert.Equal(t, 1, jobs.reminders)
	assert.Equal(t, 1, jobs.cleanups)

	// failures are logged, not propagated
	jobs.err = errors.New("mongo down")
	RunStreakReminders(jobs)
	RunNotificationCleanup(jobs)
	assert.Equal(t, 2, jobs.reminders)
}

func TestStartRegistersBothJobs(t *testing.T) {
	c, err := StartNotificationCronJobs(&stubJobs{})
	require.NoError(t, err)
	defer c.Stop()
	assert.Len(t, c.Entries(), 2)
}
