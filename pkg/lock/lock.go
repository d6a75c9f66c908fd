// Package lock serializes read-modify-write sequences on one aggregate
// (a user's XP and streak, a challenge's participant list).
package lock

import (
	"context"
	"sync"

	"github.com/Dias221467/mindbloom/pkg/apperror"
)

// Locker grants exclusive access to a key until the returned unlock is called.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// UserKey and ChallengeKey name the aggregates the services lock on.
func UserKey(id string) string      { return "user:" + id }
func ChallengeKey(id string) string { return "challenge:" + id }

// AchievementKey guards a single achievement document.
func AchievementKey(id string) string { return "achievement:" + id }

func HabitKey(id string) string { return "habit:" + id }

// WithLock runs fn while holding key.
func WithLock(ctx context.Context, l Locker, key string, fn func() error) error {
	unlock, err := l.Lock(ctx, key)
	if err != nil {
		return err
	}
	defer unlock()
	return fn()
}

// MemoryLocker is a process-local Locker. A key's entry lives only while
// someone holds or waits for it.
type MemoryLocker struct {
	mu    sync.Mutex
	locks map[string]*memoryLock
}

type memoryLock struct {
	ch   chan struct{}
	refs int
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{locks: make(map[string]*memoryLock)}
}

func (l *MemoryLocker) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	entry, ok := l.locks[key]
	if !ok {
		entry = &memoryLock{ch: make(chan struct{}, 1)}
		l.locks[key] = entry
	}
	entry.refs++
	l.mu.Unlock()

	select {
	case entry.ch <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-entry.ch
				l.release(key, entry)
			})
		}, nil
	case <-ctx.Done():
		l.release(key, entry)
		return nil, apperror.Unavailable("timed out waiting for "+key, ctx.Err())
	}
}

func (l *MemoryLocker) release(key string, entry *memoryLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry.refs--
	if entry.refs == 0 {
		delete(l.locks, key)
	}
}

// size reports how many keys are held or awaited.
func (l *MemoryLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
