package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func (l *userLocks) backdate(userID string, d time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if lk, ok := l.locks[userID]; ok {
		lk.lastSeen = time.Now().Add(-d)
	}
}

func (l *userLocks) has(userID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.locks[userID]
	return ok
}

func TestHeldLockSurvivesEviction(t *testing.T) {
	locks := newUserLocks()

	unlock := locks.Lock("farmer-1")
	locks.backdate("farmer-1", time.Hour)

	locks.evictIdle(time.Minute)
	assert.True(t, locks.has("farmer-1"), "a held lock must not be evicted")

	unlock()
	locks.backdate("farmer-1", time.Hour)

	locks.evictIdle(time.Minute)
	assert.False(t, locks.has("farmer-1"), "a released stale lock is evicted")
}

func TestFreshLockSurvivesEviction(t *testing.T) {
	locks := newUserLocks()

	unlock := locks.Lock("farmer-1")
	unlock()

	locks.evictIdle(time.Minute)
	assert.True(t, locks.has("farmer-1"))
}
