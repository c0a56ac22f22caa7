package services

import (
	"sync"
	"time"
)

type userLock struct {
	mu       sync.Mutex
	lastSeen time.Time
}

// userLocks serializes balance-changing operations per user, so two
// concurrent redemptions by the same user cannot both pass the balance
// check. Entries for idle users are evicted in the background.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*userLock
}

func newUserLocks() *userLocks {
	l := &userLocks{locks: make(map[string]*userLock)}
	go l.evictLoop()
	return l
}

func (l *userLocks) get(userID string) *userLock {
	l.mu.Lock()
	defer l.mu.Unlock()
	lk, ok := l.locks[userID]
	if !ok {
		lk = &userLock{}
		l.locks[userID] = lk
	}
	lk.lastSeen = time.Now()
	return lk
}

// Lock acquires the per-user mutex and returns its unlock func.
func (l *userLocks) Lock(userID string) func() {
	lk := l.get(userID)
	lk.mu.Lock()
	return lk.mu.Unlock
}

func (l *userLocks) evictLoop() {
	for {
		time.Sleep(3 * time.Minute)
		l.evictIdle(5 * time.Minute)
	}
}

// evictIdle drops entries idle for longer than maxIdle. An entry whose
// mutex is still held is skipped even when stale, so an operation running
// longer than the idle window keeps its lock.
func (l *userLocks) evictIdle(maxIdle time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for id, lk := range l.locks {
		if time.Since(lk.lastSeen) <= maxIdle {
			continue
		}
		if lk.mu.TryLock() {
			delete(l.locks, id)
			lk.mu.Unlock()
		}
	}
}
