// Package memory contains in-process repository implementations
package memory

import (
	"context"
	"fmt"
	"sync"
)

type userLock struct {
	ch   chan struct{}
	refs int
}

// Locker implements deps.UserLocker with one channel-based mutex per user
type Locker struct {
	mu    sync.Mutex
	locks map[int64]*userLock
}

// NewLocker creates a new in-process user locker
func NewLocker() *Locker {
	return &Locker{locks: make(map[int64]*userLock)}
}

// Lock blocks until the user's lock is held or ctx is done
func (l *Locker) Lock(ctx context.Context, userID int64) (func(), error) {
	l.mu.Lock()
	lock, ok := l.locks[userID]
	if !ok {
		lock = &userLock{ch: make(chan struct{}, 1)}
		l.locks[userID] = lock
	}
	lock.refs++
	l.mu.Unlock()

	select {
	case lock.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(userID, lock)
		return nil, fmt.Errorf("failed to acquire lock for user %d: %w", userID, ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-lock.ch
			l.release(userID, lock)
		})
	}, nil
}

func (l *Locker) release(userID int64, lock *userLock) {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock.refs--
	if lock.refs == 0 {
		delete(l.locks, userID)
	}
}

// size returns the number of tracked users
func (l *Locker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
