// Package lock serializes booking attempts per professional. The check-then-
// insert sequence in the booking path is only safe while the professional's
// lock is held.
package lock

import (
	"context"
	"sync"
)

// Locker grants mutual exclusion on a string key. Acquire blocks until the
// lock is held or the context is done; the returned release function must be
// called exactly once.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// KeyedLocker is an in-process Locker backed by one channel-semaphore per key.
// It is the default for single-instance deployments and for tests.
type KeyedLocker struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

func NewKeyedLocker() *KeyedLocker {
	return &KeyedLocker{locks: make(map[string]chan struct{})}
}

func (l *KeyedLocker) sem(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	sem, ok := l.locks[key]
	if !ok {
		sem = make(chan struct{}, 1)
		l.locks[key] = sem
	}
	return sem
}

func (l *KeyedLocker) Acquire(ctx context.Context, key string) (func(), error) {
	sem := l.sem(key)
	select {
	case sem <- struct{}{}:
		return func() { <-sem }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
