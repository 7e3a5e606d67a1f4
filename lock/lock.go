package lock

import (
	"context"
	"errors"
)

// ErrBusy is returned by WithTryLock when another invocation holds the lock.
var ErrBusy = errors.New("another svcimage invocation is running")

// Locker provides mutual exclusion with context support.
type Locker interface {
	Lock(ctx context.Context) error
	Unlock(ctx context.Context) error
	TryLock(ctx context.Context) (bool, error)
}

// WithLock runs fn while holding l, blocking until the lock is available.
func WithLock(ctx context.Context, l Locker, fn func() error) error {
	if err := l.Lock(ctx); err != nil {
		return err
	}
	defer l.Unlock(ctx) //nolint:errcheck
	return fn()
}

// WithTryLock runs fn while holding l, failing fast with ErrBusy when the
// lock is already held. Install and remove mutate shared platform state, so
// concurrent invocations on one host are refused rather than queued.
func WithTryLock(ctx context.Context, l Locker, fn func() error) error {
	ok, err := l.TryLock(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return ErrBusy
	}
	defer l.Unlock(ctx) //nolint:errcheck
	return fn()
}
