package flock

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/projecteru2/svcimage/lock"
)

func TestTryLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.lock")
	ctx := context.Background()

	l := New(path)
	ok, err := l.TryLock(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, l.Unlock(ctx))

	// Reacquirable after release.
	ok, err = l.TryLock(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, l.Unlock(ctx))
}

func TestWithTryLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.lock")
	ctx := context.Background()

	ran := false
	err := lock.WithTryLock(ctx, New(path), func() error {
		ran = true
		return nil
	})
	require.NoError(t, err)
	require.True(t, ran)
}
