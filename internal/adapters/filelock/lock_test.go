//go:build unix

package filelock

import (
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLock_Exclusive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "reset.lock")
	first := New(path)
	second := New(path)

	unlock, err := first.Lock()
	require.NoError(t, err)

	var acquired atomic.Bool
	done := make(chan struct{})
	go func() {
		defer close(done)
		unlockSecond, err := second.Lock()
		if err != nil {
			return
		}
		acquired.Store(true)
		_ = unlockSecond()
	}()

	time.Sleep(100 * time.Millisecond)
	assert.False(t, acquired.Load(), "second lock acquired while first is held")

	require.NoError(t, unlock())

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("second lock never acquired")
	}
	assert.True(t, acquired.Load())
}

func TestLock_Reacquire(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "reset.lock"))

	for i := 0; i < 3; i++ {
		unlock, err := l.Lock()
		require.NoError(t, err)
		require.NoError(t, unlock())
	}
}
