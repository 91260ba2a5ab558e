package keymutex

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockUnlock(t *testing.T) {
	m := New()

	require.NoError(t, m.Lock(context.Background(), "a"))
	m.Unlock("a")

	require.NoError(t, m.Lock(context.Background(), "a"))
	m.Unlock("a")
}

func TestDifferentKeysDoNotContend(t *testing.T) {
	m := New()

	require.NoError(t, m.Lock(context.Background(), "a"))
	defer m.Unlock("a")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, m.Lock(ctx, "b"))
	m.Unlock("b")
}

func TestLockTimeout(t *testing.T) {
	m := New()

	require.NoError(t, m.Lock(context.Background(), "a"))
	defer m.Unlock("a")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := m.Lock(ctx, "a")
	assert.ErrorIs(t, err, ErrLockTimeout)
}

func TestSerializesSameKey(t *testing.T) {
	m := New()

	const workers = 32
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			require.NoError(t, m.Lock(context.Background(), "slot"))
			counter++
			m.Unlock("slot")
		}()
	}
	wg.Wait()

	assert.Equal(t, workers, counter)
}

func TestEntryEvictedAfterLastUnlock(t *testing.T) {
	m := New()

	require.NoError(t, m.Lock(context.Background(), "a"))
	m.Unlock("a")

	m.mu.Lock()
	defer m.mu.Unlock()
	assert.Empty(t, m.locks)
}

func TestUnlockUnheldPanics(t *testing.T) {
	m := New()
	assert.Panics(t, func() { m.Unlock("nope") })
}
