package keymutex

import (
	"context"
	"errors"
	"sync"
)

// ErrLockTimeout is returned when a lock could not be acquired before the
// context expired.
var ErrLockTimeout = errors.New("keymutex: lock acquisition timed out")

// KeyMutex provides mutual exclusion per string key. Different keys never
// contend with each other; acquiring the same key serializes callers.
// Locks are channel-based so acquisition can be bounded by a context.
type KeyMutex struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	ch   chan struct{} // capacity 1, full = unlocked
	refs int
}

// New creates an empty KeyMutex.
func New() *KeyMutex {
	return &KeyMutex{
		locks: make(map[string]*entry),
	}
}

// Lock acquires the mutex for key, waiting until it is available or the
// context is done. Returns ErrLockTimeout if the context expires first.
func (m *KeyMutex) Lock(ctx context.Context, key string) error {
	m.mu.Lock()
	e, ok := m.locks[key]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		e.ch <- struct{}{}
		m.locks[key] = e
	}
	e.refs++
	m.mu.Unlock()

	select {
	case <-e.ch:
		return nil
	case <-ctx.Done():
		m.release(key, e)
		return ErrLockTimeout
	}
}

// Unlock releases the mutex for key. Calling Unlock for a key that is not
// held is a programming error and panics, mirroring sync.Mutex.
func (m *KeyMutex) Unlock(key string) {
	m.mu.Lock()
	e, ok := m.locks[key]
	m.mu.Unlock()
	if !ok {
		panic("keymutex: unlock of unheld key " + key)
	}

	select {
	case e.ch <- struct{}{}:
	default:
		panic("keymutex: unlock of unheld key " + key)
	}

	m.release(key, e)
}

// release drops one reference and evicts the entry once nobody uses it,
// keeping the map from growing with every key ever locked.
func (m *KeyMutex) release(key string, e *entry) {
	m.mu.Lock()
	e.refs--
	if e.refs <= 0 {
		delete(m.locks, key)
	}
	m.mu.Unlock()
}
