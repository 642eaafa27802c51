package concurrency

import (
	"sync"

	"github.com/google/uuid"
)

// LockManager hands out one mutex per wheel.
// Spins, resets and removals on the same wheel run one at a time inside a process;
// different wheels never block each other.
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns the mutex for the given wheel, creating it on first use
func (lm *LockManager) GetLock(wheelID uuid.UUID) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(wheelID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// Lock acquires the wheel's mutex and returns the matching unlock func
func (lm *LockManager) Lock(wheelID uuid.UUID) func() {
	mu := lm.GetLock(wheelID)
	mu.Lock()
	return mu.Unlock
}

// Forget drops the mutex for a deleted wheel
func (lm *LockManager) Forget(wheelID uuid.UUID) {
	lm.locks.Delete(wheelID)
}
