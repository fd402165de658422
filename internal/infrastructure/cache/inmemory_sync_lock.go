package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/frituurapp/backend/internal/domain/possync"
)

// lockEntry represents a held lock with expiration
type lockEntry struct {
	expiresAt time.Time
}

// InMemorySyncLock implements SyncLock using an in-memory map.
// Suitable for single-instance deployments and testing.
type InMemorySyncLock struct {
	mu    sync.Mutex
	locks map[uuid.UUID]lockEntry
}

// NewInMemorySyncLock creates a new in-memory sync lock
func NewInMemorySyncLock() *InMemorySyncLock {
	return &InMemorySyncLock{
		locks: make(map[uuid.UUID]lockEntry),
	}
}

// TryLock attempts to acquire the shop's sync lock without blocking
func (l *InMemorySyncLock) TryLock(ctx context.Context, shopID uuid.UUID, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if e, exists := l.locks[shopID]; exists {
		if time.Now().Before(e.expiresAt) {
			return false, nil
		}
		// Held lock expired, can be taken over
	}

	l.locks[shopID] = lockEntry{
		expiresAt: time.Now().Add(ttl),
	}
	return true, nil
}

// Unlock releases the shop's sync lock
func (l *InMemorySyncLock) Unlock(ctx context.Context, shopID uuid.UUID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.locks, shopID)
	return nil
}

// Size returns the number of held locks (for testing/monitoring)
func (l *InMemorySyncLock) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

// Ensure InMemorySyncLock implements SyncLock
var _ possync.SyncLock = (*InMemorySyncLock)(nil)
