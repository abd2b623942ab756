package stocksync

import (
	"time"

	"github.com/gofiber/fiber/v2/log"

	"github.com/vpsdeals/vpsdeals/internal/pkg/cache"
)

const (
	runLockKey = "stocksync:run-lock"
	runLockTTL = 5 * time.Minute
)

// RunLock is the single-flight guard around a reconciliation run. Two
// overlapping runs against the same storage are otherwise possible since
// nothing in the engine serializes invocations.
type RunLock interface {
	// Acquire takes the lease. ok is false when another run holds it.
	Acquire(runID string) (ok bool, err error)
	Release()
}

// cacheRunLock leases a redis key with a TTL so a crashed run cannot
// wedge the scheduler forever.
type cacheRunLock struct{}

// NewRunLock returns the cache-backed single-flight guard.
func NewRunLock() RunLock {
	return &cacheRunLock{}
}

func (l *cacheRunLock) Acquire(runID string) (bool, error) {
	return cache.SetNX(runLockKey, runID, runLockTTL)
}

func (l *cacheRunLock) Release() {
	if err := cache.Delete(runLockKey); err != nil {
		log.Warnf("[StockSync] releasing run lock failed: %v", err)
	}
}

// noopRunLock is used in tests and when the guard is deliberately
// disabled.
type noopRunLock struct{}

func (noopRunLock) Acquire(string) (bool, error) { return true, nil }
func (noopRunLock) Release()                     {}
