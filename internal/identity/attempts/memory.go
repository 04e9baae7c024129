package attempts

import (
	"context"
	"sync"
	"time"
)

type record struct {
	count       int
	lastAttempt time.Time
}

// MemoryLimiter in-process limiter. The lockout window is measured from
// the last attempt that was let through.
type MemoryLimiter struct {
	mu      sync.Mutex
	cfg     Config
	records map[string]record
	now     func() time.Time
}

func NewMemoryLimiter(cfg Config) *MemoryLimiter {
	return &MemoryLimiter{
		cfg:     cfg.withDefaults(),
		records: make(map[string]record),
		now:     time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	rec, ok := l.records[key]

	if !ok || now.Sub(rec.lastAttempt) > l.cfg.Lockout {
		l.records[key] = record{count: 1, lastAttempt: now}
		return true, nil
	}

	if rec.count >= l.cfg.MaxAttempts {
		return false, nil
	}

	l.records[key] = record{count: rec.count + 1, lastAttempt: now}
	return true, nil
}

func (l *MemoryLimiter) Reset(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.records, key)
	return nil
}

func (l *MemoryLimiter) Release(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.records[key]
	if !ok {
		return nil
	}
	if rec.count <= 1 {
		delete(l.records, key)
		return nil
	}
	rec.count--
	l.records[key] = rec
	return nil
}

// Sweep drops records whose lockout window has passed.
func (l *MemoryLimiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0
	for key, rec := range l.records {
		if now.Sub(rec.lastAttempt) > l.cfg.Lockout {
			delete(l.records, key)
			removed++
		}
	}
	return removed
}
