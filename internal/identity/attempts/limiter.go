// Package attempts counts consecutive attempts per key and locks a key out
// after too many of them. A successful attempt resets the counter; a released
// attempt is not counted at all.
package attempts

import (
	"context"
	"errors"
	"time"
)

// Defaults: five attempts, then a fifteen minute lockout
const (
	DefaultMaxAttempts = 5
	DefaultLockout     = 15 * time.Minute
)

// ErrBackend counter storage failed
var ErrBackend = errors.New("attempts: backend error")

// Limiter records an attempt for key and reports whether it may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Reset(ctx context.Context, key string) error
	// Release takes back one attempt recorded by Allow
	Release(ctx context.Context, key string) error
}

// Config limiter parameters
type Config struct {
	MaxAttempts int
	Lockout     time.Duration
}

func (c Config) withDefaults() Config {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.Lockout <= 0 {
		c.Lockout = DefaultLockout
	}
	return c
}
