// Package sessions keeps booking workflow controllers addressable by an opaque id.
package sessions

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/workflow"
)

const (
	DefaultTTL           = 30 * time.Minute
	DefaultSweepInterval = time.Minute
)

// ErrSessionNotFound unknown or expired session id
var ErrSessionNotFound = fmt.Errorf("booking session not found: %w", domain.ErrNotFound)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Config registry settings; zero values fall back to defaults
type Config struct {
	TTL           time.Duration
	SweepInterval time.Duration
}

type session struct {
	controller *workflow.Controller
	lastSeen   time.Time
}

// Registry in-memory controllers with an idle TTL
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*session
	ttl      time.Duration
	interval time.Duration
	now      func() time.Time
	logger   Logger
}

// NewRegistry creates an empty registry
func NewRegistry(cfg Config, logger Logger) *Registry {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = DefaultSweepInterval
	}
	return &Registry{
		sessions: make(map[string]*session),
		ttl:      cfg.TTL,
		interval: cfg.SweepInterval,
		now:      time.Now,
		logger:   logger,
	}
}

// Add stores a controller under a fresh id
func (r *Registry) Add(c *workflow.Controller) string {
	id := uuid.NewString()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[id] = &session{controller: c, lastSeen: r.now()}
	return id
}

// Get returns the controller and refreshes its idle timer.
// The caller must own the session: a different user id yields ErrSessionNotFound.
func (r *Registry) Get(id string, userID int64) (*workflow.Controller, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok || r.expired(s) {
		delete(r.sessions, id)
		return nil, ErrSessionNotFound
	}
	if s.controller.UserID() != userID {
		return nil, ErrSessionNotFound
	}

	s.lastSeen = r.now()
	return s.controller, nil
}

// Remove drops a session; dropping never touches the reservation store
func (r *Registry) Remove(id string, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok || s.controller.UserID() != userID {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

// Len number of stored sessions, including expired ones not yet swept
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep removes sessions idle longer than the TTL, returning how many were removed
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, s := range r.sessions {
		if r.expired(s) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps periodically until ctx is done
func (r *Registry) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.logger.Info("BookingSessions: swept %d idle sessions", n)
			}
		}
	}
}

func (r *Registry) expired(s *session) bool {
	return r.now().Sub(s.lastSeen) > r.ttl
}
