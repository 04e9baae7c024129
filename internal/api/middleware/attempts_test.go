package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ReservationService/internal/identity/attempts"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
)

type brokenLimiter struct{}

func (brokenLimiter) Allow(context.Context, string) (bool, error) {
	return false, errors.New("redis unavailable")
}
func (brokenLimiter) Reset(context.Context, string) error { return nil }
func (brokenLimiter) Release(context.Context, string) error { return nil }

func guarded(limiter AttemptLimiter, status *int) http.Handler {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(*status)
	})
	return AttemptGuard(limiter, "reservations", logger.NewNop())(next)
}

func call(h http.Handler, userID int64) int {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", nil)
	req = req.WithContext(WithUserID(req.Context(), userID))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestAttemptGuard_LocksAfterFailures(t *testing.T) {
	limiter := attempts.NewMemoryLimiter(attempts.Config{MaxAttempts: 2, Lockout: time.Minute})
	status := http.StatusBadRequest
	h := guarded(limiter, &status)

	assert.Equal(t, http.StatusBadRequest, call(h, 1))
	assert.Equal(t, http.StatusBadRequest, call(h, 1))
	assert.Equal(t, http.StatusTooManyRequests, call(h, 1))

	// Другой пользователь не затронут
	assert.Equal(t, http.StatusBadRequest, call(h, 2))
}

func TestAttemptGuard_SlotConflictIsNotCounted(t *testing.T) {
	limiter := attempts.NewMemoryLimiter(attempts.Config{MaxAttempts: 2, Lockout: time.Minute})
	status := http.StatusConflict
	h := guarded(limiter, &status)

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusConflict, call(h, 1))
	}

	status = http.StatusBadRequest
	assert.Equal(t, http.StatusBadRequest, call(h, 1))
	status = http.StatusConflict
	assert.Equal(t, http.StatusConflict, call(h, 1))
	status = http.StatusBadRequest
	assert.Equal(t, http.StatusBadRequest, call(h, 1))
	assert.Equal(t, http.StatusTooManyRequests, call(h, 1))
}

func TestAttemptGuard_SuccessResets(t *testing.T) {
	limiter := attempts.NewMemoryLimiter(attempts.Config{MaxAttempts: 2, Lockout: time.Minute})
	status := http.StatusBadRequest
	h := guarded(limiter, &status)

	assert.Equal(t, http.StatusBadRequest, call(h, 1))

	status = http.StatusCreated
	assert.Equal(t, http.StatusCreated, call(h, 1))

	status = http.StatusBadRequest
	assert.Equal(t, http.StatusBadRequest, call(h, 1))
	assert.Equal(t, http.StatusBadRequest, call(h, 1))
	assert.Equal(t, http.StatusTooManyRequests, call(h, 1))
}

func TestAttemptGuard_LimiterFailureLetsRequestThrough(t *testing.T) {
	status := http.StatusCreated
	h := guarded(brokenLimiter{}, &status)

	assert.Equal(t, http.StatusCreated, call(h, 1))
}
