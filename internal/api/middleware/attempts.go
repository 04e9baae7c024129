package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
)

// AttemptLimiter счётчик попыток с блокировкой по ключу
type AttemptLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Reset(ctx context.Context, key string) error
	Release(ctx context.Context, key string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// AttemptGuard ограничивает число неуспешных попыток пользователя.
// Успешный ответ (код < 400) сбрасывает счётчик, конфликт слота (409) не считается попыткой.
// При недоступном хранилище запрос пропускается.
func AttemptGuard(limiter AttemptLimiter, scope string, log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := GetUserID(r.Context())
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			key := fmt.Sprintf("%s:%d", scope, userID)
			allowed, err := limiter.Allow(r.Context(), key)
			if err != nil {
				log.Error("AttemptGuard: limiter error for key=%s: %v", key, err)
			} else if !allowed {
				log.Warn("AttemptGuard: attempts exhausted for key=%s", key)
				handlers.RespondTooManyRequests(w)
				return
			}

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			switch {
			case rec.status < http.StatusBadRequest:
				if err := limiter.Reset(r.Context(), key); err != nil {
					log.Error("AttemptGuard: failed to reset key=%s: %v", key, err)
				}
			case rec.status == http.StatusConflict:
				if err := limiter.Release(r.Context(), key); err != nil {
					log.Error("AttemptGuard: failed to release key=%s: %v", key, err)
				}
			}
		})
	}
}
