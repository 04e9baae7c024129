package hours

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// MemoryRepository in-process хранилище рабочих часов
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[int64]domain.BusinessHours
}

// NewMemoryRepository создает пустое хранилище
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[int64]domain.BusinessHours)}
}

func (m *MemoryRepository) GetByBusinessID(ctx context.Context, businessID int64) (*domain.BusinessHours, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	h, ok := m.items[businessID]
	if !ok {
		return nil, ErrHoursNotFound
	}
	return &h, nil
}

func (m *MemoryRepository) Upsert(ctx context.Context, h *domain.BusinessHours) (*domain.BusinessHours, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	stored := *h
	stored.UpdatedAt = now
	if existing, ok := m.items[h.BusinessID]; ok {
		stored.CreatedAt = existing.CreatedAt
	} else {
		stored.CreatedAt = now
	}
	m.items[h.BusinessID] = stored

	out := stored
	return &out, nil
}
