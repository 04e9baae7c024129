package reservation

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// MemoryRepository in-process хранилище резерваций.
// Проверка уникальности активной резервации на слот выполняется под той же блокировкой, что и вставка.
type MemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]*domain.Reservation
	active map[string]int64 // slot key -> reservation id
	now    func() time.Time
}

// NewMemoryRepository создает пустое in-memory хранилище
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		nextID: 1,
		items:  make(map[int64]*domain.Reservation),
		active: make(map[string]int64),
		now:    time.Now,
	}
}

// Create сохраняет резервацию, если слот свободен
func (m *MemoryRepository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := res.SlotKey()
	if res.IsActive() {
		if _, taken := m.active[key]; taken {
			return nil, fmt.Errorf("%w: slot=%s", ErrSlotTaken, key)
		}
	}

	now := m.now()
	stored := *res
	stored.ID = m.nextID
	stored.Date = domain.DateOnly(res.Date)
	stored.CreatedAt = now
	stored.UpdatedAt = now
	m.nextID++

	m.items[stored.ID] = &stored
	if stored.IsActive() {
		m.active[key] = stored.ID
	}

	out := stored
	return &out, nil
}

// GetByID получает резервацию по ID
func (m *MemoryRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	res, ok := m.items[id]
	if !ok {
		return nil, ErrReservationNotFound
	}
	out := *res
	return &out, nil
}

// GetByUserID получает резервации пользователя
func (m *MemoryRepository) GetByUserID(ctx context.Context, userID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return m.collect(false, func(r *domain.Reservation) bool {
		return r.UserID == userID && (status == nil || r.Status == *status)
	}), nil
}

// GetByFilter получает резервации бизнеса по фильтру
func (m *MemoryRepository) GetByFilter(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return m.collect(filter.SingleDay(), filter.Matches), nil
}

// UpdateStatus условно переводит резервацию из from в to
func (m *MemoryRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.ReservationStatus) (*domain.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	res, ok := m.items[id]
	if !ok || res.Status != from {
		return nil, fmt.Errorf("%w: id=%d, expected=%s", ErrStatusMismatch, id, from)
	}

	key := res.SlotKey()
	if to.HoldsSlot() && !from.HoldsSlot() {
		if _, taken := m.active[key]; taken {
			return nil, fmt.Errorf("%w: slot=%s", ErrSlotTaken, key)
		}
	}

	now := m.now()
	res.Status = to
	res.StatusChangedAt = &now
	res.UpdatedAt = now

	if to.HoldsSlot() {
		m.active[key] = id
	} else if m.active[key] == id {
		delete(m.active, key)
	}

	out := *res
	return &out, nil
}

// collect копирует подходящие резервации; ascending - по возрастанию времени (запрос на один день)
func (m *MemoryRepository) collect(ascending bool, match func(*domain.Reservation) bool) []*domain.Reservation {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*domain.Reservation, 0)
	for _, r := range m.items {
		if match(r) {
			cp := *r
			out = append(out, &cp)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.Date.Equal(b.Date) {
			if ascending {
				return a.Date.Before(b.Date)
			}
			return a.Date.After(b.Date)
		}
		if a.Time != b.Time {
			if ascending {
				return a.Time.IsBefore(b.Time)
			}
			return a.Time.IsAfter(b.Time)
		}
		return a.ID < b.ID
	})

	return out
}
