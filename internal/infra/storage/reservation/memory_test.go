package reservation

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

func TestMemoryRepository_CreateEnforcesSlotUniqueness(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	first, err := repo.Create(ctx, newReservation())
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)

	_, err = repo.Create(ctx, newReservation())
	assert.ErrorIs(t, err, ErrSlotTaken)

	other := newReservation()
	other.Time = "10:30"
	_, err = repo.Create(ctx, other)
	assert.NoError(t, err)
}

func TestMemoryRepository_ConcurrentCreates(t *testing.T) {
	repo := NewMemoryRepository()

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(context.Background(), newReservation())
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successes++
			} else if assert.ErrorIs(t, err, ErrSlotTaken) {
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, 19, conflicts)
}

func TestMemoryRepository_CancelFreesSlot(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, newReservation())
	require.NoError(t, err)

	cancelled, err := repo.UpdateStatus(ctx, created.ID, domain.StatusPending, domain.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)
	assert.NotNil(t, cancelled.StatusChangedAt)

	_, err = repo.Create(ctx, newReservation())
	assert.NoError(t, err)
}

func TestMemoryRepository_UpdateStatusMismatch(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, newReservation())
	require.NoError(t, err)

	_, err = repo.UpdateStatus(ctx, created.ID, domain.StatusPending, domain.StatusConfirmed)
	require.NoError(t, err)

	_, err = repo.UpdateStatus(ctx, created.ID, domain.StatusPending, domain.StatusCancelled)
	assert.ErrorIs(t, err, ErrStatusMismatch)

	_, err = repo.UpdateStatus(ctx, 999, domain.StatusPending, domain.StatusCancelled)
	assert.ErrorIs(t, err, ErrStatusMismatch)
}

func TestMemoryRepository_Queries(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	for _, slot := range []string{"11:00", "09:30", "10:00"} {
		r := newReservation()
		r.Time = types.TimeString(slot)
		_, err := repo.Create(ctx, r)
		require.NoError(t, err)
	}
	cancelled, err := repo.UpdateStatus(ctx, 1, domain.StatusPending, domain.StatusCancelled)
	require.NoError(t, err)

	day := testDate
	active, err := repo.GetByFilter(ctx, domain.ReservationFilter{BusinessID: 1, StartDate: &day, EndDate: &day})
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "09:30", active[0].Time.String())
	assert.Equal(t, "10:00", active[1].Time.String())

	all, err := repo.GetByFilter(ctx, domain.ReservationFilter{BusinessID: 1, IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	status := domain.StatusCancelled
	byUser, err := repo.GetByUserID(ctx, 100, &status)
	require.NoError(t, err)
	require.Len(t, byUser, 1)
	assert.Equal(t, cancelled.ID, byUser[0].ID)

	_, err = repo.GetByID(ctx, 42)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, newReservation())
	require.NoError(t, err)
	created.Status = domain.StatusCancelled

	stored, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, stored.Status)
}
