package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/availability"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	hoursRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/hours"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
)

var testDate = time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC)

type failingHours struct{}

func (failingHours) GetByBusinessID(context.Context, int64) (*domain.BusinessHours, error) {
	return nil, errors.New("connection reset")
}

func setup(t *testing.T) (*UseCase, *reservationRepo.MemoryRepository, *hoursRepo.MemoryRepository) {
	t.Helper()
	reservations := reservationRepo.NewMemoryRepository()
	hours := hoursRepo.NewMemoryRepository()
	catalog := catalogservice.NewStaticClient(catalogservice.Business{ID: 1, Name: "Salon"})
	return NewUseCase(reservations, hours, catalog, logger.NewNop()), reservations, hours
}

func TestUseCase_DefaultWindowAllAvailable(t *testing.T) {
	uc, _, _ := setup(t)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, Date: testDate.Add(13 * time.Hour)})
	require.NoError(t, err)

	assert.Equal(t, testDate, resp.Date)
	assert.Equal(t, domain.DefaultOperatingWindow(), resp.Window)
	require.Len(t, resp.Slots, 20)
	assert.Equal(t, 20, availability.CountAvailable(resp.Slots))
}

func TestUseCase_ActiveReservationsMarkedUnavailable(t *testing.T) {
	uc, reservations, _ := setup(t)
	ctx := context.Background()

	_, err := reservations.Create(ctx, &domain.Reservation{BusinessID: 1, Date: testDate, Time: "10:00", Status: domain.StatusPending})
	require.NoError(t, err)
	cancelled, err := reservations.Create(ctx, &domain.Reservation{BusinessID: 1, Date: testDate, Time: "11:00", Status: domain.StatusPending})
	require.NoError(t, err)
	_, err = reservations.UpdateStatus(ctx, cancelled.ID, domain.StatusPending, domain.StatusCancelled)
	require.NoError(t, err)

	resp, err := uc.Execute(ctx, &Request{BusinessID: 1, Date: testDate})
	require.NoError(t, err)

	assert.False(t, availability.IsAvailable(resp.Slots, "10:00"))
	assert.True(t, availability.IsAvailable(resp.Slots, "11:00"))
	assert.Equal(t, 19, availability.CountAvailable(resp.Slots))
}

func TestUseCase_ConfiguredWindow(t *testing.T) {
	uc, _, hours := setup(t)

	_, err := hours.Upsert(context.Background(), &domain.BusinessHours{BusinessID: 1, Window: domain.OperatingWindow{StartHour: 10, EndHour: 12}})
	require.NoError(t, err)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, Date: testDate})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 4)
	assert.Equal(t, "10:00", resp.Slots[0].Time.String())
}

func TestUseCase_Errors(t *testing.T) {
	uc, _, _ := setup(t)
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{BusinessID: 0, Date: testDate})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Execute(ctx, &Request{BusinessID: 1})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Execute(ctx, &Request{BusinessID: 99, Date: testDate})
	assert.ErrorIs(t, err, ErrBusinessNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUseCase_HoursFailure(t *testing.T) {
	catalog := catalogservice.NewStaticClient(catalogservice.Business{ID: 1})
	uc := NewUseCase(reservationRepo.NewMemoryRepository(), failingHours{}, catalog, logger.NewNop())

	_, err := uc.Execute(context.Background(), &Request{BusinessID: 1, Date: testDate})
	assert.ErrorIs(t, err, domain.ErrInternal)
}
