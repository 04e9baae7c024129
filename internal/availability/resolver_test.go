package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

func reservation(businessID int64, t types.TimeString, status domain.ReservationStatus) *domain.Reservation {
	return &domain.Reservation{BusinessID: businessID, Date: day, Time: t, Status: status}
}

func TestResolve_NoReservations(t *testing.T) {
	slots := Resolve(day, 1, domain.DefaultOperatingWindow(), nil)

	require.Len(t, slots, 20)
	assert.Equal(t, 20, CountAvailable(slots))
}

func TestResolve_ActiveReservationsBlock(t *testing.T) {
	slots := Resolve(day, 1, domain.DefaultOperatingWindow(), []*domain.Reservation{
		reservation(1, "10:00", domain.StatusPending),
		reservation(1, "11:30", domain.StatusConfirmed),
	})

	require.Len(t, slots, 20)
	assert.False(t, IsAvailable(slots, "10:00"))
	assert.False(t, IsAvailable(slots, "11:30"))
	assert.True(t, IsAvailable(slots, "10:30"))
	assert.Equal(t, 18, CountAvailable(slots))
}

func TestResolve_IgnoresCancelledOtherBusinessesAndDays(t *testing.T) {
	otherDay := reservation(1, "12:00", domain.StatusConfirmed)
	otherDay.Date = day.AddDate(0, 0, 1)

	slots := Resolve(day, 1, domain.DefaultOperatingWindow(), []*domain.Reservation{
		reservation(1, "10:00", domain.StatusCancelled),
		reservation(2, "10:30", domain.StatusConfirmed),
		otherDay,
		nil,
	})

	assert.Equal(t, 20, CountAvailable(slots))
}

func TestResolve_ReservationOutsideWindowIgnored(t *testing.T) {
	slots := Resolve(day, 1, domain.OperatingWindow{StartHour: 9, EndHour: 10}, []*domain.Reservation{
		reservation(1, "15:00", domain.StatusConfirmed),
	})

	require.Len(t, slots, 2)
	assert.Equal(t, 2, CountAvailable(slots))
}
