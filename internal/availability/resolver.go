package availability

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Resolve returns the full slot set for date with Available=false on every slot
// held by a pending or confirmed reservation of the business on that day.
// Reservations of other businesses or days are ignored.
func Resolve(
	date time.Time,
	businessID int64,
	window domain.OperatingWindow,
	reservations []*domain.Reservation,
) []domain.TimeSlot {
	taken := make(map[types.TimeString]struct{}, len(reservations))
	for _, r := range reservations {
		if r == nil || r.BusinessID != businessID || !domain.SameDay(r.Date, date) || !r.IsActive() {
			continue
		}
		taken[r.Time] = struct{}{}
	}

	slots := GenerateSlots(date, window)
	for i := range slots {
		if _, ok := taken[slots[i].Time]; ok {
			slots[i].Available = false
		}
	}

	return slots
}

// IsAvailable reports whether t is a free slot in slots
func IsAvailable(slots []domain.TimeSlot, t types.TimeString) bool {
	for _, s := range slots {
		if s.Time == t {
			return s.Available
		}
	}
	return false
}

// CountAvailable number of free slots
func CountAvailable(slots []domain.TimeSlot) int {
	n := 0
	for _, s := range slots {
		if s.Available {
			n++
		}
	}
	return n
}
