// Package availability turns an operating window and existing reservations
// into the list of slots a customer can pick from.
package availability

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// GenerateSlots enumerates every slot of the window on date in chronological
// order, all marked available. An invalid window yields no slots.
func GenerateSlots(date time.Time, window domain.OperatingWindow) []domain.TimeSlot {
	count := window.SlotCount()
	slots := make([]domain.TimeSlot, 0, count)
	day := domain.DateOnly(date)

	for minutes := window.StartHour * 60; minutes < window.EndHour*60; minutes += domain.SlotGranularityMinutes {
		slots = append(slots, domain.TimeSlot{
			Date:      day,
			Time:      types.FromHourMinute(minutes/60, minutes%60),
			Available: true,
		})
	}

	return slots
}

// IsGeneratedSlot reports whether t is one of the start times GenerateSlots produces for window
func IsGeneratedSlot(window domain.OperatingWindow, t types.TimeString) bool {
	minutes, err := t.Minutes()
	if err != nil {
		return false
	}
	return minutes >= window.StartHour*60 &&
		minutes < window.EndHour*60 &&
		minutes%domain.SlotGranularityMinutes == 0
}
