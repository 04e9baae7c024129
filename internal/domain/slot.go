package domain

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// TimeSlot represents one bookable start time on a date. Never persisted.
type TimeSlot struct {
	Date      time.Time
	Time      types.TimeString
	Available bool
}
