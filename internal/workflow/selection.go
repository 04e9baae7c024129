package workflow

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// State is the customer-facing step derived from the current selection
type State string

const (
	StateSelectingDate        State = "selecting_date"
	StateSelectingTime        State = "selecting_time"
	StateAwaitingConfirmation State = "awaiting_confirmation"
	StateSubmitted            State = "submitted"
)

// Selection is the closed set of selection values a controller can hold.
// A time is only ever held together with its date.
type Selection interface {
	State() State
	isSelection()
}

// NoSelection nothing chosen yet
type NoSelection struct{}

// DateChosen a bookable date with its resolved slots
type DateChosen struct {
	Date  time.Time
	Slots []domain.TimeSlot
}

// SlotChosen an available slot on the chosen date
type SlotChosen struct {
	Date  time.Time
	Time  types.TimeString
	Slots []domain.TimeSlot
}

// Submitting a create call is in flight for the chosen slot
type Submitting struct {
	Date time.Time
	Time types.TimeString
}

// Submitted the reservation has been persisted
type Submitted struct {
	Reservation *domain.Reservation
}

func (NoSelection) State() State { return StateSelectingDate }
func (DateChosen) State() State { return StateSelectingTime }
func (SlotChosen) State() State { return StateAwaitingConfirmation }
func (Submitting) State() State { return StateAwaitingConfirmation }
func (Submitted) State() State { return StateSubmitted }

func (NoSelection) isSelection() {}
func (DateChosen) isSelection() {}
func (SlotChosen) isSelection() {}
func (Submitting) isSelection() {}
func (Submitted) isSelection() {}
