package domain

import (
	"fmt"
	"time"
)

// OperatingWindow daily hours during which slots are offered, [StartHour, EndHour)
type OperatingWindow struct {
	StartHour int
	EndHour   int
}

// DefaultOperatingWindow 09:00-19:00
func DefaultOperatingWindow() OperatingWindow {
	return OperatingWindow{StartHour: DefaultStartHour, EndHour: DefaultEndHour}
}

// Validate checks 0 <= start < end <= 24
func (w OperatingWindow) Validate() error {
	if w.StartHour < MinHour || w.EndHour > MaxHour || w.StartHour >= w.EndHour {
		return fmt.Errorf("%w: operating window %02d-%02d", ErrValidation, w.StartHour, w.EndHour)
	}
	return nil
}

// SlotCount number of slots the window yields
func (w OperatingWindow) SlotCount() int {
	if w.EndHour <= w.StartHour {
		return 0
	}
	return (w.EndHour - w.StartHour) * 60 / SlotGranularityMinutes
}

// BusinessHours operating window configured by a business
type BusinessHours struct {
	BusinessID int64
	Window     OperatingWindow
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
