package domain

import "errors"

// Error kinds shared by all layers. Packages wrap them with %w so callers
// can dispatch with errors.Is regardless of where the error originated.
var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrSlotConflict      = errors.New("slot already reserved")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInternal          = errors.New("internal error")
)
