package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
)

// ParseReservationStatus converts a raw string into a known status
func ParseReservationStatus(s string) (ReservationStatus, error) {
	status := ReservationStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: unknown reservation status %q", ErrValidation, s)
	}
	return status, nil
}

// IsValid returns true for the three known statuses
func (s ReservationStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// HoldsSlot returns true if a reservation in this status blocks its slot
func (s ReservationStatus) HoldsSlot() bool {
	return s == StatusPending || s == StatusConfirmed
}

// CanTransitionTo encodes pending -> confirmed | cancelled
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	return s == StatusPending && (next == StatusConfirmed || next == StatusCancelled)
}

// Reservation represents a customer's claim on one slot of one business
type Reservation struct {
	ID            int64
	BusinessID    int64
	ServiceID     int64
	UserID        int64
	Date          time.Time
	Time          types.TimeString
	Status        ReservationStatus
	CustomerName  string
	CustomerEmail string

	// Denormalized service data for history
	ServiceName  string
	ServicePrice float64

	StatusChangedAt *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsActive returns true if the reservation holds its slot
func (r *Reservation) IsActive() bool {
	return r.Status.HoldsSlot()
}

// OccupiesSlot returns true if the reservation blocks the given slot of the business
func (r *Reservation) OccupiesSlot(businessID int64, date time.Time, t types.TimeString) bool {
	return r.BusinessID == businessID && SameDay(r.Date, date) && r.Time == t && r.IsActive()
}

// SlotKey identifies the (business, date, time) triple the uniqueness invariant is about
func (r *Reservation) SlotKey() string {
	return SlotKey(r.BusinessID, r.Date, r.Time)
}

// SlotKey builds a key for a business slot
func SlotKey(businessID int64, date time.Time, t types.TimeString) string {
	return fmt.Sprintf("%d/%s/%s", businessID, date.Format(DateFormat), t)
}

// DayKey builds a key for all slots of a business on one day
func DayKey(businessID int64, date time.Time) string {
	return fmt.Sprintf("%d/%s", businessID, date.Format(DateFormat))
}

// ReservationFilter фильтр для получения резерваций бизнеса
type ReservationFilter struct {
	BusinessID      int64              // Обязательный параметр
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *ReservationStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отменённые резервации
}

// SingleDay returns true when the filter targets exactly one calendar day
func (f ReservationFilter) SingleDay() bool {
	return f.StartDate != nil && f.EndDate != nil && SameDay(*f.StartDate, *f.EndDate)
}

// Matches applies the filter to a reservation in memory
func (f ReservationFilter) Matches(r *Reservation) bool {
	if r.BusinessID != f.BusinessID {
		return false
	}
	day := DateOnly(r.Date)
	if f.StartDate != nil && day.Before(DateOnly(*f.StartDate)) {
		return false
	}
	if f.EndDate != nil && day.After(DateOnly(*f.EndDate)) {
		return false
	}
	if f.Status != nil {
		return r.Status == *f.Status
	}
	return f.IncludeInactive || r.IsActive()
}
