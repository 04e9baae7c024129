package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Типы событий жизненного цикла резервации
const (
	TypeReservationCreated   = "reservation.created"
	TypeReservationConfirmed = "reservation.confirmed"
	TypeReservationCancelled = "reservation.cancelled"
)

// Event событие жизненного цикла резервации
type Event struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	ReservationID int64     `json:"reservationId"`
	BusinessID    int64     `json:"businessId"`
	ServiceID     int64     `json:"serviceId"`
	UserID        int64     `json:"userId"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// NewReservationEvent собирает событие по резервации
func NewReservationEvent(eventType string, r *domain.Reservation, occurredAt time.Time) Event {
	return Event{
		ID:            uuid.NewString(),
		Type:          eventType,
		ReservationID: r.ID,
		BusinessID:    r.BusinessID,
		ServiceID:     r.ServiceID,
		UserID:        r.UserID,
		Date:          r.Date.Format(domain.DateFormat),
		Time:          r.Time.String(),
		Status:        string(r.Status),
		OccurredAt:    occurredAt.UTC(),
	}
}

// TypeForStatus тип события для перехода в статус
func TypeForStatus(status domain.ReservationStatus) string {
	switch status {
	case domain.StatusConfirmed:
		return TypeReservationConfirmed
	case domain.StatusCancelled:
		return TypeReservationCancelled
	default:
		return TypeReservationCreated
	}
}
