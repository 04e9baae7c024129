package booking_session

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_month_grid"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/workflow"
)

// CreateSessionRequest HTTP request model
type CreateSessionRequest struct {
	Locale string `json:"locale,omitempty"`
}

// NavigateRequest смена отображаемого месяца
type NavigateRequest struct {
	Direction string `json:"direction"` // "next" | "prev"
}

// SelectDateRequest выбор даты
type SelectDateRequest struct {
	Date string `json:"date"` // "2025-10-15"
}

// SelectTimeRequest выбор времени
type SelectTimeRequest struct {
	Time string `json:"time"` // "10:00"
}

// SubmitRequest данные клиента
type SubmitRequest struct {
	ServiceID     int64  `json:"serviceId"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
}

// ToDetails конвертирует запрос в данные клиента
func (r *SubmitRequest) ToDetails() workflow.CustomerDetails {
	return workflow.CustomerDetails{
		ServiceID: r.ServiceID,
		Name:      r.CustomerName,
		Email:     r.CustomerEmail,
	}
}

// SessionResponse состояние сессии бронирования
type SessionResponse struct {
	SessionID   string                            `json:"sessionId"`
	BusinessID  int64                             `json:"businessId"`
	State       string                            `json:"state"`
	Calendar    *get_month_grid.MonthGridResponse `json:"calendar"`
	Date        *string                           `json:"date,omitempty"`
	Time        *string                           `json:"time,omitempty"`
	Slots       []Slot                            `json:"slots,omitempty"`
	Reservation *Reservation                      `json:"reservation,omitempty"`
	Accepted    *bool                             `json:"accepted,omitempty"` // false, если действие проигнорировано
}

// Slot слот выбранной даты
type Slot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// Reservation созданная резервация
type Reservation struct {
	ID     int64  `json:"id"`
	Date   string `json:"date"`
	Time   string `json:"time"`
	Status string `json:"status"`
}

// NewSessionResponse собирает ответ из контроллера
func NewSessionResponse(id string, c *workflow.Controller, grid *domain.MonthGrid) *SessionResponse {
	resp := &SessionResponse{
		SessionID:  id,
		BusinessID: c.BusinessID(),
	}
	if grid != nil {
		resp.Calendar = get_month_grid.FromDomainGrid(grid)
	}

	sel := c.Selection()
	resp.State = string(sel.State())

	switch s := sel.(type) {
	case workflow.DateChosen:
		resp.Date = formatDate(s.Date)
		resp.Slots = toSlots(s.Slots)
	case workflow.SlotChosen:
		resp.Date = formatDate(s.Date)
		t := s.Time.String()
		resp.Time = &t
		resp.Slots = toSlots(s.Slots)
	case workflow.Submitting:
		resp.Date = formatDate(s.Date)
		t := s.Time.String()
		resp.Time = &t
	case workflow.Submitted:
		r := s.Reservation
		resp.Reservation = &Reservation{
			ID:     r.ID,
			Date:   r.Date.Format(domain.DateFormat),
			Time:   r.Time.String(),
			Status: string(r.Status),
		}
	}

	return resp
}

func formatDate(d time.Time) *string {
	s := d.Format(domain.DateFormat)
	return &s
}

func toSlots(slots []domain.TimeSlot) []Slot {
	out := make([]Slot, len(slots))
	for i, s := range slots {
		out[i] = Slot{Time: s.Time.String(), Available: s.Available}
	}
	return out
}
