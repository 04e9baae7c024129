package models

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// UpdateHoursRequest запрос на обновление рабочих часов
// Поля опциональны - непереданные значения берутся из текущего окна
type UpdateHoursRequest struct {
	UserID    int64 `json:"userId"`
	StartHour *int  `json:"startHour,omitempty"`
	EndHour   *int  `json:"endHour,omitempty"`
}

// ApplyToWindow применяет обновления к окну
func (r *UpdateHoursRequest) ApplyToWindow(window *domain.OperatingWindow) {
	if r.StartHour != nil {
		window.StartHour = *r.StartHour
	}
	if r.EndHour != nil {
		window.EndHour = *r.EndHour
	}
}

// HoursResponse ответ с рабочими часами бизнеса
type HoursResponse struct {
	BusinessID int64      `json:"businessId"`
	StartHour  int        `json:"startHour"`
	EndHour    int        `json:"endHour"`
	SlotCount  int        `json:"slotCount"`
	IsDefault  bool       `json:"isDefault"` // true, если окно не настроено
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}

// FromDomainHours конвертирует domain модель в DTO
func FromDomainHours(h *domain.BusinessHours) *HoursResponse {
	if h == nil {
		return nil
	}

	return &HoursResponse{
		BusinessID: h.BusinessID,
		StartHour:  h.Window.StartHour,
		EndHour:    h.Window.EndHour,
		SlotCount:  h.Window.SlotCount(),
		CreatedAt:  &h.CreatedAt,
		UpdatedAt:  &h.UpdatedAt,
	}
}

// DefaultHours возвращает DTO окна по умолчанию
func DefaultHours(businessID int64) *HoursResponse {
	window := domain.DefaultOperatingWindow()
	return &HoursResponse{
		BusinessID: businessID,
		StartHour:  window.StartHour,
		EndHour:    window.EndHour,
		SlotCount:  window.SlotCount(),
		IsDefault:  true,
	}
}
