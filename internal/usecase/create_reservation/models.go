package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Request модель запроса на создание резервации
type Request struct {
	BusinessID    int64            `validate:"gt=0"`
	ServiceID     int64            `validate:"gt=0"`
	UserID        int64            `validate:"gt=0"` // ID пользователя из заголовка X-User-ID
	Date          time.Time        // Дата резервации (время суток игнорируется)
	Time          types.TimeString `validate:"required"`
	CustomerName  string           `validate:"required,max=200"`
	CustomerEmail string           `validate:"required,email,max=254"`
}

// Response модель ответа с созданной резервацией
type Response struct {
	ID            int64
	BusinessID    int64
	ServiceID     int64
	UserID        int64
	Date          time.Time
	Time          types.TimeString
	Status        string
	CustomerName  string
	CustomerEmail string

	// Денормализованные данные услуги
	ServiceName  string
	ServicePrice float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ToDomain восстанавливает доменную резервацию из ответа
func (r *Response) ToDomain() *domain.Reservation {
	return &domain.Reservation{
		ID:            r.ID,
		BusinessID:    r.BusinessID,
		ServiceID:     r.ServiceID,
		UserID:        r.UserID,
		Date:          r.Date,
		Time:          r.Time,
		Status:        domain.ReservationStatus(r.Status),
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		ServiceName:   r.ServiceName,
		ServicePrice:  r.ServicePrice,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func fromDomain(r *domain.Reservation) *Response {
	return &Response{
		ID:            r.ID,
		BusinessID:    r.BusinessID,
		ServiceID:     r.ServiceID,
		UserID:        r.UserID,
		Date:          r.Date,
		Time:          r.Time,
		Status:        string(r.Status),
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		ServiceName:   r.ServiceName,
		ServicePrice:  r.ServicePrice,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
