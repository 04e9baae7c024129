package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Request модель запроса на получение слотов
type Request struct {
	BusinessID int64     // ID бизнеса
	Date       time.Time // Дата (время суток игнорируется)
}

// Response полный набор слотов дня с отметкой доступности
type Response struct {
	Date       time.Time
	BusinessID int64
	Window     domain.OperatingWindow
	Slots      []domain.TimeSlot
}
