package create_reservation

import (
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных (имя, email, идентификаторы)
	ErrInvalidInput = fmt.Errorf("create_reservation: invalid input data: %w", domain.ErrValidation)

	// ErrInvalidTimeSlot возвращается, когда время не совпадает ни с одним слотом рабочего окна
	ErrInvalidTimeSlot = fmt.Errorf("create_reservation: invalid time slot: %w", domain.ErrValidation)

	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = fmt.Errorf("create_reservation: business not found: %w", domain.ErrNotFound)

	// ErrServiceNotFound возвращается, когда услуга не найдена у бизнеса
	ErrServiceNotFound = fmt.Errorf("create_reservation: service not found: %w", domain.ErrNotFound)

	// ErrSlotConflict возвращается, когда слот уже занят активной резервацией
	ErrSlotConflict = fmt.Errorf("create_reservation: slot is not available: %w", domain.ErrSlotConflict)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("create_reservation: %w", domain.ErrInternal)
)
