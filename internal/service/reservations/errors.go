package reservations

import (
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

var (
	// ErrReservationNotFound возвращается, когда резервация не найдена
	ErrReservationNotFound = fmt.Errorf("reservation not found: %w", domain.ErrNotFound)

	// ErrInvalidTransition возвращается, когда резервация уже не в статусе pending
	ErrInvalidTransition = fmt.Errorf("reservation status cannot be changed: %w", domain.ErrInvalidTransition)

	// ErrInvalidStatus возвращается при попытке установить недопустимый статус
	ErrInvalidStatus = fmt.Errorf("invalid reservation status: %w", domain.ErrValidation)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("invalid input data: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("service: %w", domain.ErrInternal)
)
