package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/availability"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	hoursRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/hours"
	catalogClient "github.com/m04kA/SMC-ReservationService/internal/integrations/catalogservice"
)

// UseCase use case для получения слотов бизнеса на дату
type UseCase struct {
	reservationRepo ReservationRepository
	hoursRepo       HoursRepository
	catalogClient   CatalogClient
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	hoursRepo HoursRepository,
	catalogClient CatalogClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		hoursRepo:       hoursRepo,
		catalogClient:   catalogClient,
		logger:          logger,
	}
}

// Execute возвращает все слоты дня; занятые активными резервациями помечены недоступными.
// Прошедшие даты не отклоняются, это делает клиентский workflow.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)
	uc.logger.Info("GetAvailableSlots: business=%d, date=%s", req.BusinessID, date.Format(domain.DateFormat))

	// 2. Проверяем существование бизнеса
	if _, err := uc.catalogClient.GetBusiness(ctx, req.BusinessID); err != nil {
		if errors.Is(err, catalogClient.ErrBusinessNotFound) {
			uc.logger.Warn("GetAvailableSlots: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	// 3. Рабочие часы (по умолчанию 09:00-19:00)
	window, err := uc.operatingWindow(ctx, req.BusinessID)
	if err != nil {
		return nil, err
	}

	// 4. Активные резервации на дату
	filter := domain.ReservationFilter{
		BusinessID: req.BusinessID,
		StartDate:  &date,
		EndDate:    &date,
	}
	reservations, err := uc.reservationRepo.GetByFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	// 5. Разрешаем доступность
	slots := availability.Resolve(date, req.BusinessID, window, reservations)

	uc.logger.Info("GetAvailableSlots: business=%d, date=%s, %d/%d slots available",
		req.BusinessID, date.Format(domain.DateFormat), availability.CountAvailable(slots), len(slots))

	return &Response{
		Date:       date,
		BusinessID: req.BusinessID,
		Window:     window,
		Slots:      slots,
	}, nil
}

func (uc *UseCase) operatingWindow(ctx context.Context, businessID int64) (domain.OperatingWindow, error) {
	hours, err := uc.hoursRepo.GetByBusinessID(ctx, businessID)
	if err != nil {
		if errors.Is(err, hoursRepo.ErrHoursNotFound) {
			return domain.DefaultOperatingWindow(), nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get hours for business=%d: %v", businessID, err)
		return domain.OperatingWindow{}, fmt.Errorf("%w: failed to get hours: %v", ErrInternal, err)
	}
	return hours.Window, nil
}
