package hours

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	hoursRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/hours"
	catalogClient "github.com/m04kA/SMC-ReservationService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-ReservationService/internal/service/hours/models"
)

// Service сервис для работы с рабочими часами бизнеса
type Service struct {
	hoursRepo     HoursRepository
	catalogClient CatalogClient
	logger        Logger
}

// NewService создает новый экземпляр сервиса рабочих часов
func NewService(
	hoursRepo HoursRepository,
	catalogClient CatalogClient,
	logger Logger,
) *Service {
	return &Service{
		hoursRepo:     hoursRepo,
		catalogClient: catalogClient,
		logger:        logger,
	}
}

// Get получает рабочее окно бизнеса
// Если окно не настроено, возвращается окно по умолчанию (09:00-19:00)
func (s *Service) Get(ctx context.Context, businessID int64) (*models.HoursResponse, error) {
	s.logger.Info("Get: fetching hours for business=%d", businessID)

	if businessID <= 0 {
		return nil, fmt.Errorf("%w: businessId must be positive", ErrInvalidInput)
	}

	hours, err := s.hoursRepo.GetByBusinessID(ctx, businessID)
	if err != nil {
		if errors.Is(err, hoursRepo.ErrHoursNotFound) {
			s.logger.Info("Get: no hours for business=%d, using default", businessID)
			return models.DefaultHours(businessID), nil
		}
		s.logger.Error("Get: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainHours(hours), nil
}

// Update обновляет рабочее окно бизнеса
// Поддерживает частичное обновление - непереданные поля берутся из текущего окна
func (s *Service) Update(ctx context.Context, businessID int64, req *models.UpdateHoursRequest) (*models.HoursResponse, error) {
	s.logger.Info("Update: updating hours for business=%d by user=%d", businessID, req.UserID)

	if businessID <= 0 {
		return nil, fmt.Errorf("%w: businessId must be positive", ErrInvalidInput)
	}

	// 1. Проверяем существование бизнеса
	if _, err := s.catalogClient.GetBusiness(ctx, businessID); err != nil {
		if errors.Is(err, catalogClient.ErrBusinessNotFound) {
			s.logger.Warn("Update: business id=%d not found", businessID)
			return nil, ErrBusinessNotFound
		}
		s.logger.Error("Update: failed to get business id=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	// 2. Текущее окно (или окно по умолчанию)
	window := domain.DefaultOperatingWindow()
	current, err := s.hoursRepo.GetByBusinessID(ctx, businessID)
	switch {
	case err == nil:
		window = current.Window
	case !errors.Is(err, hoursRepo.ErrHoursNotFound):
		s.logger.Error("Update: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	// 3. Применяем и валидируем
	req.ApplyToWindow(&window)
	if err := window.Validate(); err != nil {
		s.logger.Warn("Update: validation failed for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 4. Сохраняем
	saved, err := s.hoursRepo.Upsert(ctx, &domain.BusinessHours{BusinessID: businessID, Window: window})
	if err != nil {
		s.logger.Error("Update: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated hours for business=%d to %02d-%02d",
		businessID, window.StartHour, window.EndHour)
	return models.FromDomainHours(saved), nil
}
