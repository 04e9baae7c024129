package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/events"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

// Service сервис для работы с резервациями после создания
type Service struct {
	reservationRepo ReservationRepository
	publisher       EventPublisher
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса резерваций
func NewService(
	reservationRepo ReservationRepository,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		publisher:       publisher,
		metrics:         metrics,
		timeProvider:    realTimeProvider{},
		logger:          logger,
	}
}

// GetByID получает резервацию по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d", id)

	reservation, err := s.get(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched reservation id=%d", id)
	return models.FromDomainReservation(reservation), nil
}

// ListByUser получает историю резерваций пользователя
// Опционально фильтрует по статусу
func (s *Service) ListByUser(ctx context.Context, req *models.GetUserReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("ListByUser: fetching reservations for user=%d, status=%v", req.UserID, req.Status)

	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userId must be positive", ErrInvalidInput)
	}

	var domainStatus *domain.ReservationStatus
	if req.Status != nil {
		status, err := domain.ParseReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("ListByUser: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, *req.Status)
		}
		domainStatus = &status
	}

	reservations, err := s.reservationRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("ListByUser: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: ListByUser - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByUser: successfully fetched %d reservations for user=%d", len(reservations), req.UserID)
	return models.FromDomainReservationList(reservations), nil
}

// ListByBusiness получает резервации бизнеса с фильтрацией по периоду и статусу
//
// Примеры использования:
// - Все активные резервации: ListByBusiness(ctx, &GetBusinessReservationsRequest{BusinessID: 123})
// - Резервации на дату: StartDate и EndDate указывают на одну дату
// - Только подтвержденные: Status = "confirmed"
// - Включая отменённые: IncludeInactive = true
func (s *Service) ListByBusiness(ctx context.Context, req *models.GetBusinessReservationsRequest) (*models.ReservationListResponse, error) {
	logMsg := fmt.Sprintf("ListByBusiness: fetching reservations for business=%d", req.BusinessID)
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	if req.BusinessID <= 0 {
		return nil, fmt.Errorf("%w: businessId must be positive", ErrInvalidInput)
	}
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListByBusiness: invalid filter for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	}

	reservations, err := s.reservationRepo.GetByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListByBusiness: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: ListByBusiness - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByBusiness: successfully fetched %d reservations for business=%d", len(reservations), req.BusinessID)
	return models.FromDomainReservationList(reservations), nil
}

// Transition переводит резервацию из pending в confirmed или cancelled.
// Обновление условное, поэтому из двух одновременных переходов проходит только один.
func (s *Service) Transition(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.ReservationResponse, error) {
	s.logger.Info("Transition: updating reservation id=%d to status=%s by user=%d", id, req.Status, req.UserID)

	// 1. Валидируем целевой статус
	target, err := domain.ParseReservationStatus(req.Status)
	if err != nil || target == domain.StatusPending {
		s.logger.Warn("Transition: invalid status=%s for reservation id=%d", req.Status, id)
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
	}

	// 2. Получаем резервацию
	reservation, err := s.get(ctx, "Transition", id)
	if err != nil {
		return nil, err
	}

	// 3. Проверяем допустимость перехода
	if !reservation.Status.CanTransitionTo(target) {
		s.logger.Warn("Transition: reservation id=%d cannot move from %s to %s", id, reservation.Status, target)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, reservation.Status, target)
	}

	// 4. Условное обновление статуса
	updated, err := s.reservationRepo.UpdateStatus(ctx, id, reservation.Status, target)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrStatusMismatch) {
			s.logger.Warn("Transition: reservation id=%d was changed concurrently", id)
			return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, reservation.Status, target)
		}
		s.logger.Error("Transition: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Transition - repository error: %v", ErrInternal, err)
	}

	s.metrics.IncStatusTransitions(string(target))
	s.logger.Info("Transition: successfully updated reservation id=%d to status=%s", id, target)

	// 5. Публикуем событие (ошибка не откатывает переход)
	event := events.NewReservationEvent(events.TypeForStatus(target), updated, s.timeProvider.Now())
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Transition: failed to publish event for reservation id=%d: %v", id, err)
	}

	return models.FromDomainReservation(updated), nil
}

func (s *Service) get(ctx context.Context, op string, id int64) (*domain.Reservation, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: reservation id must be positive", ErrInvalidInput)
	}

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%d not found", op, id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for reservation id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	return reservation, nil
}
