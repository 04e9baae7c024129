package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/availability"
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	hoursRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/hours"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	catalogClient "github.com/m04kA/SMC-ReservationService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/events"
	"github.com/m04kA/SMC-ReservationService/pkg/keylock"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
)

// UseCase use case для создания резервации
type UseCase struct {
	reservationRepo ReservationRepository
	hoursRepo       HoursRepository
	catalogClient   CatalogClient
	txManager       TransactionManager
	publisher       EventPublisher
	metrics         Metrics
	locks           *keylock.KeyLock
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	hoursRepo HoursRepository,
	catalogClient CatalogClient,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		hoursRepo:       hoursRepo,
		catalogClient:   catalogClient,
		txManager:       txManager,
		publisher:       publisher,
		metrics:         metrics,
		locks:           keylock.New(),
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания резервации.
// Проверка и вставка для одного (бизнес, дата) сериализуются блокировкой по ключу
// и сериализуемой транзакцией; уникальный индекс хранилища страхует от гонки между экземплярами.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if req != nil {
		normalizeRequest(req)
	}
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateReservation: user=%d, business=%d, service=%d, date=%s, time=%s",
		req.UserID, req.BusinessID, req.ServiceID, req.Date.Format(domain.DateFormat), req.Time)

	// 2. Получаем бизнес и услугу
	business, err := uc.catalogClient.GetBusiness(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrBusinessNotFound) {
			uc.logger.Warn("CreateReservation: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("CreateReservation: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	service, ok := business.ToDomain().FindService(req.ServiceID)
	if !ok {
		uc.logger.Warn("CreateReservation: service id=%d not found in business id=%d", req.ServiceID, req.BusinessID)
		return nil, ErrServiceNotFound
	}

	// 3. Время должно совпадать со слотом рабочего окна
	window, err := uc.operatingWindow(ctx, req.BusinessID)
	if err != nil {
		return nil, err
	}
	if !availability.IsGeneratedSlot(window, req.Time) {
		uc.logger.Warn("CreateReservation: time=%s is not a slot of window %02d-%02d", req.Time, window.StartHour, window.EndHour)
		return nil, fmt.Errorf("%w: %s", ErrInvalidTimeSlot, req.Time)
	}

	// 4. Сериализуем создание для (бизнес, дата)
	unlock := uc.locks.Lock(domain.DayKey(req.BusinessID, req.Date))
	defer unlock()

	var result *domain.Reservation

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Активные резервации на дату (FOR UPDATE внутри транзакции)
		filter := domain.ReservationFilter{
			BusinessID: req.BusinessID,
			StartDate:  &req.Date,
			EndDate:    &req.Date,
		}
		reservations, err := uc.reservationRepo.GetByFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %w", ErrInternal, err)
		}

		// 4.2. Проверяем доступность слота
		slots := availability.Resolve(req.Date, req.BusinessID, window, reservations)
		if !availability.IsAvailable(slots, req.Time) {
			return ErrSlotConflict
		}

		// 4.3. Сохраняем резервацию в статусе pending
		created, err := uc.reservationRepo.Create(txCtx, &domain.Reservation{
			BusinessID:    req.BusinessID,
			ServiceID:     req.ServiceID,
			UserID:        req.UserID,
			Date:          req.Date,
			Time:          req.Time,
			Status:        domain.StatusPending,
			CustomerName:  req.CustomerName,
			CustomerEmail: req.CustomerEmail,
			ServiceName:   service.Name,
			ServicePrice:  service.Price,
		})
		if err != nil {
			if errors.Is(err, reservationRepo.ErrSlotTaken) {
				return ErrSlotConflict
			}
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			err = ErrSlotConflict
		}
		if errors.Is(err, ErrSlotConflict) {
			uc.metrics.IncSlotConflicts()
			uc.logger.Warn("CreateReservation: slot business=%d, date=%s, time=%s already taken",
				req.BusinessID, req.Date.Format(domain.DateFormat), req.Time)
		}
		return nil, err
	}

	uc.metrics.IncReservationsCreated()
	uc.logger.Info("CreateReservation: successfully created reservation id=%d", result.ID)

	// 5. Событие публикуется после фиксации; ошибка не отменяет резервацию
	event := events.NewReservationEvent(events.TypeReservationCreated, result, uc.timeProvider.Now())
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Error("CreateReservation: failed to publish event for reservation id=%d: %v", result.ID, err)
	}

	return fromDomain(result), nil
}

func (uc *UseCase) operatingWindow(ctx context.Context, businessID int64) (domain.OperatingWindow, error) {
	hours, err := uc.hoursRepo.GetByBusinessID(ctx, businessID)
	if err != nil {
		if errors.Is(err, hoursRepo.ErrHoursNotFound) {
			return domain.DefaultOperatingWindow(), nil
		}
		uc.logger.Error("CreateReservation: failed to get hours for business=%d: %v", businessID, err)
		return domain.OperatingWindow{}, fmt.Errorf("%w: failed to get hours: %v", ErrInternal, err)
	}
	return hours.Window, nil
}
