package hours

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/catalogservice"
)

// HoursRepository интерфейс репозитория рабочих часов
type HoursRepository interface {
	GetByBusinessID(ctx context.Context, businessID int64) (*domain.BusinessHours, error)
	Upsert(ctx context.Context, hours *domain.BusinessHours) (*domain.BusinessHours, error)
}

// CatalogClient интерфейс клиента каталога бизнесов
type CatalogClient interface {
	GetBusiness(ctx context.Context, businessID int64) (*catalogservice.Business, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
