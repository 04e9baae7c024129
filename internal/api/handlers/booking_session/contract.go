package booking_session

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-ReservationService/internal/workflow"
)

type SessionRegistry interface {
	Add(c *workflow.Controller) string
	Get(id string, userID int64) (*workflow.Controller, error)
	Remove(id string, userID int64) error
}

type CatalogClient interface {
	GetBusiness(ctx context.Context, businessID int64) (*catalogservice.Business, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
