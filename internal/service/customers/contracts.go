package customers

import (
	"context"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
)

// CustomerRepository интерфейс справочного репозитория клиентов
type CustomerRepository interface {
	SearchCustomers(ctx context.Context, q string) ([]*domain.Customer, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
