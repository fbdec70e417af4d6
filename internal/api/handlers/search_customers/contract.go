package search_customers

import (
	"context"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
)

// CustomerService интерфейс сервиса поиска клиентов
type CustomerService interface {
	Search(ctx context.Context, q string) ([]*domain.Customer, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
