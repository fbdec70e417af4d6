package appointments

import (
	"context"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей на обслуживание
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetResourceAssignment(ctx context.Context, appointmentID int64) (*domain.ResourceAssignment, error)
	GetProcurementTasks(ctx context.Context, appointmentID int64) ([]*domain.ProcurementTask, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
