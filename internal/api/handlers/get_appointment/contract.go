package get_appointment

import (
	"context"

	"github.com/m04kA/SMC-SchedulerService/internal/service/appointments/models"
)

// AppointmentService интерфейс сервиса чтения записей
type AppointmentService interface {
	GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
