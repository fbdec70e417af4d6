package find_slot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	"github.com/m04kA/SMC-SchedulerService/internal/service/scheduler"
)

// CatalogRepository интерфейс справочного репозитория
type CatalogRepository interface {
	GetServiceTypeByID(ctx context.Context, id int64) (*domain.ServiceType, error)
	GetCenterByID(ctx context.Context, id int64) (*domain.ServiceCenter, error)
	QualifiedTechnicians(ctx context.Context, centerID int64, minSkillLevel int) ([]domain.Technician, error)
	QualifiedBays(ctx context.Context, centerID int64, bayType domain.BayType) ([]domain.ServiceBay, error)
}

// PartsEstimator интерфейс оценщика прибытия деталей
type PartsEstimator interface {
	EarliestStart(ctx context.Context, serviceTypeID, centerID int64) (time.Time, error)
}

// SchedulerEngine интерфейс поискового движка слотов
type SchedulerEngine interface {
	FindEarliestAssignment(ctx context.Context, earliestAllowed time.Time, durationMinutes int,
		technicians []domain.Technician, bays []domain.ServiceBay) (*scheduler.Assignment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
