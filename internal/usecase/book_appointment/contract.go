package book_appointment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	"github.com/m04kA/SMC-SchedulerService/internal/service/scheduler"
)

// CatalogRepository интерфейс справочного репозитория
type CatalogRepository interface {
	GetCustomerByID(ctx context.Context, id int64) (*domain.Customer, error)
	GetVehicleByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	GetServiceTypeByID(ctx context.Context, id int64) (*domain.ServiceType, error)
	GetCenterByID(ctx context.Context, id int64) (*domain.ServiceCenter, error)
	QualifiedTechnicians(ctx context.Context, centerID int64, minSkillLevel int) ([]domain.Technician, error)
	QualifiedBays(ctx context.Context, centerID int64, bayType domain.BayType) ([]domain.ServiceBay, error)
}

// ScheduleRepository интерфейс хранилища занятости ресурсов
// Транзакция бронирования - единственный владелец пути записи
type ScheduleRepository interface {
	GetMask(ctx context.Context, kind domain.ResourceKind, resourceID int64, date time.Time) (int, error)
	PutMask(ctx context.Context, kind domain.ResourceKind, resourceID int64, date time.Time, mask int) error
}

// InventoryRepository интерфейс репозитория инвентаря
type InventoryRepository interface {
	Requirements(ctx context.Context, serviceTypeID int64) ([]domain.PartRequirement, error)
	GetByCenterAndPart(ctx context.Context, centerID int64, partName string) (*domain.PartInventory, error)
	UpdateStock(ctx context.Context, id int64, availableParts, orderedParts int) error
}

// AppointmentRepository интерфейс репозитория записей на обслуживание
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	CreateResourceAssignment(ctx context.Context, appointmentID, technicianID, bayID int64) (*domain.ResourceAssignment, error)
	CreateProcurementTasks(ctx context.Context, tasks []*domain.ProcurementTask) error
}

// SchedulerEngine интерфейс поискового движка слотов
type SchedulerEngine interface {
	FindEarliestAssignment(ctx context.Context, earliestAllowed time.Time, durationMinutes int,
		technicians []domain.Technician, bays []domain.ServiceBay) (*scheduler.Assignment, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
