package parts

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
)

// InventoryStore интерфейс хранилища требований и складских остатков
// Оценщик только читает инвентарь, резервирует детали транзакция бронирования
type InventoryStore interface {
	Requirements(ctx context.Context, serviceTypeID int64) ([]domain.PartRequirement, error)
	GetByCenterAndPart(ctx context.Context, centerID int64, partName string) (*domain.PartInventory, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
