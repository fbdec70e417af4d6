package parts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	inventoryRepo "github.com/m04kA/SMC-SchedulerService/internal/infra/storage/inventory"
)

// Service оценщик прибытия деталей: считает самую раннюю дату, когда у
// центра будут все детали для услуги
type Service struct {
	inventory    InventoryStore
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр оценщика
func NewService(inventory InventoryStore, logger Logger) *Service {
	return &Service{
		inventory:    inventory,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// EarliestStart возвращает самый ранний момент, когда запись на услугу
// может начаться с точки зрения наличия деталей.
//
// Для каждой требуемой детали проверяется запись инвентаря центра.
// Требование считается дефицитным, если записи нет или доступного остатка
// не хватает; его срок поставки участвует в максимуме (по умолчанию
// domain.DefaultLeadTimeDays). Если все требования закрыты - "сейчас",
// иначе сейчас + максимальный срок поставки + фиксированный буфер в один
// день. Инвентарь не изменяется.
func (s *Service) EarliestStart(ctx context.Context, serviceTypeID, centerID int64) (time.Time, error) {
	now := s.timeProvider.Now()

	requirements, err := s.inventory.Requirements(ctx, serviceTypeID)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: load requirements for service=%d: %v", ErrInternal, serviceTypeID, err)
	}

	if len(requirements) == 0 {
		return now, nil
	}

	maxLeadTime := 0
	allAvailable := true

	for _, req := range requirements {
		record, err := s.inventory.GetByCenterAndPart(ctx, centerID, req.PartName)
		if err != nil {
			if errors.Is(err, inventoryRepo.ErrPartNotFound) {
				// Деталь не знакома центру: используем срок поставки
				// шаблонной записи из требования
				maxLeadTime = max(maxLeadTime, req.LeadTimeDays)
				allAvailable = false
				continue
			}
			return time.Time{}, fmt.Errorf("%w: load inventory center=%d part=%q: %v", ErrInternal, centerID, req.PartName, err)
		}

		if !record.CanSatisfy(req.Quantity) {
			maxLeadTime = max(maxLeadTime, record.LeadTimeDays)
			allAvailable = false
		}
	}

	if allAvailable {
		return now, nil
	}

	arrival := now.AddDate(0, 0, maxLeadTime+domain.PartsArrivalBufferDays)
	s.logger.Info("EarliestStart: parts short for service=%d center=%d, arrival in %d days",
		serviceTypeID, centerID, maxLeadTime+domain.PartsArrivalBufferDays)
	return arrival, nil
}
