package find_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SchedulerService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SchedulerService/internal/service/scheduler"
)

// UseCase use case поиска ближайшего доступного слота для услуги в центре
type UseCase struct {
	catalogRepo CatalogRepository
	estimator   PartsEstimator
	engine      SchedulerEngine
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalogRepo CatalogRepository,
	estimator PartsEstimator,
	engine SchedulerEngine,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogRepo: catalogRepo,
		estimator:   estimator,
		engine:      engine,
		logger:      logger,
	}
}

// Execute выполняет use case поиска слота: сначала считается нижняя граница
// по наличию деталей, затем она передается поисковому движку
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("FindSlot: service_type=%d, center=%d", req.ServiceTypeID, req.CenterID)

	if req.ServiceTypeID <= 0 || req.CenterID <= 0 {
		return nil, fmt.Errorf("%w: serviceTypeID and centerID must be positive", ErrInvalidInput)
	}

	// 1. Проверяем существование услуги и центра
	serviceType, err := uc.catalogRepo.GetServiceTypeByID(ctx, req.ServiceTypeID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceTypeNotFound) {
			uc.logger.Warn("FindSlot: service type id=%d not found", req.ServiceTypeID)
			return nil, ErrServiceTypeNotFound
		}
		uc.logger.Error("FindSlot: failed to get service type id=%d: %v", req.ServiceTypeID, err)
		return nil, fmt.Errorf("%w: failed to get service type: %v", ErrInternal, err)
	}

	if _, err := uc.catalogRepo.GetCenterByID(ctx, req.CenterID); err != nil {
		if errors.Is(err, catalogRepo.ErrCenterNotFound) {
			uc.logger.Warn("FindSlot: center id=%d not found", req.CenterID)
			return nil, ErrCenterNotFound
		}
		uc.logger.Error("FindSlot: failed to get center id=%d: %v", req.CenterID, err)
		return nil, fmt.Errorf("%w: failed to get center: %v", ErrInternal, err)
	}

	// 2. Нижняя граница по наличию деталей
	partsArrival, err := uc.estimator.EarliestStart(ctx, req.ServiceTypeID, req.CenterID)
	if err != nil {
		uc.logger.Error("FindSlot: parts estimation failed: %v", err)
		return nil, fmt.Errorf("%w: parts estimation failed: %v", ErrInternal, err)
	}

	// 3. Квалифицированные ресурсы центра
	technicians, err := uc.catalogRepo.QualifiedTechnicians(ctx, req.CenterID, serviceType.RequiredSkillLevel)
	if err != nil {
		uc.logger.Error("FindSlot: failed to get technicians: %v", err)
		return nil, fmt.Errorf("%w: failed to get technicians: %v", ErrInternal, err)
	}
	if len(technicians) == 0 {
		uc.logger.Warn("FindSlot: no technicians with skill>=%d at center=%d",
			serviceType.RequiredSkillLevel, req.CenterID)
		return nil, ErrNoQualifiedTechnicians
	}

	bays, err := uc.catalogRepo.QualifiedBays(ctx, req.CenterID, serviceType.RequiredBayType)
	if err != nil {
		uc.logger.Error("FindSlot: failed to get bays: %v", err)
		return nil, fmt.Errorf("%w: failed to get bays: %v", ErrInternal, err)
	}
	if len(bays) == 0 {
		uc.logger.Warn("FindSlot: no bays of type=%s at center=%d", serviceType.RequiredBayType, req.CenterID)
		return nil, ErrNoQualifiedBays
	}

	// 4. Поиск ближайшего назначения
	assignment, err := uc.engine.FindEarliestAssignment(ctx, partsArrival, serviceType.DurationMinutes, technicians, bays)
	if err != nil {
		if errors.Is(err, scheduler.ErrNoSlotAvailable) {
			uc.logger.Warn("FindSlot: no slot for service=%d at center=%d", req.ServiceTypeID, req.CenterID)
			return nil, ErrNoSlotAvailable
		}
		uc.logger.Error("FindSlot: engine failed: %v", err)
		return nil, fmt.Errorf("%w: slot search failed: %v", ErrInternal, err)
	}

	uc.logger.Info("FindSlot: earliest slot %s for service=%d at center=%d",
		assignment.StartTime.Format(domain.DateFormat+" "+domain.TimeFormat), req.ServiceTypeID, req.CenterID)

	return &Response{
		EarliestSlot:     assignment.StartTime,
		PartsArrivalDate: partsArrival,
	}, nil
}
