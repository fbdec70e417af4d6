package book_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SchedulerService/internal/infra/storage/catalog"
	inventoryRepo "github.com/m04kA/SMC-SchedulerService/internal/infra/storage/inventory"
	"github.com/m04kA/SMC-SchedulerService/internal/service/scheduler"
)

// UseCase use case бронирования записи на обслуживание
type UseCase struct {
	catalogRepo     CatalogRepository
	scheduleRepo    ScheduleRepository
	inventoryRepo   InventoryRepository
	appointmentRepo AppointmentRepository
	engine          SchedulerEngine
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalogRepo CatalogRepository,
	scheduleRepo ScheduleRepository,
	inventoryRepo InventoryRepository,
	appointmentRepo AppointmentRepository,
	engine SchedulerEngine,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogRepo:     catalogRepo,
		scheduleRepo:    scheduleRepo,
		inventoryRepo:   inventoryRepo,
		appointmentRepo: appointmentRepo,
		engine:          engine,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет use case бронирования.
//
// Поиск назначения выполняется заново внутри сериализуемой транзакции:
// с момента, когда клиент видел слот, могло пройти время, и слот мог быть
// занят. Запрошенное время начала используется как свежая нижняя граница,
// поэтому запись может зафиксироваться на более позднем слоте, чем
// показанный клиенту - намеренный best-effort повторный поиск.
//
// Шаги внутри транзакции (пометка масок, резервирование деталей, сохранение
// записи) атомарны: любая ошибка откатывает всё, частичных изменений не
// остаётся. Конкурентное бронирование того же слота завершается
// ErrSlotNotAvailable у проигравшего.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookAppointment: customer=%d, vehicle=%d, service_type=%d, center=%d, start=%s, emergency=%t",
		req.CustomerID, req.VehicleID, req.ServiceTypeID, req.CenterID,
		req.StartTime.Format(domain.DateFormat+" "+domain.TimeFormat), req.Emergency)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование сущностей
	customer, err := uc.catalogRepo.GetCustomerByID(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrCustomerNotFound) {
			uc.logger.Warn("BookAppointment: customer id=%d not found", req.CustomerID)
			return nil, ErrCustomerNotFound
		}
		uc.logger.Error("BookAppointment: failed to get customer id=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
	}

	vehicle, err := uc.catalogRepo.GetVehicleByID(ctx, req.VehicleID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrVehicleNotFound) {
			uc.logger.Warn("BookAppointment: vehicle id=%d not found", req.VehicleID)
			return nil, ErrVehicleNotFound
		}
		uc.logger.Error("BookAppointment: failed to get vehicle id=%d: %v", req.VehicleID, err)
		return nil, fmt.Errorf("%w: failed to get vehicle: %v", ErrInternal, err)
	}

	if err := validateOwnership(vehicle, customer.ID); err != nil {
		uc.logger.Warn("BookAppointment: vehicle id=%d does not belong to customer id=%d",
			req.VehicleID, req.CustomerID)
		return nil, err
	}

	serviceType, err := uc.catalogRepo.GetServiceTypeByID(ctx, req.ServiceTypeID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceTypeNotFound) {
			uc.logger.Warn("BookAppointment: service type id=%d not found", req.ServiceTypeID)
			return nil, ErrServiceTypeNotFound
		}
		uc.logger.Error("BookAppointment: failed to get service type id=%d: %v", req.ServiceTypeID, err)
		return nil, fmt.Errorf("%w: failed to get service type: %v", ErrInternal, err)
	}

	if _, err := uc.catalogRepo.GetCenterByID(ctx, req.CenterID); err != nil {
		if errors.Is(err, catalogRepo.ErrCenterNotFound) {
			uc.logger.Warn("BookAppointment: center id=%d not found", req.CenterID)
			return nil, ErrCenterNotFound
		}
		uc.logger.Error("BookAppointment: failed to get center id=%d: %v", req.CenterID, err)
		return nil, fmt.Errorf("%w: failed to get center: %v", ErrInternal, err)
	}

	var result *Response

	// 3. Все изменения выполняются в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		res, err := uc.bookInTx(txCtx, req, serviceType)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("BookAppointment: committed appointment id=%d status=%s (tech=%d, bay=%d, slot=%d)",
		result.ID, result.Status, result.TechnicianID, result.BayID, result.SlotIndex)

	return result, nil
}

// bookInTx тело транзакции бронирования
func (uc *UseCase) bookInTx(txCtx context.Context, req *Request, serviceType *domain.ServiceType) (*Response, error) {
	// 3.1. Квалифицированные ресурсы центра, порядок детерминирован
	technicians, err := uc.catalogRepo.QualifiedTechnicians(txCtx, req.CenterID, serviceType.RequiredSkillLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get technicians: %v", ErrInternal, err)
	}

	bays, err := uc.catalogRepo.QualifiedBays(txCtx, req.CenterID, serviceType.RequiredBayType)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get bays: %v", ErrInternal, err)
	}

	// 3.2. Повторный поиск с запрошенным временем как нижней границей
	assignment, err := uc.engine.FindEarliestAssignment(txCtx, req.StartTime, serviceType.DurationMinutes, technicians, bays)
	if err != nil {
		if errors.Is(err, scheduler.ErrNoSlotAvailable) {
			uc.logger.Warn("BookAppointment: no assignment at commit time (center=%d, service=%d)",
				req.CenterID, req.ServiceTypeID)
			return nil, ErrSlotNotAvailable
		}
		return nil, fmt.Errorf("%w: slot search failed: %v", ErrInternal, err)
	}

	requiredSlots := serviceType.RequiredSlots()

	// 3.3. Защитная проверка границ рабочего дня
	if assignment.SlotIndex < 0 || assignment.SlotIndex+requiredSlots > domain.TotalSlots {
		return nil, ErrSlotOutOfRange
	}

	// 3.4. Помечаем блок занятым в масках техника и поста
	day := assignment.StartTime
	if err := uc.occupyResource(txCtx, domain.KindTechnician, assignment.Technician.ID, day, requiredSlots, assignment.SlotIndex); err != nil {
		return nil, err
	}
	if err := uc.occupyResource(txCtx, domain.KindBay, assignment.Bay.ID, day, requiredSlots, assignment.SlotIndex); err != nil {
		return nil, err
	}

	// 3.5. Резервируем детали, собираем задачи снабжения по дефициту
	tasks, anyShort, err := uc.reserveParts(txCtx, req, serviceType.ID)
	if err != nil {
		return nil, err
	}

	// 3.6. Сохраняем запись, назначение ресурсов и задачи снабжения
	status := domain.StatusConfirmed
	if anyShort {
		status = domain.StatusPendingParts
	}

	appt := &domain.Appointment{
		CustomerID:    req.CustomerID,
		VehicleID:     req.VehicleID,
		ServiceTypeID: serviceType.ID,
		CenterID:      req.CenterID,
		StartTime:     assignment.StartTime,
		EndTime:       assignment.StartTime.Add(time.Duration(serviceType.DurationMinutes) * time.Minute),
		Status:        status,
		IsEmergency:   req.Emergency,
	}

	created, err := uc.appointmentRepo.Create(txCtx, appt)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
	}

	for _, task := range tasks {
		task.AppointmentID = created.ID
	}
	if err := uc.appointmentRepo.CreateProcurementTasks(txCtx, tasks); err != nil {
		return nil, fmt.Errorf("%w: failed to create procurement tasks: %v", ErrInternal, err)
	}

	if _, err := uc.appointmentRepo.CreateResourceAssignment(txCtx, created.ID, assignment.Technician.ID, assignment.Bay.ID); err != nil {
		return nil, fmt.Errorf("%w: failed to create resource assignment: %v", ErrInternal, err)
	}

	taskInfos := make([]ProcurementTaskInfo, 0, len(tasks))
	for _, task := range tasks {
		taskInfos = append(taskInfos, ProcurementTaskInfo{
			ID:       task.ID,
			PartID:   task.PartID,
			PartName: task.PartName,
			NeededBy: task.NeededBy,
			Status:   string(task.Status),
		})
	}

	return &Response{
		ID:               created.ID,
		CustomerID:       created.CustomerID,
		VehicleID:        created.VehicleID,
		ServiceTypeID:    created.ServiceTypeID,
		CenterID:         created.CenterID,
		StartTime:        created.StartTime,
		EndTime:          created.EndTime,
		Status:           string(created.Status),
		Emergency:        created.IsEmergency,
		TechnicianID:     assignment.Technician.ID,
		BayID:            assignment.Bay.ID,
		SlotIndex:        assignment.SlotIndex,
		ProcurementTasks: taskInfos,
		CreatedAt:        created.CreatedAt,
	}, nil
}

// occupyResource читает маску ресурса на дату, помечает блок занятым
// и сохраняет результат. Блок перепроверяется по свежепрочитанной маске:
// движок видел его свободным, но между поиском и пометкой маску могла
// изменить конкурентная транзакция
func (uc *UseCase) occupyResource(txCtx context.Context, kind domain.ResourceKind, resourceID int64, day time.Time, requiredSlots, slotIndex int) error {
	mask, err := uc.scheduleRepo.GetMask(txCtx, kind, resourceID, day)
	if err != nil {
		return fmt.Errorf("%w: failed to read %s mask id=%d: %v", ErrInternal, kind, resourceID, err)
	}

	if !scheduler.IsRangeFree(mask, requiredSlots, slotIndex) {
		uc.logger.Warn("BookAppointment: %s id=%d already busy at slot=%d", kind, resourceID, slotIndex)
		return ErrSlotNotAvailable
	}

	mask = scheduler.MarkBusy(mask, requiredSlots, slotIndex)

	if err := uc.scheduleRepo.PutMask(txCtx, kind, resourceID, day, mask); err != nil {
		return fmt.Errorf("%w: failed to write %s mask id=%d: %v", ErrInternal, kind, resourceID, err)
	}

	return nil
}

// reserveParts резервирует детали для услуги. По каждому требованию:
//   - у центра нет записи инвентаря: задача снабжения на шаблонную деталь
//     из требования, без изменения инвентаря;
//   - остатка хватает: списываем количество;
//   - остатка не хватает: обнуляем остаток, добавляем дефицит в заказ,
//     создаём задачу снабжения.
//
// Возвращает собранные задачи и признак, что хотя бы одна деталь в дефиците.
func (uc *UseCase) reserveParts(txCtx context.Context, req *Request, serviceTypeID int64) ([]*domain.ProcurementTask, bool, error) {
	requirements, err := uc.inventoryRepo.Requirements(txCtx, serviceTypeID)
	if err != nil {
		return nil, false, fmt.Errorf("%w: failed to load part requirements: %v", ErrInternal, err)
	}

	tasks := make([]*domain.ProcurementTask, 0)
	anyShort := false

	for _, requirement := range requirements {
		record, err := uc.inventoryRepo.GetByCenterAndPart(txCtx, req.CenterID, requirement.PartName)
		if err != nil {
			if errors.Is(err, inventoryRepo.ErrPartNotFound) {
				uc.logger.Warn("BookAppointment: part %q unknown at center=%d, queueing procurement",
					requirement.PartName, req.CenterID)
				anyShort = true
				tasks = append(tasks, &domain.ProcurementTask{
					PartID:   requirement.PartID,
					PartName: requirement.PartName,
					NeededBy: req.StartTime,
					Status:   domain.ProcurementActionRequired,
				})
				continue
			}
			return nil, false, fmt.Errorf("%w: failed to load inventory for part %q: %v", ErrInternal, requirement.PartName, err)
		}

		if record.CanSatisfy(requirement.Quantity) {
			if err := uc.inventoryRepo.UpdateStock(txCtx, record.ID, record.AvailableParts-requirement.Quantity, record.OrderedParts); err != nil {
				return nil, false, fmt.Errorf("%w: failed to reserve part %q: %v", ErrInternal, requirement.PartName, err)
			}
			continue
		}

		shortage := requirement.Quantity - record.AvailableParts
		uc.logger.Warn("BookAppointment: part %q short by %d at center=%d, queueing procurement",
			requirement.PartName, shortage, req.CenterID)

		if err := uc.inventoryRepo.UpdateStock(txCtx, record.ID, 0, record.OrderedParts+shortage); err != nil {
			return nil, false, fmt.Errorf("%w: failed to backorder part %q: %v", ErrInternal, requirement.PartName, err)
		}

		anyShort = true
		tasks = append(tasks, &domain.ProcurementTask{
			PartID:   record.ID,
			PartName: record.PartName,
			NeededBy: req.StartTime,
			Status:   domain.ProcurementActionRequired,
		})
	}

	return tasks, anyShort, nil
}
