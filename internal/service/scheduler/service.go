package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
)

// Service поисковый движок слотов: находит самое раннее допустимое
// назначение (техник, пост, слот) по битовым маскам занятости
type Service struct {
	schedule     ScheduleStore
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр поискового движка
func NewService(schedule ScheduleStore, logger Logger) *Service {
	return NewServiceWithTimeProvider(schedule, &RealTimeProvider{}, logger)
}

// NewServiceWithTimeProvider создает движок с внешним источником времени
func NewServiceWithTimeProvider(schedule ScheduleStore, timeProvider TimeProvider, logger Logger) *Service {
	return &Service{
		schedule:     schedule,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Assignment результат поиска: конкретный техник, пост и слот
type Assignment struct {
	StartTime  time.Time
	Technician domain.Technician
	Bay        domain.ServiceBay
	SlotIndex  int
}

// FindEarliestAssignment находит самое раннее допустимое назначение в
// горизонте domain.SearchHorizonDays дней начиная с сегодняшнего.
//
// earliestAllowed - нижняя граница начала (например, дата прибытия деталей).
// Кандидаты перебираются в порядке переданных списков: при равном слоте
// выигрывают первый техник и первый пост, внешний цикл по техникам.
// Если пара достигает самого раннего мыслимого слота дня, поиск завершается
// сразу - более ранний слот не существует ни в этот день, ни позже.
//
// Возвращает ErrNoSlotAvailable, если ни одна пара не проходит ни в один день
// горизонта (в том числе при пустых списках кандидатов).
func (s *Service) FindEarliestAssignment(
	ctx context.Context,
	earliestAllowed time.Time,
	durationMinutes int,
	technicians []domain.Technician,
	bays []domain.ServiceBay,
) (*Assignment, error) {
	if durationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}

	requiredSlots := RequiredSlots(durationMinutes)
	now := s.timeProvider.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	// Нижняя граница приводится к зоне часов сервиса: сравнение дат ниже
	// покомпонентное, в разных зонах один и тот же момент попадает в
	// разные календарные дни
	earliestAllowed = earliestAllowed.In(now.Location())
	minDate := time.Date(earliestAllowed.Year(), earliestAllowed.Month(), earliestAllowed.Day(), 0, 0, 0, 0, earliestAllowed.Location())

	for dayOffset := 0; dayOffset < domain.SearchHorizonDays; dayOffset++ {
		day := today.AddDate(0, 0, dayOffset)

		if day.Before(minDate) {
			continue
		}

		startSlot := 0
		if day.Equal(minDate) {
			startSlot = SlotIndexForTime(earliestAllowed)
			if startSlot >= domain.TotalSlots {
				// В день нижней границы слотов уже не осталось
				continue
			}
		}

		assignment, err := s.findOnDay(ctx, day, startSlot, requiredSlots, technicians, bays)
		if err != nil {
			return nil, err
		}
		if assignment != nil {
			s.logger.Info("FindEarliestAssignment: found slot=%d on %s (tech=%d, bay=%d)",
				assignment.SlotIndex, day.Format(domain.DateFormat), assignment.Technician.ID, assignment.Bay.ID)
			return assignment, nil
		}
	}

	s.logger.Warn("FindEarliestAssignment: no slot within %d days (duration=%dmin, techs=%d, bays=%d)",
		domain.SearchHorizonDays, durationMinutes, len(technicians), len(bays))
	return nil, ErrNoSlotAvailable
}

// findOnDay перебирает пары (техник, пост) в указанный день и возвращает
// лучшее назначение дня или nil, если день полностью занят
func (s *Service) findOnDay(
	ctx context.Context,
	day time.Time,
	startSlot, requiredSlots int,
	technicians []domain.Technician,
	bays []domain.ServiceBay,
) (*Assignment, error) {
	bestSlot := -1
	var bestTech domain.Technician
	var bestBay domain.ServiceBay

	for _, tech := range technicians {
		techMask, err := s.schedule.GetMask(ctx, domain.KindTechnician, tech.ID, day)
		if err != nil {
			return nil, fmt.Errorf("%w: read technician mask id=%d: %v", ErrInternal, tech.ID, err)
		}

		for _, bay := range bays {
			bayMask, err := s.schedule.GetMask(ctx, domain.KindBay, bay.ID, day)
			if err != nil {
				return nil, fmt.Errorf("%w: read bay mask id=%d: %v", ErrInternal, bay.ID, err)
			}

			combined := techMask | bayMask
			slot := FindConsecutiveZeros(combined, requiredSlots, startSlot)
			if slot == -1 {
				continue
			}

			if bestSlot == -1 || slot < bestSlot {
				bestSlot = slot
				bestTech = tech
				bestBay = bay

				if bestSlot == startSlot {
					// Раньше этого слота в дне ничего нет, дальше не ищем
					return &Assignment{
						StartTime:  SlotTime(day, bestSlot),
						Technician: bestTech,
						Bay:        bestBay,
						SlotIndex:  bestSlot,
					}, nil
				}
			}
		}
	}

	if bestSlot == -1 {
		return nil, nil
	}

	return &Assignment{
		StartTime:  SlotTime(day, bestSlot),
		Technician: bestTech,
		Bay:        bestBay,
		SlotIndex:  bestSlot,
	}, nil
}
