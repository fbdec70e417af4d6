package appointments

import (
	"context"
	"errors"
	"fmt"

	appointmentRepo "github.com/m04kA/SMC-SchedulerService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-SchedulerService/internal/service/appointments/models"
)

// Service сервис чтения записей на обслуживание
type Service struct {
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(appointmentRepo AppointmentRepository, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// GetByID получает запись вместе с назначением ресурсов и задачами снабжения
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d", id)

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	assignment, err := s.appointmentRepo.GetResourceAssignment(ctx, id)
	if err != nil && !errors.Is(err, appointmentRepo.ErrAssignmentNotFound) {
		s.logger.Error("GetByID: failed to get assignment for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - assignment error: %v", ErrInternal, err)
	}

	tasks, err := s.appointmentRepo.GetProcurementTasks(ctx, id)
	if err != nil {
		s.logger.Error("GetByID: failed to get procurement tasks for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - procurement tasks error: %v", ErrInternal, err)
	}

	return models.FromDomain(appt, assignment, tasks), nil
}
