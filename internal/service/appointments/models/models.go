package models

import (
	"time"

	"github.com/m04kA/SMC-SchedulerService/internal/domain"
)

// ProcurementTaskInfo информация о задаче снабжения записи
type ProcurementTaskInfo struct {
	ID       int64
	PartID   int64
	PartName string
	NeededBy time.Time
	Status   string
}

// AppointmentResponse модель записи на обслуживание с назначением
// ресурсов и задачами снабжения
type AppointmentResponse struct {
	ID            int64
	CustomerID    int64
	VehicleID     int64
	ServiceTypeID int64
	CenterID      int64
	StartTime     time.Time
	EndTime       time.Time
	Status        string
	Emergency     bool

	TechnicianID int64
	BayID        int64

	ProcurementTasks []ProcurementTaskInfo

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FromDomain собирает ответ из доменных сущностей
func FromDomain(appt *domain.Appointment, assignment *domain.ResourceAssignment, tasks []*domain.ProcurementTask) *AppointmentResponse {
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

	resp := &AppointmentResponse{
		ID:               appt.ID,
		CustomerID:       appt.CustomerID,
		VehicleID:        appt.VehicleID,
		ServiceTypeID:    appt.ServiceTypeID,
		CenterID:         appt.CenterID,
		StartTime:        appt.StartTime,
		EndTime:          appt.EndTime,
		Status:           string(appt.Status),
		Emergency:        appt.IsEmergency,
		ProcurementTasks: taskInfos,
		CreatedAt:        appt.CreatedAt,
		UpdatedAt:        appt.UpdatedAt,
	}

	if assignment != nil {
		resp.TechnicianID = assignment.TechnicianID
		resp.BayID = assignment.BayID
	}

	return resp
}
