package get_appointment

import (
	"time"

	"github.com/m04kA/SMC-SchedulerService/internal/service/appointments/models"
)

// ProcurementTaskResponse HTTP модель задачи снабжения
type ProcurementTaskResponse struct {
	ID       int64  `json:"id"`
	PartID   int64  `json:"partId"`
	PartName string `json:"partName"`
	NeededBy string `json:"neededBy"`
	Status   string `json:"status"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID               int64                     `json:"id"`
	CustomerID       int64                     `json:"customerId"`
	VehicleID        int64                     `json:"vehicleId"`
	ServiceTypeID    int64                     `json:"serviceTypeId"`
	CenterID         int64                     `json:"centerId"`
	StartTime        string                    `json:"startTime"`
	EndTime          string                    `json:"endTime"`
	Status           string                    `json:"status"`
	Emergency        bool                      `json:"emergency"`
	TechnicianID     int64                     `json:"technicianId"`
	BayID            int64                     `json:"bayId"`
	ProcurementTasks []ProcurementTaskResponse `json:"procurementTasks"`
	CreatedAt        string                    `json:"createdAt"`
	UpdatedAt        string                    `json:"updatedAt"`
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.AppointmentResponse) *AppointmentResponse {
	tasks := make([]ProcurementTaskResponse, 0, len(resp.ProcurementTasks))
	for _, task := range resp.ProcurementTasks {
		tasks = append(tasks, ProcurementTaskResponse{
			ID:       task.ID,
			PartID:   task.PartID,
			PartName: task.PartName,
			NeededBy: task.NeededBy.Format(time.RFC3339),
			Status:   task.Status,
		})
	}

	return &AppointmentResponse{
		ID:               resp.ID,
		CustomerID:       resp.CustomerID,
		VehicleID:        resp.VehicleID,
		ServiceTypeID:    resp.ServiceTypeID,
		CenterID:         resp.CenterID,
		StartTime:        resp.StartTime.Format(time.RFC3339),
		EndTime:          resp.EndTime.Format(time.RFC3339),
		Status:           resp.Status,
		Emergency:        resp.Emergency,
		TechnicianID:     resp.TechnicianID,
		BayID:            resp.BayID,
		ProcurementTasks: tasks,
		CreatedAt:        resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        resp.UpdatedAt.Format(time.RFC3339),
	}
}
