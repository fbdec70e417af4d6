package book_appointment

import (
	"fmt"
	"time"

	bookAppointment "github.com/m04kA/SMC-SchedulerService/internal/usecase/book_appointment"
)

// startTimeLayouts допустимые форматы поля startTime
// RFC3339 и локальное время без зоны, как присылает фронтенд
var startTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// BookAppointmentRequest HTTP request model
type BookAppointmentRequest struct {
	CustomerID    int64  `json:"customerId"`
	VehicleID     int64  `json:"vehicleId"`
	ServiceTypeID int64  `json:"serviceTypeId"`
	CenterID      int64  `json:"centerId"`
	StartTime     string `json:"startTime"` // "2025-10-15T10:00:00"
	Emergency     bool   `json:"emergency"`
}

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
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом времени)
func (r *BookAppointmentRequest) ToUseCaseRequest() (*bookAppointment.Request, error) {
	if r.StartTime == "" {
		return nil, fmt.Errorf("startTime is required")
	}

	var startTime time.Time
	var err error
	for _, layout := range startTimeLayouts {
		startTime, err = time.ParseInLocation(layout, r.StartTime, time.Local)
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("invalid startTime format: %w", err)
	}

	return &bookAppointment.Request{
		CustomerID:    r.CustomerID,
		VehicleID:     r.VehicleID,
		ServiceTypeID: r.ServiceTypeID,
		CenterID:      r.CenterID,
		StartTime:     startTime,
		Emergency:     r.Emergency,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookAppointment.Response) *AppointmentResponse {
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
	}
}
