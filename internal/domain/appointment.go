package domain

import "time"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusConfirmed    AppointmentStatus = "CONFIRMED"
	StatusPendingParts AppointmentStatus = "PENDING_PARTS"
)

// ProcurementStatus represents the status of a procurement task
type ProcurementStatus string

const (
	ProcurementActionRequired ProcurementStatus = "ACTION_REQUIRED"
)

// Appointment represents a committed service appointment
// Создаётся только транзакцией бронирования и после этого не изменяется
type Appointment struct {
	ID            int64
	CustomerID    int64
	VehicleID     int64
	ServiceTypeID int64
	CenterID      int64
	StartTime     time.Time
	EndTime       time.Time
	Status        AppointmentStatus
	IsEmergency   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPendingParts returns true if the appointment is waiting for parts
func (a *Appointment) IsPendingParts() bool {
	return a.Status == StatusPendingParts
}

// ResourceAssignment links an appointment to the technician and bay that serve it
type ResourceAssignment struct {
	ID            int64
	AppointmentID int64
	TechnicianID  int64
	BayID         int64
}

// ProcurementTask represents a part shortage that needs replenishment
// Ссылается на запись инвентаря (или на шаблонную запись детали,
// если у центра нет собственной записи)
type ProcurementTask struct {
	ID            int64
	AppointmentID int64
	PartID        int64
	PartName      string
	NeededBy      time.Time
	Status        ProcurementStatus

	CreatedAt time.Time
}
