package domain

// ResourceKind discriminates the two kinds of schedulable resources
type ResourceKind string

const (
	KindTechnician ResourceKind = "technician"
	KindBay        ResourceKind = "bay"
)

// BayType категория сервисного поста
type BayType string

const (
	BayTypeGeneral     BayType = "GENERAL"
	BayTypeDiagnostic  BayType = "DIAGNOSTIC"
	BayTypeHeavyRepair BayType = "HEAVY_REPAIR"
)

// Technician represents a technician employed at a service center
// Ресурсы read-only с точки зрения планировщика, меняется только их занятость
type Technician struct {
	ID         int64
	Name       string
	SkillLevel int
	CenterID   int64
}

// ServiceBay represents a physical service bay at a service center
type ServiceBay struct {
	ID       int64
	Name     string
	Type     BayType
	CenterID int64
}

// ServiceCenter represents a service center location
type ServiceCenter struct {
	ID     int64
	Name   string
	Region string
}
