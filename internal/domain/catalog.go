package domain

// ServiceType describes a service from the catalog
type ServiceType struct {
	ID                 int64
	Name               string
	DurationMinutes    int
	RequiredSkillLevel int
	RequiredBayType    BayType
}

// RequiredSlots возвращает количество получасовых слотов,
// необходимых для услуги (округление вверх)
func (s *ServiceType) RequiredSlots() int {
	return (s.DurationMinutes + SlotMinutes - 1) / SlotMinutes
}

// PartRequirement maps a service type to a required part
// PartID и LeadTimeDays берутся из шаблонной записи инвентаря,
// к которой привязано требование
type PartRequirement struct {
	PartID       int64
	PartName     string
	Quantity     int
	LeadTimeDays int
}

// PartInventory represents a per-center inventory record for a part
type PartInventory struct {
	ID             int64
	CenterID       int64
	PartName       string
	AvailableParts int
	OrderedParts   int
	LeadTimeDays   int
}

// CanSatisfy returns true if the available stock covers the required quantity
func (p *PartInventory) CanSatisfy(quantity int) bool {
	return p.AvailableParts >= quantity
}
