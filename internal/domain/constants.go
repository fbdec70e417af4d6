package domain

// Slot grid configuration: 09:00 - 18:00 = 9 hours = 18 slots (30 mins each)
const (
	TotalSlots   = 18
	SlotMinutes  = 30
	DayStartHour = 9
)

// Scheduling constants
const (
	// SearchHorizonDays сколько дней вперёд просматривает поиск слотов
	SearchHorizonDays = 30

	// DefaultLeadTimeDays срок поставки детали по умолчанию, если не указан в инвентаре
	DefaultLeadTimeDays = 2

	// PartsArrivalBufferDays фиксированный буфер поверх максимального срока поставки
	PartsArrivalBufferDays = 1
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
