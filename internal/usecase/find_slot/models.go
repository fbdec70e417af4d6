package find_slot

import "time"

// Request модель запроса на поиск ближайшего слота
type Request struct {
	ServiceTypeID int64 // ID типа услуги
	CenterID      int64 // ID сервисного центра
}

// Response модель ответа с ближайшим доступным слотом
type Response struct {
	EarliestSlot     time.Time // Начало ближайшего доступного слота
	PartsArrivalDate time.Time // Нижняя граница по наличию деталей
}
