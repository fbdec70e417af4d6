package book_appointment

import "time"

// Request модель запроса на бронирование записи
type Request struct {
	CustomerID    int64     // ID клиента
	VehicleID     int64     // ID автомобиля
	ServiceTypeID int64     // ID типа услуги
	CenterID      int64     // ID сервисного центра
	StartTime     time.Time // Запрошенное время начала (нижняя граница повторного поиска)
	Emergency     bool      // Признак срочной записи
}

// ProcurementTaskInfo информация о созданной задаче снабжения
type ProcurementTaskInfo struct {
	ID       int64     // ID задачи
	PartID   int64     // ID детали
	PartName string    // Имя детали
	NeededBy time.Time // К какой дате нужна деталь
	Status   string    // Статус задачи
}

// Response модель ответа с зафиксированной записью
type Response struct {
	ID            int64     // ID записи
	CustomerID    int64     // ID клиента
	VehicleID     int64     // ID автомобиля
	ServiceTypeID int64     // ID типа услуги
	CenterID      int64     // ID центра
	StartTime     time.Time // Фактическое начало
	EndTime       time.Time // Фактическое окончание
	Status        string    // CONFIRMED или PENDING_PARTS
	Emergency     bool      // Признак срочной записи

	TechnicianID int64 // Назначенный техник
	BayID        int64 // Назначенный пост
	SlotIndex    int   // Индекс назначенного слота

	ProcurementTasks []ProcurementTaskInfo // Задачи снабжения по дефицитным деталям

	CreatedAt time.Time // Время создания
}
