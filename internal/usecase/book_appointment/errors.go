package book_appointment

import "errors"

var (
	// ErrCustomerNotFound возвращается, когда клиент не найден
	ErrCustomerNotFound = errors.New("book_appointment: customer not found")

	// ErrVehicleNotFound возвращается, когда автомобиль не найден
	ErrVehicleNotFound = errors.New("book_appointment: vehicle not found")

	// ErrVehicleOwnership возвращается, когда автомобиль не принадлежит клиенту
	ErrVehicleOwnership = errors.New("book_appointment: vehicle does not belong to customer")

	// ErrServiceTypeNotFound возвращается, когда тип услуги не найден
	ErrServiceTypeNotFound = errors.New("book_appointment: service type not found")

	// ErrCenterNotFound возвращается, когда сервисный центр не найден
	ErrCenterNotFound = errors.New("book_appointment: service center not found")

	// ErrSlotNotAvailable возвращается, когда к моменту фиксации не осталось
	// ни одного допустимого назначения - слот могли занять конкурентно
	ErrSlotNotAvailable = errors.New("book_appointment: requested time slot is no longer available")

	// ErrSlotOutOfRange возвращается, когда вычисленный слот выходит за рабочий
	// день. Защитная проверка, при корректном движке недостижима.
	ErrSlotOutOfRange = errors.New("book_appointment: calculated time slot is outside working hours")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("book_appointment: internal error")
)
