package find_slot

import "errors"

var (
	// ErrServiceTypeNotFound возвращается, когда тип услуги не найден
	ErrServiceTypeNotFound = errors.New("find_slot: service type not found")

	// ErrCenterNotFound возвращается, когда сервисный центр не найден
	ErrCenterNotFound = errors.New("find_slot: service center not found")

	// ErrNoQualifiedTechnicians возвращается, когда в центре нет техников требуемого уровня
	ErrNoQualifiedTechnicians = errors.New("find_slot: no qualified technicians at this center")

	// ErrNoQualifiedBays возвращается, когда в центре нет постов требуемой категории
	ErrNoQualifiedBays = errors.New("find_slot: no qualified service bays at this center")

	// ErrNoSlotAvailable возвращается, когда в горизонте поиска нет свободного слота
	ErrNoSlotAvailable = errors.New("find_slot: no slot available in the search horizon")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("find_slot: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("find_slot: internal error")
)
