package scheduler

import "errors"

var (
	// ErrNoSlotAvailable возвращается, когда в горизонте поиска нет свободного слота
	ErrNoSlotAvailable = errors.New("scheduler: no slot available within the search horizon")

	// ErrInvalidDuration возвращается при неположительной длительности услуги
	ErrInvalidDuration = errors.New("scheduler: service duration must be positive")

	// ErrInternal возвращается при ошибках чтения хранилища занятости
	ErrInternal = errors.New("scheduler: internal error")
)
