package parts

import "errors"

var (
	// ErrInternal возвращается при ошибках чтения инвентаря
	ErrInternal = errors.New("parts: internal error")
)
