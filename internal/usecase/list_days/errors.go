package list_days

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных параметрах запроса
	ErrInvalidInput = errors.New("list_days: invalid input data")

	// ErrProfessionalNotFound возвращается, когда мастер не найден или мастеров нет
	ErrProfessionalNotFound = errors.New("list_days: professional not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("list_days: internal error")
)
