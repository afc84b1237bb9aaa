package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrProfessionalNotFound возвращается, когда мастер не найден при блокировке или вставке
	ErrProfessionalNotFound = errors.New("booking.repository: professional not found")

	// ErrServiceNotFound возвращается, когда услуга бронирования удалена до вставки
	ErrServiceNotFound = errors.New("booking.repository: service not found")

	// ErrOverlap возвращается, когда вставка нарушила ограничение непересечения интервалов
	ErrOverlap = errors.New("booking.repository: booking interval overlaps an existing booking")

	// ErrReferenceNotFound возвращается при нарушении внешнего ключа (мастер или услуга удалены)
	ErrReferenceNotFound = errors.New("booking.repository: referenced professional or service not found")

	// ErrNotInTransaction возвращается, когда блокировка запрошена вне транзакции
	ErrNotInTransaction = errors.New("booking.repository: operation requires a transaction")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
