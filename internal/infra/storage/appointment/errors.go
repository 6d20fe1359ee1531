package appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrSlotNotAvailable возвращается, когда у сотрудника уже есть активная запись на это время
	// (нарушение частичного уникального индекса appointments_employee_slot_active_uniq
	// или конфликт сериализуемых транзакций)
	ErrSlotNotAvailable = errors.New("appointment.repository: slot not available")

	// ErrReferenceNotFound возвращается при нарушении внешнего ключа (клиент, питомец, услуга, сотрудник)
	ErrReferenceNotFound = errors.New("appointment.repository: referenced record not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)
