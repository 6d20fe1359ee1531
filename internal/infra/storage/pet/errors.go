package pet

import "errors"

var (
	// ErrPetNotFound возвращается, когда питомец не найден
	ErrPetNotFound = errors.New("pet.repository: pet not found")

	// ErrDuplicate возвращается, когда у владельца уже есть питомец с таким именем
	ErrDuplicate = errors.New("pet.repository: owner already has a pet with this name")

	// ErrOwnerNotFound возвращается при нарушении внешнего ключа owner_id
	ErrOwnerNotFound = errors.New("pet.repository: owner not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("pet.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("pet.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("pet.repository: failed to scan row")
)
