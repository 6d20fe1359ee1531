package pets

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

var (
	// ErrPetNotFound возвращается, когда питомец не найден
	ErrPetNotFound = fmt.Errorf("pet %w", domain.ErrNotFound)

	// ErrClientNotFound возвращается при запросе питомцев несуществующего клиента
	ErrClientNotFound = fmt.Errorf("client %w", domain.ErrNotFound)

	// ErrOwnerNotFound возвращается, когда указанный владелец не существует
	ErrOwnerNotFound = fmt.Errorf("%w: owner client not found", domain.ErrValidation)

	// ErrOwnerInactive возвращается, когда владелец деактивирован
	ErrOwnerInactive = fmt.Errorf("%w: owner client is inactive", domain.ErrValidation)

	// ErrNameTaken возвращается, когда у владельца уже есть питомец с таким именем
	ErrNameTaken = fmt.Errorf("%w: this client already has a pet with this name", domain.ErrValidation)

	// ErrBirthDateInFuture возвращается, когда дата рождения в будущем
	ErrBirthDateInFuture = fmt.Errorf("%w: birthDate cannot be in the future", domain.ErrValidation)

	// ErrInvalidWeight возвращается, когда вес не положительный
	ErrInvalidWeight = fmt.Errorf("%w: weight must be greater than 0", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("pets.service: internal error")
)
