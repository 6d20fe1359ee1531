package clients

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

var (
	// ErrClientNotFound возвращается, когда клиент не найден
	ErrClientNotFound = fmt.Errorf("client %w", domain.ErrNotFound)

	// ErrTaxIDTaken возвращается, когда налоговый номер уже зарегистрирован (у активного или неактивного клиента)
	ErrTaxIDTaken = fmt.Errorf("%w: a client with this tax id already exists", domain.ErrValidation)

	// ErrEmailTaken возвращается, когда email уже зарегистрирован
	ErrEmailTaken = fmt.Errorf("%w: a client with this email already exists", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("clients.service: internal error")
)
