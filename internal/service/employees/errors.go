package employees

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

var (
	// ErrEmployeeNotFound возвращается, когда сотрудник не найден
	ErrEmployeeNotFound = fmt.Errorf("employee %w", domain.ErrNotFound)

	// ErrTaxIDTaken возвращается, когда налоговый номер уже зарегистрирован
	ErrTaxIDTaken = fmt.Errorf("%w: an employee with this tax id already exists", domain.ErrValidation)

	// ErrEmailTaken возвращается, когда email уже зарегистрирован
	ErrEmailTaken = fmt.Errorf("%w: an employee with this email already exists", domain.ErrValidation)

	// ErrNegativeSalary возвращается при отрицательной зарплате
	ErrNegativeSalary = fmt.Errorf("%w: salary cannot be negative", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("employees.service: internal error")
)
