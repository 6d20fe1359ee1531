package employees

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	employeeRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/employee"
	"github.com/m04kA/SMC-PetCareService/internal/service/employees/models"
	"github.com/m04kA/SMC-PetCareService/pkg/ptr"
	"github.com/m04kA/SMC-PetCareService/pkg/validation"
)

// Service реестр сотрудников
type Service struct {
	employeeRepo EmployeeRepository
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса сотрудников
func NewService(employeeRepo EmployeeRepository, location *time.Location, logger Logger) *Service {
	if location == nil {
		location = time.Local
	}

	return &Service{
		employeeRepo: employeeRepo,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Create регистрирует сотрудника
func (s *Service) Create(ctx context.Context, req *models.CreateEmployeeRequest) (*models.EmployeeResponse, error) {
	if err := validation.Struct(req); err != nil {
		s.logger.Warn("CreateEmployee: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	admission, err := domain.ParseDate(req.AdmissionDate, s.location)
	if err != nil {
		s.logger.Warn("CreateEmployee: %v", err)
		return nil, err
	}

	if err := checkSalary(req.Salary); err != nil {
		s.logger.Warn("CreateEmployee: %v", err)
		return nil, err
	}

	employee := &domain.Employee{
		Name:          strings.TrimSpace(req.Name),
		TaxID:         strings.TrimSpace(req.TaxID),
		Phone:         strings.TrimSpace(req.Phone),
		Email:         ptr.TrimmedOrNil(req.Email),
		Address:       ptr.TrimmedOrNil(req.Address),
		Role:          strings.TrimSpace(req.Role),
		Salary:        req.Salary,
		AdmissionDate: admission,
		Active:        true,
	}

	if err := s.checkUnique(ctx, employee); err != nil {
		return nil, err
	}

	created, err := s.employeeRepo.Create(ctx, employee)
	if err != nil {
		return nil, s.mapWriteError("CreateEmployee", err)
	}

	s.logger.Info("CreateEmployee: created employee id=%d", created.ID)
	return models.FromDomainEmployee(created), nil
}

// GetByID получает сотрудника по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.EmployeeResponse, error) {
	employee, err := s.get(ctx, "GetEmployee", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainEmployee(employee), nil
}

// GetByTaxID получает сотрудника по налоговому номеру
func (s *Service) GetByTaxID(ctx context.Context, taxID string) (*models.EmployeeResponse, error) {
	employee, err := s.employeeRepo.GetByTaxID(ctx, strings.TrimSpace(taxID))
	if err != nil {
		return nil, s.mapLookupError("GetEmployeeByTaxID", err)
	}
	return models.FromDomainEmployee(employee), nil
}

// GetByEmail получает сотрудника по email
func (s *Service) GetByEmail(ctx context.Context, email string) (*models.EmployeeResponse, error) {
	employee, err := s.employeeRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, s.mapLookupError("GetEmployeeByEmail", err)
	}
	return models.FromDomainEmployee(employee), nil
}

// Update частично обновляет сотрудника
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateEmployeeRequest) (*models.EmployeeResponse, error) {
	if err := validation.Struct(req); err != nil {
		s.logger.Warn("UpdateEmployee: validation failed for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := checkSalary(req.Salary); err != nil {
		s.logger.Warn("UpdateEmployee: %v", err)
		return nil, err
	}

	employee, err := s.get(ctx, "UpdateEmployee", id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		employee.Name = strings.TrimSpace(*req.Name)
	}
	if req.TaxID != nil {
		employee.TaxID = strings.TrimSpace(*req.TaxID)
	}
	if req.Phone != nil {
		employee.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Email != nil {
		employee.Email = ptr.TrimmedOrNil(req.Email)
	}
	if req.ClearEmail {
		employee.Email = nil
	}
	if req.Address != nil {
		employee.Address = ptr.TrimmedOrNil(req.Address)
	}
	if req.Role != nil {
		employee.Role = strings.TrimSpace(*req.Role)
	}
	if req.Salary != nil {
		employee.Salary = req.Salary
	}
	if req.ClearSalary {
		employee.Salary = nil
	}
	if req.AdmissionDate != nil {
		admission, err := domain.ParseDate(*req.AdmissionDate, s.location)
		if err != nil {
			s.logger.Warn("UpdateEmployee: %v", err)
			return nil, err
		}
		employee.AdmissionDate = admission
	}

	if err := s.checkUnique(ctx, employee); err != nil {
		return nil, err
	}

	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return nil, s.mapWriteError("UpdateEmployee", err)
	}

	s.logger.Info("UpdateEmployee: updated employee id=%d", id)
	return models.FromDomainEmployee(employee), nil
}

// Deactivate деактивирует сотрудника и проставляет дату увольнения (сегодня)
// Идемпотентна: повторный вызов не сдвигает дату увольнения
func (s *Service) Deactivate(ctx context.Context, id int64) (bool, error) {
	employee, err := s.get(ctx, "DeactivateEmployee", id)
	if err != nil {
		if errors.Is(err, ErrEmployeeNotFound) {
			return false, nil
		}
		return false, err
	}

	if !employee.Active && employee.TerminationDate != nil {
		return true, nil
	}

	today := domain.StartOfDay(s.timeProvider.Now().In(s.location))
	employee.Active = false
	employee.TerminationDate = &today

	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return false, s.mapWriteError("DeactivateEmployee", err)
	}

	s.logger.Info("DeactivateEmployee: employee id=%d terminated on %s", id, today.Format(domain.DateFormat))
	return true, nil
}

// Activate повторно активирует сотрудника и очищает дату увольнения
func (s *Service) Activate(ctx context.Context, id int64) (bool, error) {
	employee, err := s.get(ctx, "ActivateEmployee", id)
	if err != nil {
		if errors.Is(err, ErrEmployeeNotFound) {
			return false, nil
		}
		return false, err
	}

	employee.Active = true
	employee.TerminationDate = nil

	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return false, s.mapWriteError("ActivateEmployee", err)
	}

	s.logger.Info("ActivateEmployee: employee id=%d activated", id)
	return true, nil
}

// List возвращает сотрудников; active == nil - все
func (s *Service) List(ctx context.Context, active *bool) ([]models.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx, active)
	if err != nil {
		s.logger.Error("ListEmployees: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainEmployeeList(employees), nil
}

func checkSalary(salary *decimal.Decimal) error {
	if salary != nil && salary.IsNegative() {
		return ErrNegativeSalary
	}
	return nil
}

// checkUnique проверяет, что налоговый номер и email не заняты другим сотрудником
func (s *Service) checkUnique(ctx context.Context, employee *domain.Employee) error {
	existing, err := s.employeeRepo.GetByTaxID(ctx, employee.TaxID)
	if err != nil && !errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
		s.logger.Error("checkUnique: repository error: %v", err)
		return fmt.Errorf("%w: checkUnique - repository error: %v", ErrInternal, err)
	}
	if existing != nil && existing.ID != employee.ID {
		s.logger.Warn("checkUnique: tax id already used by employee id=%d", existing.ID)
		return ErrTaxIDTaken
	}

	if employee.Email == nil {
		return nil
	}

	existing, err = s.employeeRepo.GetByEmail(ctx, *employee.Email)
	if err != nil && !errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
		s.logger.Error("checkUnique: repository error: %v", err)
		return fmt.Errorf("%w: checkUnique - repository error: %v", ErrInternal, err)
	}
	if existing != nil && existing.ID != employee.ID {
		s.logger.Warn("checkUnique: email already used by employee id=%d", existing.ID)
		return ErrEmailTaken
	}

	return nil
}

func (s *Service) get(ctx context.Context, op string, id int64) (*domain.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapLookupError(op, err)
	}
	return employee, nil
}

func (s *Service) mapLookupError(op string, err error) error {
	if errors.Is(err, employeeRepo.ErrEmployeeNotFound) {
		s.logger.Warn("%s: employee not found", op)
		return ErrEmployeeNotFound
	}
	s.logger.Error("%s: repository error: %v", op, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func (s *Service) mapWriteError(op string, err error) error {
	switch {
	case errors.Is(err, employeeRepo.ErrEmployeeNotFound):
		return ErrEmployeeNotFound
	case errors.Is(err, employeeRepo.ErrDuplicate):
		s.logger.Warn("%s: %v", op, err)
		return ErrTaxIDTaken
	default:
		s.logger.Error("%s: repository error: %v", op, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}
