package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-PetCareService/internal/service/catalog/models"
	"github.com/m04kA/SMC-PetCareService/pkg/ptr"
	"github.com/m04kA/SMC-PetCareService/pkg/validation"
)

// Service каталог услуг
type Service struct {
	serviceRepo ServiceRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(serviceRepo ServiceRepository, logger Logger) *Service {
	return &Service{
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

// Create добавляет услугу в каталог
func (s *Service) Create(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	if err := validation.Struct(req); err != nil {
		s.logger.Warn("CreateService: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if req.Price == nil {
		s.logger.Warn("CreateService: price is missing")
		return nil, ErrPriceRequired
	}
	if err := checkAmounts(req.Price, req.EstimatedDurationMinutes); err != nil {
		s.logger.Warn("CreateService: %v", err)
		return nil, err
	}

	svc := &domain.Service{
		Name:                     strings.TrimSpace(req.Name),
		Description:              ptr.TrimmedOrNil(req.Description),
		Category:                 strings.TrimSpace(req.Category),
		Price:                    *req.Price,
		EstimatedDurationMinutes: req.EstimatedDurationMinutes,
		Notes:                    ptr.TrimmedOrNil(req.Notes),
		Active:                   true,
	}

	if err := s.checkName(ctx, svc); err != nil {
		return nil, err
	}

	created, err := s.serviceRepo.Create(ctx, svc)
	if err != nil {
		return nil, s.mapWriteError("CreateService", err)
	}

	s.logger.Info("CreateService: created service id=%d name=%q", created.ID, created.Name)
	return models.FromDomainService(created), nil
}

// GetByID получает услугу по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ServiceResponse, error) {
	svc, err := s.get(ctx, "GetService", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainService(svc), nil
}

// GetByName получает услугу по названию
func (s *Service) GetByName(ctx context.Context, name string) (*models.ServiceResponse, error) {
	svc, err := s.serviceRepo.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, s.mapLookupError("GetServiceByName", err)
	}
	return models.FromDomainService(svc), nil
}

// Update частично обновляет услугу
// Переименование в название другой услуги запрещено
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	if err := validation.Struct(req); err != nil {
		s.logger.Warn("UpdateService: validation failed for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := checkAmounts(req.Price, req.EstimatedDurationMinutes); err != nil {
		s.logger.Warn("UpdateService: %v", err)
		return nil, err
	}

	svc, err := s.get(ctx, "UpdateService", id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		svc.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		svc.Description = ptr.TrimmedOrNil(req.Description)
	}
	if req.Category != nil {
		svc.Category = strings.TrimSpace(*req.Category)
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.EstimatedDurationMinutes != nil {
		svc.EstimatedDurationMinutes = req.EstimatedDurationMinutes
	}
	if req.Notes != nil {
		svc.Notes = ptr.TrimmedOrNil(req.Notes)
	}

	if err := s.checkName(ctx, svc); err != nil {
		return nil, err
	}

	if err := s.serviceRepo.Update(ctx, svc); err != nil {
		return nil, s.mapWriteError("UpdateService", err)
	}

	s.logger.Info("UpdateService: updated service id=%d", id)
	return models.FromDomainService(svc), nil
}

// Deactivate снимает услугу с продажи; (false, nil) если услуга не найдена
func (s *Service) Deactivate(ctx context.Context, id int64) (bool, error) {
	return s.setActive(ctx, "DeactivateService", id, false)
}

// Activate возвращает услугу в каталог
func (s *Service) Activate(ctx context.Context, id int64) (bool, error) {
	return s.setActive(ctx, "ActivateService", id, true)
}

// List возвращает услуги; active == nil - все
func (s *Service) List(ctx context.Context, active *bool) ([]models.ServiceResponse, error) {
	services, err := s.list(ctx, "ListServices", domain.ServiceFilter{Active: active})
	if err != nil {
		return nil, err
	}
	return models.FromDomainServiceList(services), nil
}

// ListByCategory возвращает услуги категории
func (s *Service) ListByCategory(ctx context.Context, category string) ([]models.ServiceResponse, error) {
	category = strings.TrimSpace(category)
	services, err := s.list(ctx, "ListServicesByCategory", domain.ServiceFilter{Category: &category})
	if err != nil {
		return nil, err
	}
	return models.FromDomainServiceList(services), nil
}

// Categories возвращает стандартные категории и категории, уже используемые в каталоге
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	used, err := s.serviceRepo.Categories(ctx)
	if err != nil {
		s.logger.Error("ListCategories: repository error: %v", err)
		return nil, fmt.Errorf("%w: Categories - repository error: %v", ErrInternal, err)
	}

	result := make([]string, 0, len(domain.DefaultServiceCategories)+len(used))
	seen := make(map[string]struct{}, cap(result))
	for _, c := range domain.DefaultServiceCategories {
		seen[c] = struct{}{}
		result = append(result, c)
	}

	extra := make([]string, 0)
	for _, c := range used {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		extra = append(extra, c)
	}
	sort.Strings(extra)

	return append(result, extra...), nil
}

// Statistics возвращает сводку по каталогу
func (s *Service) Statistics(ctx context.Context) (*models.StatisticsResponse, error) {
	services, err := s.list(ctx, "ServiceStatistics", domain.ServiceFilter{})
	if err != nil {
		return nil, err
	}

	stats := &domain.ServiceStatistics{
		Total:      len(services),
		ByCategory: make(map[string]int),
	}
	for _, svc := range services {
		if svc.Active {
			stats.Active++
		}
		stats.ByCategory[svc.Category]++
	}
	stats.Inactive = stats.Total - stats.Active

	return models.FromDomainStatistics(stats), nil
}

func (s *Service) setActive(ctx context.Context, op string, id int64, active bool) (bool, error) {
	svc, err := s.get(ctx, op, id)
	if err != nil {
		if errors.Is(err, ErrServiceNotFound) {
			return false, nil
		}
		return false, err
	}

	svc.Active = active
	if err := s.serviceRepo.Update(ctx, svc); err != nil {
		return false, s.mapWriteError(op, err)
	}

	s.logger.Info("%s: service id=%d active=%t", op, id, active)
	return true, nil
}

func (s *Service) list(ctx context.Context, op string, filter domain.ServiceFilter) ([]*domain.Service, error) {
	services, err := s.serviceRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("%s: repository error: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return services, nil
}

func checkAmounts(price *decimal.Decimal, duration *int) error {
	if price != nil && price.IsNegative() {
		return ErrNegativePrice
	}
	if duration != nil && *duration < 0 {
		return ErrNegativeDuration
	}
	return nil
}

// checkName проверяет, что название не занято другой услугой
func (s *Service) checkName(ctx context.Context, svc *domain.Service) error {
	existing, err := s.serviceRepo.GetByName(ctx, svc.Name)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return nil
		}
		s.logger.Error("checkName: repository error: %v", err)
		return fmt.Errorf("%w: checkName - repository error: %v", ErrInternal, err)
	}

	if existing.ID != svc.ID {
		s.logger.Warn("checkName: name %q already used by service id=%d", svc.Name, existing.ID)
		return ErrNameTaken
	}
	return nil
}

func (s *Service) get(ctx context.Context, op string, id int64) (*domain.Service, error) {
	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapLookupError(op, err)
	}
	return svc, nil
}

func (s *Service) mapLookupError(op string, err error) error {
	if errors.Is(err, catalogRepo.ErrServiceNotFound) {
		s.logger.Warn("%s: service not found", op)
		return ErrServiceNotFound
	}
	s.logger.Error("%s: repository error: %v", op, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func (s *Service) mapWriteError(op string, err error) error {
	switch {
	case errors.Is(err, catalogRepo.ErrServiceNotFound):
		return ErrServiceNotFound
	case errors.Is(err, catalogRepo.ErrDuplicate):
		s.logger.Warn("%s: %v", op, err)
		return ErrNameTaken
	default:
		s.logger.Error("%s: repository error: %v", op, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}
