package clients

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	clientRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/client"
	"github.com/m04kA/SMC-PetCareService/internal/service/clients/models"
	"github.com/m04kA/SMC-PetCareService/pkg/ptr"
	"github.com/m04kA/SMC-PetCareService/pkg/validation"
)

// Service реестр клиентов
type Service struct {
	clientRepo ClientRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса клиентов
func NewService(clientRepo ClientRepository, logger Logger) *Service {
	return &Service{
		clientRepo: clientRepo,
		logger:     logger,
	}
}

// Create регистрирует нового клиента
// Налоговый номер и email должны быть уникальны среди всех клиентов, включая неактивных
func (s *Service) Create(ctx context.Context, req *models.CreateClientRequest) (*models.ClientResponse, error) {
	if err := validation.Struct(req); err != nil {
		s.logger.Warn("CreateClient: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	client := &domain.Client{
		Name:    strings.TrimSpace(req.Name),
		TaxID:   strings.TrimSpace(req.TaxID),
		Phone:   strings.TrimSpace(req.Phone),
		Email:   ptr.TrimmedOrNil(req.Email),
		Address: ptr.TrimmedOrNil(req.Address),
		Active:  true,
	}

	if err := s.checkUnique(ctx, client); err != nil {
		return nil, err
	}

	created, err := s.clientRepo.Create(ctx, client)
	if err != nil {
		if errors.Is(err, clientRepo.ErrDuplicate) {
			s.logger.Warn("CreateClient: duplicate tax id or email: %v", err)
			return nil, ErrTaxIDTaken
		}
		s.logger.Error("CreateClient: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateClient: created client id=%d", created.ID)
	return models.FromDomainClient(created), nil
}

// GetByID получает клиента по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ClientResponse, error) {
	client, err := s.get(ctx, "GetClient", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainClient(client), nil
}

// GetByTaxID получает клиента по налоговому номеру
func (s *Service) GetByTaxID(ctx context.Context, taxID string) (*models.ClientResponse, error) {
	client, err := s.clientRepo.GetByTaxID(ctx, strings.TrimSpace(taxID))
	if err != nil {
		return nil, s.mapLookupError("GetClientByTaxID", err)
	}
	return models.FromDomainClient(client), nil
}

// GetByEmail получает клиента по email
func (s *Service) GetByEmail(ctx context.Context, email string) (*models.ClientResponse, error) {
	client, err := s.clientRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, s.mapLookupError("GetClientByEmail", err)
	}
	return models.FromDomainClient(client), nil
}

// Update частично обновляет клиента
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateClientRequest) (*models.ClientResponse, error) {
	if err := validation.Struct(req); err != nil {
		s.logger.Warn("UpdateClient: validation failed for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	client, err := s.get(ctx, "UpdateClient", id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		client.Name = strings.TrimSpace(*req.Name)
	}
	if req.TaxID != nil {
		client.TaxID = strings.TrimSpace(*req.TaxID)
	}
	if req.Phone != nil {
		client.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Email != nil {
		client.Email = ptr.TrimmedOrNil(req.Email)
	}
	if req.ClearEmail {
		client.Email = nil
	}
	if req.Address != nil {
		client.Address = ptr.TrimmedOrNil(req.Address)
	}
	if req.ClearAddress {
		client.Address = nil
	}

	if err := s.checkUnique(ctx, client); err != nil {
		return nil, err
	}

	if err := s.save(ctx, "UpdateClient", client); err != nil {
		return nil, err
	}

	s.logger.Info("UpdateClient: updated client id=%d", id)
	return models.FromDomainClient(client), nil
}

// Deactivate деактивирует клиента
// Идемпотентна: (true, nil) если клиент найден, (false, nil) если нет. Питомцы и записи не затрагиваются.
func (s *Service) Deactivate(ctx context.Context, id int64) (bool, error) {
	return s.setActive(ctx, "DeactivateClient", id, false)
}

// Activate повторно активирует клиента
func (s *Service) Activate(ctx context.Context, id int64) (bool, error) {
	return s.setActive(ctx, "ActivateClient", id, true)
}

// List возвращает клиентов; active == nil - все
func (s *Service) List(ctx context.Context, active *bool) ([]models.ClientResponse, error) {
	clients, err := s.clientRepo.List(ctx, active)
	if err != nil {
		s.logger.Error("ListClients: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainClientList(clients), nil
}

func (s *Service) setActive(ctx context.Context, op string, id int64, active bool) (bool, error) {
	client, err := s.get(ctx, op, id)
	if err != nil {
		if errors.Is(err, ErrClientNotFound) {
			return false, nil
		}
		return false, err
	}

	client.Active = active
	if err := s.save(ctx, op, client); err != nil {
		return false, err
	}

	s.logger.Info("%s: client id=%d active=%t", op, id, active)
	return true, nil
}

// checkUnique проверяет, что налоговый номер и email не заняты другим клиентом
func (s *Service) checkUnique(ctx context.Context, client *domain.Client) error {
	existing, err := s.clientRepo.GetByTaxID(ctx, client.TaxID)
	if err != nil && !errors.Is(err, clientRepo.ErrClientNotFound) {
		s.logger.Error("checkUnique: repository error: %v", err)
		return fmt.Errorf("%w: checkUnique - repository error: %v", ErrInternal, err)
	}
	if existing != nil && existing.ID != client.ID {
		s.logger.Warn("checkUnique: tax id already used by client id=%d", existing.ID)
		return ErrTaxIDTaken
	}

	if client.Email == nil {
		return nil
	}

	existing, err = s.clientRepo.GetByEmail(ctx, *client.Email)
	if err != nil && !errors.Is(err, clientRepo.ErrClientNotFound) {
		s.logger.Error("checkUnique: repository error: %v", err)
		return fmt.Errorf("%w: checkUnique - repository error: %v", ErrInternal, err)
	}
	if existing != nil && existing.ID != client.ID {
		s.logger.Warn("checkUnique: email already used by client id=%d", existing.ID)
		return ErrEmailTaken
	}

	return nil
}

func (s *Service) get(ctx context.Context, op string, id int64) (*domain.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapLookupError(op, err)
	}
	return client, nil
}

func (s *Service) save(ctx context.Context, op string, client *domain.Client) error {
	if err := s.clientRepo.Update(ctx, client); err != nil {
		switch {
		case errors.Is(err, clientRepo.ErrClientNotFound):
			return ErrClientNotFound
		case errors.Is(err, clientRepo.ErrDuplicate):
			s.logger.Warn("%s: duplicate tax id or email for client id=%d", op, client.ID)
			return ErrTaxIDTaken
		default:
			s.logger.Error("%s: repository error for client id=%d: %v", op, client.ID, err)
			return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
		}
	}
	return nil
}

func (s *Service) mapLookupError(op string, err error) error {
	if errors.Is(err, clientRepo.ErrClientNotFound) {
		s.logger.Warn("%s: client not found", op)
		return ErrClientNotFound
	}
	s.logger.Error("%s: repository error: %v", op, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}
