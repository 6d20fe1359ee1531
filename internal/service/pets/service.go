package pets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	clientRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/client"
	petRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/pet"
	"github.com/m04kA/SMC-PetCareService/internal/service/pets/models"
	"github.com/m04kA/SMC-PetCareService/pkg/ptr"
	"github.com/m04kA/SMC-PetCareService/pkg/validation"
)

// Service реестр питомцев
type Service struct {
	petRepo      PetRepository
	clientRepo   ClientRepository
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса питомцев
// location задает календарь, в котором проверяется дата рождения
func NewService(petRepo PetRepository, clientRepo ClientRepository, location *time.Location, logger Logger) *Service {
	if location == nil {
		location = time.Local
	}

	return &Service{
		petRepo:      petRepo,
		clientRepo:   clientRepo,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Create регистрирует питомца
// Владелец должен существовать и быть активным, имя уникально в пределах владельца
func (s *Service) Create(ctx context.Context, req *models.CreatePetRequest) (*models.PetResponse, error) {
	if err := validation.Struct(req); err != nil {
		s.logger.Warn("CreatePet: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	species, err := domain.ParseSpecies(req.Species)
	if err != nil {
		s.logger.Warn("CreatePet: %v", err)
		return nil, err
	}

	pet := &domain.Pet{
		Name:    strings.TrimSpace(req.Name),
		Species: species,
		Breed:   ptr.TrimmedOrNil(req.Breed),
		Color:   ptr.TrimmedOrNil(req.Color),
		Notes:   ptr.TrimmedOrNil(req.Notes),
		Active:  true,
		OwnerID: req.OwnerID,
	}

	if err := s.applyDetails(pet, req.Sex, req.BirthDate, req.Weight); err != nil {
		s.logger.Warn("CreatePet: %v", err)
		return nil, err
	}

	if err := s.checkOwner(ctx, "CreatePet", pet.OwnerID); err != nil {
		return nil, err
	}

	if err := s.checkName(ctx, pet); err != nil {
		return nil, err
	}

	created, err := s.petRepo.Create(ctx, pet)
	if err != nil {
		return nil, s.mapWriteError("CreatePet", err)
	}

	s.logger.Info("CreatePet: created pet id=%d for owner id=%d", created.ID, created.OwnerID)
	return models.FromDomainPet(created, s.now()), nil
}

// GetByID получает питомца по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.PetResponse, error) {
	pet, err := s.get(ctx, "GetPet", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainPet(pet, s.now()), nil
}

// GetByNameAndOwner получает питомца по имени в пределах владельца
func (s *Service) GetByNameAndOwner(ctx context.Context, name string, ownerID int64) (*models.PetResponse, error) {
	pet, err := s.petRepo.GetByNameAndOwner(ctx, strings.TrimSpace(name), ownerID)
	if err != nil {
		return nil, s.mapLookupError("GetPetByName", err)
	}
	return models.FromDomainPet(pet, s.now()), nil
}

// Update частично обновляет питомца
// Смена владельца допускается только на активного клиента
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdatePetRequest) (*models.PetResponse, error) {
	if err := validation.Struct(req); err != nil {
		s.logger.Warn("UpdatePet: validation failed for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	pet, err := s.get(ctx, "UpdatePet", id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		pet.Name = strings.TrimSpace(*req.Name)
	}
	if req.Species != nil {
		species, err := domain.ParseSpecies(*req.Species)
		if err != nil {
			s.logger.Warn("UpdatePet: %v", err)
			return nil, err
		}
		pet.Species = species
	}
	if req.Breed != nil {
		pet.Breed = ptr.TrimmedOrNil(req.Breed)
	}
	if req.Color != nil {
		pet.Color = ptr.TrimmedOrNil(req.Color)
	}
	if req.Notes != nil {
		pet.Notes = ptr.TrimmedOrNil(req.Notes)
	}
	if err := s.applyDetails(pet, req.Sex, req.BirthDate, req.Weight); err != nil {
		s.logger.Warn("UpdatePet: %v", err)
		return nil, err
	}

	if req.OwnerID != nil && *req.OwnerID != pet.OwnerID {
		if err := s.checkOwner(ctx, "UpdatePet", *req.OwnerID); err != nil {
			return nil, err
		}
		pet.OwnerID = *req.OwnerID
	}

	if err := s.checkName(ctx, pet); err != nil {
		return nil, err
	}

	if err := s.petRepo.Update(ctx, pet); err != nil {
		return nil, s.mapWriteError("UpdatePet", err)
	}

	s.logger.Info("UpdatePet: updated pet id=%d", id)
	return models.FromDomainPet(pet, s.now()), nil
}

// Deactivate деактивирует питомца
// Идемпотентна: (false, nil) если питомец не найден
func (s *Service) Deactivate(ctx context.Context, id int64) (bool, error) {
	pet, err := s.get(ctx, "DeactivatePet", id)
	if err != nil {
		if errors.Is(err, ErrPetNotFound) {
			return false, nil
		}
		return false, err
	}

	pet.Active = false
	if err := s.petRepo.Update(ctx, pet); err != nil {
		return false, s.mapWriteError("DeactivatePet", err)
	}

	s.logger.Info("DeactivatePet: pet id=%d deactivated", id)
	return true, nil
}

// Activate повторно активирует питомца
// Возвращает ErrOwnerInactive, если владелец деактивирован
func (s *Service) Activate(ctx context.Context, id int64) (bool, error) {
	pet, err := s.get(ctx, "ActivatePet", id)
	if err != nil {
		if errors.Is(err, ErrPetNotFound) {
			return false, nil
		}
		return false, err
	}

	if err := s.checkOwner(ctx, "ActivatePet", pet.OwnerID); err != nil {
		return false, err
	}

	pet.Active = true
	if err := s.petRepo.Update(ctx, pet); err != nil {
		return false, s.mapWriteError("ActivatePet", err)
	}

	s.logger.Info("ActivatePet: pet id=%d activated", id)
	return true, nil
}

// List возвращает питомцев; active == nil - все
func (s *Service) List(ctx context.Context, active *bool) ([]models.PetResponse, error) {
	return s.list(ctx, "ListPets", domain.PetFilter{Active: active})
}

// ListByOwner возвращает питомцев клиента
func (s *Service) ListByOwner(ctx context.Context, clientID int64, activeOnly bool) ([]models.PetResponse, error) {
	if _, err := s.clientRepo.GetByID(ctx, clientID); err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			s.logger.Warn("ListPetsByOwner: client id=%d not found", clientID)
			return nil, ErrClientNotFound
		}
		s.logger.Error("ListPetsByOwner: failed to get client id=%d: %v", clientID, err)
		return nil, fmt.Errorf("%w: ListByOwner - repository error: %v", ErrInternal, err)
	}

	filter := domain.PetFilter{OwnerID: &clientID}
	if activeOnly {
		filter.Active = ptr.Ptr(true)
	}
	return s.list(ctx, "ListPetsByOwner", filter)
}

// Species возвращает допустимые виды животных
func (s *Service) Species() []string {
	out := make([]string, 0, len(domain.AllSpecies))
	for _, sp := range domain.AllSpecies {
		out = append(out, string(sp))
	}
	return out
}

// Sexes возвращает допустимые значения пола
func (s *Service) Sexes() []string {
	out := make([]string, 0, len(domain.AllSexes))
	for _, sex := range domain.AllSexes {
		out = append(out, string(sex))
	}
	return out
}

func (s *Service) list(ctx context.Context, op string, filter domain.PetFilter) ([]models.PetResponse, error) {
	pets, err := s.petRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("%s: repository error: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return models.FromDomainPetList(pets, s.now()), nil
}

// applyDetails разбирает и проверяет пол, дату рождения и вес; nil - поле не меняется
func (s *Service) applyDetails(pet *domain.Pet, sex, birthDate *string, weight *float64) error {
	if sex != nil {
		parsed, err := domain.ParseSex(*sex)
		if err != nil {
			return err
		}
		pet.Sex = &parsed
	}

	if birthDate != nil {
		date, err := domain.ParseDate(*birthDate, s.location)
		if err != nil {
			return err
		}
		if date.After(domain.StartOfDay(s.now())) {
			return ErrBirthDateInFuture
		}
		pet.BirthDate = &date
	}

	if weight != nil {
		if *weight <= 0 {
			return ErrInvalidWeight
		}
		pet.Weight = weight
	}

	return nil
}

// checkOwner проверяет, что клиент существует и активен
func (s *Service) checkOwner(ctx context.Context, op string, ownerID int64) error {
	owner, err := s.clientRepo.GetByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			s.logger.Warn("%s: owner id=%d not found", op, ownerID)
			return ErrOwnerNotFound
		}
		s.logger.Error("%s: failed to get owner id=%d: %v", op, ownerID, err)
		return fmt.Errorf("%w: %s - failed to get owner: %v", ErrInternal, op, err)
	}

	if !owner.Active {
		s.logger.Warn("%s: owner id=%d is inactive", op, ownerID)
		return ErrOwnerInactive
	}

	return nil
}

// checkName проверяет уникальность имени в пределах владельца
func (s *Service) checkName(ctx context.Context, pet *domain.Pet) error {
	existing, err := s.petRepo.GetByNameAndOwner(ctx, pet.Name, pet.OwnerID)
	if err != nil {
		if errors.Is(err, petRepo.ErrPetNotFound) {
			return nil
		}
		s.logger.Error("checkName: repository error: %v", err)
		return fmt.Errorf("%w: checkName - repository error: %v", ErrInternal, err)
	}

	if existing.ID != pet.ID {
		s.logger.Warn("checkName: owner id=%d already has pet %q", pet.OwnerID, pet.Name)
		return ErrNameTaken
	}
	return nil
}

func (s *Service) get(ctx context.Context, op string, id int64) (*domain.Pet, error) {
	pet, err := s.petRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapLookupError(op, err)
	}
	return pet, nil
}

func (s *Service) mapLookupError(op string, err error) error {
	if errors.Is(err, petRepo.ErrPetNotFound) {
		s.logger.Warn("%s: pet not found", op)
		return ErrPetNotFound
	}
	s.logger.Error("%s: repository error: %v", op, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
}

func (s *Service) mapWriteError(op string, err error) error {
	switch {
	case errors.Is(err, petRepo.ErrPetNotFound):
		return ErrPetNotFound
	case errors.Is(err, petRepo.ErrDuplicate):
		s.logger.Warn("%s: %v", op, err)
		return ErrNameTaken
	case errors.Is(err, petRepo.ErrOwnerNotFound):
		s.logger.Warn("%s: %v", op, err)
		return ErrOwnerNotFound
	default:
		s.logger.Error("%s: repository error: %v", op, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}

func (s *Service) now() time.Time {
	return s.timeProvider.Now().In(s.location)
}
