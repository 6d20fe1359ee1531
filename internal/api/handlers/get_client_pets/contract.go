package get_client_pets

import (
	"context"

	"github.com/m04kA/SMC-PetCareService/internal/service/pets/models"
)

type PetService interface {
	ListByOwner(ctx context.Context, clientID int64, activeOnly bool) ([]models.PetResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
