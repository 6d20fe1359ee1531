package get_client_pets

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
	"github.com/m04kA/SMC-PetCareService/internal/service/pets"
)

const (
	msgInvalidClientID = "некорректный ID клиента"
	msgClientNotFound  = "клиент не найден"
)

type Handler struct {
	service PetService
	logger  Logger
}

func NewHandler(service PetService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/clientes/{id}/pets
// Возвращает только активных питомцев клиента
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("GET /clientes/{id}/pets - Invalid client ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClientID)
		return
	}

	result, err := h.service.ListByOwner(r.Context(), clientID, true)
	if err != nil {
		switch {
		case errors.Is(err, pets.ErrClientNotFound):
			h.logger.Warn("GET /clientes/{id}/pets - Client not found: client_id=%d", clientID)
			handlers.RespondNotFound(w, msgClientNotFound)

		default:
			h.logger.Error("GET /clientes/{id}/pets - Failed to get pets: client_id=%d, error=%v", clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /clientes/{id}/pets - Pets retrieved successfully: client_id=%d, count=%d", clientID, len(result))
	handlers.RespondJSON(w, http.StatusOK, result)
}
