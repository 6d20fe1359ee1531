package get_client_appointments

import (
	"net/http"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
)

const msgInvalidID = "некорректный ID клиента"

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/agendamentos/cliente/{clientId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	clientID, err := handlers.PathInt64(r, "clientId")
	if err != nil {
		h.logger.Warn("GET /agendamentos/cliente/{id} - Invalid ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	result, err := h.service.ListByClient(r.Context(), clientID)
	if err != nil {
		h.logger.Error("GET /agendamentos/cliente/{id} - Failed to get appointments: client_id=%d, error=%v", clientID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /agendamentos/cliente/{id} - Appointments retrieved successfully: client_id=%d, count=%d",
		clientID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result.Appointments)
}
