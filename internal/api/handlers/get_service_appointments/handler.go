package get_service_appointments

import (
	"net/http"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
)

const msgInvalidID = "некорректный ID услуги"

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

// Handle GET /api/agendamentos/servico/{serviceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID, err := handlers.PathInt64(r, "serviceId")
	if err != nil {
		h.logger.Warn("GET /agendamentos/servico/{id} - Invalid ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	result, err := h.service.ListByService(r.Context(), serviceID)
	if err != nil {
		h.logger.Error("GET /agendamentos/servico/{id} - Failed to get appointments: service_id=%d, error=%v", serviceID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /agendamentos/servico/{id} - Appointments retrieved successfully: service_id=%d, count=%d",
		serviceID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result.Appointments)
}
