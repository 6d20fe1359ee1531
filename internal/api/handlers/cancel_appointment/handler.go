package cancel_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

const msgInvalidAppointmentID = "некорректный ID записи"

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

// Handle DELETE /api/agendamentos/{id}
// Запись не удаляется, а переводится в статус cancelled
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("DELETE /agendamentos/{id} - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	result, err := h.service.Cancel(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("DELETE /agendamentos/{id} - Appointment not found: id=%d", id)
			handlers.RespondServiceError(w, err)

		case errors.Is(err, domain.ErrValidation):
			h.logger.Warn("DELETE /agendamentos/{id} - Cannot cancel: id=%d, error=%v", id, err)
			handlers.RespondServiceError(w, err)

		default:
			h.logger.Error("DELETE /agendamentos/{id} - Failed to cancel appointment: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /agendamentos/{id} - Appointment cancelled successfully: id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}
