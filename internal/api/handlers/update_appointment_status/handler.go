package update_appointment_status

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/service/appointments/models"
	"github.com/m04kA/SMC-PetCareService/pkg/validation"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgStatusRequired       = "поле status обязательно"
	msgSlotTaken            = "у сотрудника уже есть активная запись на это время"
)

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

// Handle PUT /api/agendamentos/{id}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("PUT /agendamentos/{id}/status - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /agendamentos/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := validation.Struct(&req); err != nil {
		h.logger.Warn("PUT /agendamentos/{id}/status - Validation failed: %v", err)
		handlers.RespondBadRequest(w, msgStatusRequired)
		return
	}

	result, err := h.service.TransitionStatus(r.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrConflict):
			h.logger.Warn("PUT /agendamentos/{id}/status - Slot taken: id=%d", id)
			handlers.RespondBadRequest(w, msgSlotTaken)

		case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("PUT /agendamentos/{id}/status - Rejected: id=%d, status=%s, error=%v", id, req.Status, err)
			handlers.RespondServiceError(w, err)

		default:
			h.logger.Error("PUT /agendamentos/{id}/status - Failed to change status: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /agendamentos/{id}/status - Status changed: id=%d, status=%s", id, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
