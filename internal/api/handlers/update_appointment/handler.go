package update_appointment

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgSlotTaken            = "у сотрудника уже есть запись на это время"
)

type Handler struct {
	useCase  UpdateAppointmentUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase UpdateAppointmentUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle PUT /api/agendamentos/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("PUT /agendamentos/{id} - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req UpdateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /agendamentos/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(h.location)
	if err != nil {
		h.logger.Warn("PUT /agendamentos/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), id, useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrConflict):
			h.logger.Warn("PUT /agendamentos/{id} - Slot taken: id=%d, error=%v", id, err)
			handlers.RespondBadRequest(w, msgSlotTaken)

		case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("PUT /agendamentos/{id} - Rejected: id=%d, error=%v", id, err)
			handlers.RespondServiceError(w, err)

		default:
			h.logger.Error("PUT /agendamentos/{id} - Failed to update appointment: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /agendamentos/{id} - Appointment updated successfully: id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}
