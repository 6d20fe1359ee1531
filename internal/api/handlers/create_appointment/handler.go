package create_appointment

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSlotTaken          = "у сотрудника уже есть запись на это время"
)

type Handler struct {
	useCase  CreateAppointmentUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase CreateAppointmentUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/agendamentos
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /agendamentos - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом времени)
	useCaseReq, err := req.ToUseCaseRequest(h.location)
	if err != nil {
		h.logger.Warn("POST /agendamentos - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrConflict):
			h.logger.Warn("POST /agendamentos - Slot taken: scheduledAt=%s, error=%v", req.ScheduledAt, err)
			handlers.RespondBadRequest(w, msgSlotTaken)

		case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("POST /agendamentos - Rejected: client_id=%d, pet_id=%d, error=%v", req.ClientID, req.PetID, err)
			handlers.RespondServiceError(w, err)

		default:
			h.logger.Error("POST /agendamentos - Failed to create appointment: client_id=%d, error=%v", req.ClientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /agendamentos - Appointment created successfully: id=%d, client_id=%d", result.ID, result.ClientID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
