package get_employee_appointments

import (
	"net/http"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
)

const msgInvalidID = "некорректный ID сотрудника"

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

// Handle GET /api/agendamentos/funcionario/{employeeId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	employeeID, err := handlers.PathInt64(r, "employeeId")
	if err != nil {
		h.logger.Warn("GET /agendamentos/funcionario/{id} - Invalid ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	result, err := h.service.ListByEmployee(r.Context(), employeeID)
	if err != nil {
		h.logger.Error("GET /agendamentos/funcionario/{id} - Failed to get appointments: employee_id=%d, error=%v", employeeID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /agendamentos/funcionario/{id} - Appointments retrieved successfully: employee_id=%d, count=%d",
		employeeID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result.Appointments)
}
