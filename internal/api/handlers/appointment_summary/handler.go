package appointment_summary

import (
	"net/http"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
)

// Handler сводные представления записей: сегодня, неделя, статистика, статусы
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

// HandleToday GET /api/agendamentos/hoje
func (h *Handler) HandleToday(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Today(r.Context())
	if err != nil {
		h.logger.Error("GET /agendamentos/hoje - Failed to get appointments: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /agendamentos/hoje - count=%d", len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result.Appointments)
}

// HandleWeek GET /api/agendamentos/semana
func (h *Handler) HandleWeek(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ThisWeek(r.Context())
	if err != nil {
		h.logger.Error("GET /agendamentos/semana - Failed to get appointments: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /agendamentos/semana - count=%d", len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result.Appointments)
}

// HandleStatistics GET /api/agendamentos/estatisticas
func (h *Handler) HandleStatistics(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Statistics(r.Context())
	if err != nil {
		h.logger.Error("GET /agendamentos/estatisticas - Failed to get statistics: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleStatuses GET /api/agendamentos/status
func (h *Handler) HandleStatuses(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.service.Statuses())
}
