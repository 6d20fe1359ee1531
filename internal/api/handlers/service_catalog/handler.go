package service_catalog

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
)

const msgEmptyCategory = "категория не указана"

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleCategories GET /api/servicos/categorias
func (h *Handler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Categories(r.Context())
	if err != nil {
		h.logger.Error("GET /servicos/categorias - Failed to get categories: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleByCategory GET /api/servicos/categoria/{categoria}
func (h *Handler) HandleByCategory(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(mux.Vars(r)["categoria"])
	if category == "" {
		h.logger.Warn("GET /servicos/categoria/{categoria} - Empty category")
		handlers.RespondBadRequest(w, msgEmptyCategory)
		return
	}

	result, err := h.service.ListByCategory(r.Context(), category)
	if err != nil {
		h.logger.Error("GET /servicos/categoria/{categoria} - Failed to list services: category=%s, error=%v", category, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /servicos/categoria/{categoria} - category=%s, count=%d", category, len(result))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleStatistics GET /api/servicos/estatisticas
func (h *Handler) HandleStatistics(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Statistics(r.Context())
	if err != nil {
		h.logger.Error("GET /servicos/estatisticas - Failed to get statistics: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
