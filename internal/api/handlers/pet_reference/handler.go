package pet_reference

import (
	"net/http"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
)

// PetService справочники питомцев
type PetService interface {
	Species() []string
	Sexes() []string
}

type Handler struct {
	service PetService
}

func NewHandler(service PetService) *Handler {
	return &Handler{service: service}
}

// HandleSpecies GET /api/pets/especies
func (h *Handler) HandleSpecies(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.service.Species())
}

// HandleSexes GET /api/pets/sexos
func (h *Handler) HandleSexes(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.service.Sexes())
}
