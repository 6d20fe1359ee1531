package registry

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

const (
	msgInvalidID          = "некорректный ID"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidActiveParam = "параметр ativo должен быть true или false"
	msgNotFound           = "запись реестра не найдена"
)

// MessageResponse ответ на деактивацию и активацию
type MessageResponse struct {
	Message string `json:"message"`
}

// Handler CRUD обработчики одного реестра (/clientes, /pets, /funcionarios, /servicos)
// Физического удаления нет: DELETE деактивирует запись
type Handler[C, U, R any] struct {
	service Service[C, U, R]
	path    string
	logger  Logger
}

// NewHandler создает обработчики реестра; path используется в логах ("/clientes")
func NewHandler[C, U, R any](service Service[C, U, R], path string, logger Logger) *Handler[C, U, R] {
	return &Handler[C, U, R]{
		service: service,
		path:    path,
		logger:  logger,
	}
}

// HandleList GET {path}?ativo=true|false
func (h *Handler[C, U, R]) HandleList(w http.ResponseWriter, r *http.Request) {
	active, err := handlers.QueryBool(r, "ativo")
	if err != nil {
		h.logger.Warn("GET %s - Invalid parameters: %v", h.path, err)
		handlers.RespondBadRequest(w, msgInvalidActiveParam)
		return
	}

	result, err := h.service.List(r.Context(), active)
	if err != nil {
		h.logger.Error("GET %s - Failed to list: %v", h.path, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET %s - count=%d", h.path, len(result))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleCreate POST {path}
func (h *Handler[C, U, R]) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req C
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST %s - Invalid request body: %v", h.path, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST", h.path, err)
		return
	}

	h.logger.Info("POST %s - Created successfully", h.path)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleGet GET {path}/{id}
func (h *Handler[C, U, R]) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "GET")
	if !ok {
		return
	}

	result, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.respondError(w, "GET", h.path+"/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleUpdate PUT {path}/{id}
func (h *Handler[C, U, R]) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "PUT")
	if !ok {
		return
	}

	var req U
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT %s/{id} - Invalid request body: %v", h.path, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		h.respondError(w, "PUT", h.path+"/{id}", err)
		return
	}

	h.logger.Info("PUT %s/{id} - Updated successfully: id=%d", h.path, id)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDeactivate DELETE {path}/{id}
func (h *Handler[C, U, R]) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "DELETE")
	if !ok {
		return
	}

	found, err := h.service.Deactivate(r.Context(), id)
	h.respondToggle(w, "DELETE", h.path+"/{id}", id, found, err, "deactivated")
}

// HandleActivate PUT {path}/{id}/ativar
func (h *Handler[C, U, R]) HandleActivate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "PUT")
	if !ok {
		return
	}

	found, err := h.service.Activate(r.Context(), id)
	h.respondToggle(w, "PUT", h.path+"/{id}/ativar", id, found, err, "activated")
}

func (h *Handler[C, U, R]) respondToggle(w http.ResponseWriter, method, route string, id int64, found bool, err error, action string) {
	if err != nil {
		h.respondError(w, method, route, err)
		return
	}
	if !found {
		h.logger.Warn("%s %s - Not found: id=%d", method, route, id)
		handlers.RespondNotFound(w, msgNotFound)
		return
	}

	h.logger.Info("%s %s - id=%d %s", method, route, id, action)
	handlers.RespondJSON(w, http.StatusOK, MessageResponse{Message: fmt.Sprintf("record %d %s", id, action)})
}

func (h *Handler[C, U, R]) pathID(w http.ResponseWriter, r *http.Request, method string) (int64, bool) {
	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("%s %s/{id} - Invalid ID: %v", method, h.path, err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return 0, false
	}
	return id, true
}

func (h *Handler[C, U, R]) respondError(w http.ResponseWriter, method, route string, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrConflict):
		h.logger.Warn("%s %s - Rejected: %v", method, route, err)
	default:
		h.logger.Error("%s %s - Failed: %v", method, route, err)
	}
	handlers.RespondServiceError(w, err)
}
