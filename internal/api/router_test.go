package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
	"github.com/m04kA/SMC-PetCareService/internal/api/middleware"
	"github.com/m04kA/SMC-PetCareService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-PetCareService/internal/service/appointments"
	appointmentModels "github.com/m04kA/SMC-PetCareService/internal/service/appointments/models"
	"github.com/m04kA/SMC-PetCareService/internal/service/catalog"
	catalogModels "github.com/m04kA/SMC-PetCareService/internal/service/catalog/models"
	"github.com/m04kA/SMC-PetCareService/internal/service/clients"
	clientModels "github.com/m04kA/SMC-PetCareService/internal/service/clients/models"
	"github.com/m04kA/SMC-PetCareService/internal/service/employees"
	employeeModels "github.com/m04kA/SMC-PetCareService/internal/service/employees/models"
	"github.com/m04kA/SMC-PetCareService/internal/service/pets"
	petModels "github.com/m04kA/SMC-PetCareService/internal/service/pets/models"
	createAppointmentUC "github.com/m04kA/SMC-PetCareService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-PetCareService/internal/usecase/scheduling_rules"
	updateAppointmentUC "github.com/m04kA/SMC-PetCareService/internal/usecase/update_appointment"
	"github.com/m04kA/SMC-PetCareService/pkg/logger"
	"github.com/m04kA/SMC-PetCareService/pkg/metrics"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := memory.NewStore()
	log := logger.NewWithWriter(io.Discard, "debug")
	m := metrics.NewWithRegistry(prometheus.NewRegistry(), "test")
	loc := time.UTC

	rules := scheduling_rules.NewChecker(store.Clients(), store.Pets(), store.Services(), store.Employees(), store.Appointments(), log)

	router := NewRouter(Dependencies{
		Clients:           clients.NewService(store.Clients(), log),
		Pets:              pets.NewService(store.Pets(), store.Clients(), loc, log),
		Employees:         employees.NewService(store.Employees(), loc, log),
		Catalog:           catalog.NewService(store.Services(), log),
		Appointments:      appointments.NewService(store.Appointments(), store.TxManager(), m, loc, true, log),
		CreateAppointment: createAppointmentUC.NewUseCase(store.Appointments(), rules, store.TxManager(), m, log),
		UpdateAppointment: updateAppointmentUC.NewUseCase(store.Appointments(), rules, store.TxManager(), m, true, log),
		Location:          loc,
		Logger:            log,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body interface{}, out interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

type seeded struct {
	clientID   int64
	petID      int64
	serviceID  int64
	employeeID int64
}

func seed(t *testing.T, base string) seeded {
	t.Helper()

	var client clientModels.ClientResponse
	resp := doJSON(t, http.MethodPost, base+"/api/clientes", map[string]interface{}{
		"name": "C1", "taxId": "111", "phone": "555",
	}, &client)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var pet petModels.PetResponse
	resp = doJSON(t, http.MethodPost, base+"/api/pets", map[string]interface{}{
		"name": "P1", "species": "dog", "ownerId": client.ID,
	}, &pet)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var service catalogModels.ServiceResponse
	resp = doJSON(t, http.MethodPost, base+"/api/servicos", map[string]interface{}{
		"name": "S1", "category": "Banho", "price": "25.00", "estimatedDurationMinutes": 60,
	}, &service)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var employee employeeModels.EmployeeResponse
	resp = doJSON(t, http.MethodPost, base+"/api/funcionarios", map[string]interface{}{
		"name": "E1", "taxId": "999", "phone": "777", "role": "groomer", "admissionDate": "2024-01-15",
	}, &employee)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	return seeded{clientID: client.ID, petID: pet.ID, serviceID: service.ID, employeeID: employee.ID}
}

func TestRouter_AppointmentLifecycle(t *testing.T) {
	srv := newTestServer(t)
	s := seed(t, srv.URL)
	scheduledAt := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Minute).Format(time.RFC3339)

	var created appointmentModels.AppointmentResponse
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/agendamentos", map[string]interface{}{
		"clientId": s.clientID, "petId": s.petID, "serviceId": s.serviceID,
		"employeeId": s.employeeID, "scheduledAt": scheduledAt,
	}, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "scheduled", created.Status)
	assert.True(t, created.EstimatedValue.Equal(decimal.NewFromInt(25)))
	assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))

	// тот же сотрудник на то же время
	var conflict handlers.ErrorResponse
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/agendamentos", map[string]interface{}{
		"clientId": s.clientID, "petId": s.petID, "serviceId": s.serviceID,
		"employeeId": s.employeeID, "scheduledAt": scheduledAt,
	}, &conflict)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, conflict.Error)

	// несуществующий питомец
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/agendamentos", map[string]interface{}{
		"clientId": s.clientID, "petId": 999, "serviceId": s.serviceID, "scheduledAt": scheduledAt,
	}, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	url := fmt.Sprintf("%s/api/agendamentos/%d", srv.URL, created.ID)

	var fetched appointmentModels.AppointmentResponse
	resp = doJSON(t, http.MethodGet, url, nil, &fetched)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, created.ID, fetched.ID)

	var confirmed appointmentModels.AppointmentResponse
	resp = doJSON(t, http.MethodPut, url+"/status", map[string]string{"status": "confirmed"}, &confirmed)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "confirmed", confirmed.Status)

	var list []appointmentModels.AppointmentResponse
	resp = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/agendamentos?funcionario_id=%d&status=confirmed", srv.URL, s.employeeID), nil, &list)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, list, 1)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/agendamentos?data_inicio=31-12-2026", nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var cancelled appointmentModels.AppointmentResponse
	resp = doJSON(t, http.MethodDelete, url, nil, &cancelled)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "cancelled", cancelled.Status)

	// закрытую запись менять нельзя
	var closed handlers.ErrorResponse
	resp = doJSON(t, http.MethodPut, url, map[string]string{"notes": "late"}, &closed)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, closed.Error, "cannot modify a completed or cancelled appointment")

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/agendamentos/404", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var byClient []appointmentModels.AppointmentResponse
	resp = doJSON(t, http.MethodGet, fmt.Sprintf("%s/api/agendamentos/cliente/%d", srv.URL, s.clientID), nil, &byClient)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, byClient, 1)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/agendamentos/cliente/abc", nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var stats appointmentModels.StatisticsResponse
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/agendamentos/estatisticas", nil, &stats)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.ByStatus["cancelled"])

	var statuses []string
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/agendamentos/status", nil, &statuses)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, statuses, 5)
}

func TestRouter_Registries(t *testing.T) {
	srv := newTestServer(t)
	s := seed(t, srv.URL)

	// дубликат taxId
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/clientes", map[string]interface{}{
		"name": "Other", "taxId": "111", "phone": "1",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	clientURL := fmt.Sprintf("%s/api/clientes/%d", srv.URL, s.clientID)

	var pets []petModels.PetResponse
	resp = doJSON(t, http.MethodGet, clientURL+"/pets", nil, &pets)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, pets, 1)

	resp = doJSON(t, http.MethodDelete, clientURL, nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp = doJSON(t, http.MethodDelete, srv.URL+"/api/clientes/404", nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var inactive []clientModels.ClientResponse
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/clientes?ativo=false", nil, &inactive)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, inactive, 1)
	assert.False(t, inactive[0].Active)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/clientes?ativo=maybe", nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// неактивный клиент не может записаться
	resp = doJSON(t, http.MethodPost, srv.URL+"/api/agendamentos", map[string]interface{}{
		"clientId": s.clientID, "petId": s.petID, "serviceId": s.serviceID,
		"scheduledAt": time.Now().UTC().Add(24 * time.Hour).Format(time.RFC3339),
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, http.MethodPut, clientURL+"/ativar", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var species []string
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/pets/especies", nil, &species)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, species, "dog")

	var categories []string
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/servicos/categorias", nil, &categories)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, categories, "Banho")

	var banho []catalogModels.ServiceResponse
	resp = doJSON(t, http.MethodGet, srv.URL+"/api/servicos/categoria/Banho", nil, &banho)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, banho, 1)

	var updated employeeModels.EmployeeResponse
	resp = doJSON(t, http.MethodPut, fmt.Sprintf("%s/api/funcionarios/%d", srv.URL, s.employeeID), map[string]interface{}{
		"role": "veterinarian",
	}, &updated)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "veterinarian", updated.Role)

	var health map[string]string
	resp = doJSON(t, http.MethodGet, srv.URL+"/health", nil, &health)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", health["status"])
}
