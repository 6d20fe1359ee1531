package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
	appointmentSummaryHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/appointment_summary"
	cancelAppointmentHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/get_appointment"
	getClientAppointmentsHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/get_client_appointments"
	getClientPetsHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/get_client_pets"
	getEmployeeAppointmentsHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/get_employee_appointments"
	getServiceAppointmentsHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/get_service_appointments"
	listAppointmentsHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/list_appointments"
	petReferenceHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/pet_reference"
	"github.com/m04kA/SMC-PetCareService/internal/api/handlers/registry"
	serviceCatalogHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/service_catalog"
	updateAppointmentHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/update_appointment"
	updateAppointmentStatusHandler "github.com/m04kA/SMC-PetCareService/internal/api/handlers/update_appointment_status"
	"github.com/m04kA/SMC-PetCareService/internal/api/middleware"
	"github.com/m04kA/SMC-PetCareService/internal/service/appointments"
	"github.com/m04kA/SMC-PetCareService/internal/service/catalog"
	catalogModels "github.com/m04kA/SMC-PetCareService/internal/service/catalog/models"
	"github.com/m04kA/SMC-PetCareService/internal/service/clients"
	clientModels "github.com/m04kA/SMC-PetCareService/internal/service/clients/models"
	"github.com/m04kA/SMC-PetCareService/internal/service/employees"
	employeeModels "github.com/m04kA/SMC-PetCareService/internal/service/employees/models"
	"github.com/m04kA/SMC-PetCareService/internal/service/pets"
	petModels "github.com/m04kA/SMC-PetCareService/internal/service/pets/models"
	createAppointmentUC "github.com/m04kA/SMC-PetCareService/internal/usecase/create_appointment"
	updateAppointmentUC "github.com/m04kA/SMC-PetCareService/internal/usecase/update_appointment"
	"github.com/m04kA/SMC-PetCareService/pkg/logger"
	"github.com/m04kA/SMC-PetCareService/pkg/metrics"
)

// Dependencies все, что нужно для сборки HTTP API
// Metrics = nil отключает HTTP метрики и /metrics
type Dependencies struct {
	Clients      *clients.Service
	Pets         *pets.Service
	Employees    *employees.Service
	Catalog      *catalog.Service
	Appointments *appointments.Service

	CreateAppointment *createAppointmentUC.UseCase
	UpdateAppointment *updateAppointmentUC.UseCase

	Location    *time.Location
	Metrics     *metrics.Metrics
	MetricsPath string
	Logger      *logger.Logger
}

// NewRouter регистрирует все маршруты под /api, а также /health и метрики
func NewRouter(deps Dependencies) *mux.Router {
	log := deps.Logger

	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(log))
	r.Use(middleware.Recover(log))

	// Добавляем metrics middleware (если метрики включены)
	if deps.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(deps.Metrics))
		path := deps.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Handle(path, promhttp.Handler()).Methods(http.MethodGet)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	registerAppointments(api, deps)
	registerRegistries(api, deps)

	return r
}

func registerAppointments(api *mux.Router, deps Dependencies) {
	log := deps.Logger

	createAppointment := createAppointmentHandler.NewHandler(deps.CreateAppointment, deps.Location, log)
	updateAppointment := updateAppointmentHandler.NewHandler(deps.UpdateAppointment, deps.Location, log)
	updateStatus := updateAppointmentStatusHandler.NewHandler(deps.Appointments, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(deps.Appointments, log)
	getAppointment := getAppointmentHandler.NewHandler(deps.Appointments, log)
	listAppointments := listAppointmentsHandler.NewHandler(deps.Appointments, log)
	byClient := getClientAppointmentsHandler.NewHandler(deps.Appointments, log)
	byEmployee := getEmployeeAppointmentsHandler.NewHandler(deps.Appointments, log)
	byService := getServiceAppointmentsHandler.NewHandler(deps.Appointments, log)
	summary := appointmentSummaryHandler.NewHandler(deps.Appointments, log)

	api.HandleFunc("/agendamentos", listAppointments.Handle).Methods(http.MethodGet)
	api.HandleFunc("/agendamentos", createAppointment.Handle).Methods(http.MethodPost)

	api.HandleFunc("/agendamentos/hoje", summary.HandleToday).Methods(http.MethodGet)
	api.HandleFunc("/agendamentos/semana", summary.HandleWeek).Methods(http.MethodGet)
	api.HandleFunc("/agendamentos/estatisticas", summary.HandleStatistics).Methods(http.MethodGet)
	api.HandleFunc("/agendamentos/status", summary.HandleStatuses).Methods(http.MethodGet)

	api.HandleFunc("/agendamentos/cliente/{clientId}", byClient.Handle).Methods(http.MethodGet)
	api.HandleFunc("/agendamentos/funcionario/{employeeId}", byEmployee.Handle).Methods(http.MethodGet)
	api.HandleFunc("/agendamentos/servico/{serviceId}", byService.Handle).Methods(http.MethodGet)

	api.HandleFunc("/agendamentos/{id:[0-9]+}", getAppointment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/agendamentos/{id:[0-9]+}", updateAppointment.Handle).Methods(http.MethodPut)
	api.HandleFunc("/agendamentos/{id:[0-9]+}", cancelAppointment.Handle).Methods(http.MethodDelete)
	api.HandleFunc("/agendamentos/{id:[0-9]+}/status", updateStatus.Handle).Methods(http.MethodPut)
}

func registerRegistries(api *mux.Router, deps Dependencies) {
	log := deps.Logger

	clientsHandler := registry.NewHandler[clientModels.CreateClientRequest, clientModels.UpdateClientRequest, clientModels.ClientResponse](
		deps.Clients, "/clientes", log)
	petsHandler := registry.NewHandler[petModels.CreatePetRequest, petModels.UpdatePetRequest, petModels.PetResponse](
		deps.Pets, "/pets", log)
	employeesHandler := registry.NewHandler[employeeModels.CreateEmployeeRequest, employeeModels.UpdateEmployeeRequest, employeeModels.EmployeeResponse](
		deps.Employees, "/funcionarios", log)
	servicesHandler := registry.NewHandler[catalogModels.CreateServiceRequest, catalogModels.UpdateServiceRequest, catalogModels.ServiceResponse](
		deps.Catalog, "/servicos", log)

	clientPets := getClientPetsHandler.NewHandler(deps.Pets, log)
	petReference := petReferenceHandler.NewHandler(deps.Pets)
	serviceCatalog := serviceCatalogHandler.NewHandler(deps.Catalog, log)

	// Справочники регистрируются до /{id}
	api.HandleFunc("/pets/especies", petReference.HandleSpecies).Methods(http.MethodGet)
	api.HandleFunc("/pets/sexos", petReference.HandleSexes).Methods(http.MethodGet)
	api.HandleFunc("/servicos/categorias", serviceCatalog.HandleCategories).Methods(http.MethodGet)
	api.HandleFunc("/servicos/categoria/{categoria}", serviceCatalog.HandleByCategory).Methods(http.MethodGet)
	api.HandleFunc("/servicos/estatisticas", serviceCatalog.HandleStatistics).Methods(http.MethodGet)
	api.HandleFunc("/clientes/{id:[0-9]+}/pets", clientPets.Handle).Methods(http.MethodGet)

	mountRegistry(api, "/clientes", clientsHandler)
	mountRegistry(api, "/pets", petsHandler)
	mountRegistry(api, "/funcionarios", employeesHandler)
	mountRegistry(api, "/servicos", servicesHandler)
}

// registryRoutes набор обработчиков одного реестра
type registryRoutes interface {
	HandleList(w http.ResponseWriter, r *http.Request)
	HandleCreate(w http.ResponseWriter, r *http.Request)
	HandleGet(w http.ResponseWriter, r *http.Request)
	HandleUpdate(w http.ResponseWriter, r *http.Request)
	HandleDeactivate(w http.ResponseWriter, r *http.Request)
	HandleActivate(w http.ResponseWriter, r *http.Request)
}

func mountRegistry(api *mux.Router, path string, h registryRoutes) {
	api.HandleFunc(path, h.HandleList).Methods(http.MethodGet)
	api.HandleFunc(path, h.HandleCreate).Methods(http.MethodPost)
	api.HandleFunc(path+"/{id:[0-9]+}", h.HandleGet).Methods(http.MethodGet)
	api.HandleFunc(path+"/{id:[0-9]+}", h.HandleUpdate).Methods(http.MethodPut)
	api.HandleFunc(path+"/{id:[0-9]+}", h.HandleDeactivate).Methods(http.MethodDelete)
	api.HandleFunc(path+"/{id:[0-9]+}/ativar", h.HandleActivate).Methods(http.MethodPut)
}
