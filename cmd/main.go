package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-PetCareService/internal/api"
	"github.com/m04kA/SMC-PetCareService/internal/config"
	appointmentRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/catalog"
	clientRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/client"
	employeeRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/employee"
	"github.com/m04kA/SMC-PetCareService/internal/infra/storage/memory"
	petRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/pet"
	appointmentsService "github.com/m04kA/SMC-PetCareService/internal/service/appointments"
	catalogService "github.com/m04kA/SMC-PetCareService/internal/service/catalog"
	clientsService "github.com/m04kA/SMC-PetCareService/internal/service/clients"
	employeesService "github.com/m04kA/SMC-PetCareService/internal/service/employees"
	petsService "github.com/m04kA/SMC-PetCareService/internal/service/pets"
	createAppointmentUC "github.com/m04kA/SMC-PetCareService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-PetCareService/internal/usecase/scheduling_rules"
	updateAppointmentUC "github.com/m04kA/SMC-PetCareService/internal/usecase/update_appointment"
	"github.com/m04kA/SMC-PetCareService/pkg/dbmetrics"
	"github.com/m04kA/SMC-PetCareService/pkg/logger"
	"github.com/m04kA/SMC-PetCareService/pkg/metrics"
	"github.com/m04kA/SMC-PetCareService/pkg/txmanager"
)

// Репозитории, общие для memory и postgres хранилищ
type (
	clientStore interface {
		clientsService.ClientRepository
		petsService.ClientRepository
		scheduling_rules.ClientRepository
	}
	petStore interface {
		petsService.PetRepository
		scheduling_rules.PetRepository
	}
	employeeStore interface {
		employeesService.EmployeeRepository
		scheduling_rules.EmployeeRepository
	}
	serviceStore interface {
		catalogService.ServiceRepository
		scheduling_rules.ServiceRepository
	}
	appointmentStore interface {
		appointmentsService.AppointmentRepository
		scheduling_rules.AppointmentRepository
		createAppointmentUC.AppointmentRepository
		updateAppointmentUC.AppointmentRepository
	}
	txManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
)

type storage struct {
	clients      clientStore
	pets         petStore
	employees    employeeStore
	services     serviceStore
	appointments appointmentStore
	txManager    txManager
	close        func() error
}

func main() {
	// Загружаем конфигурацию
	configPath := config.Path()
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-PetCareService...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Scheduling.Location()
	if err != nil {
		log.Fatal("Invalid timezone: %v", err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаем хранилище
	var store *storage
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		store = newMemoryStorage()
		log.Warn("Using in-memory storage, data is lost on restart")
	default:
		store, err = newPostgresStorage(cfg, metricsCollector, stopMetricsCh)
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		log.Info("Successfully connected to database (driver=%s, host=%s, port=%d, db=%s)",
			cfg.Database.Driver, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	}
	defer store.close()

	// Инициализируем сервисы
	clientSvc := clientsService.NewService(store.clients, log)
	petSvc := petsService.NewService(store.pets, store.clients, location, log)
	employeeSvc := employeesService.NewService(store.employees, location, log)
	catalogSvc := catalogService.NewService(store.services, log)
	appointmentSvc := appointmentsService.NewService(
		store.appointments,
		store.txManager,
		metricsCollector,
		location,
		cfg.Scheduling.StrictStatusTransitions,
		log,
	)

	// Инициализируем use cases
	rules := scheduling_rules.NewChecker(
		store.clients,
		store.pets,
		store.services,
		store.employees,
		store.appointments,
		log,
	)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		store.appointments,
		rules,
		store.txManager,
		metricsCollector,
		log,
	)
	updateAppointmentUseCase := updateAppointmentUC.NewUseCase(
		store.appointments,
		rules,
		store.txManager,
		metricsCollector,
		cfg.Scheduling.StrictStatusTransitions,
		log,
	)
	log.Info("Scheduling: strict_status_transitions=%t, timezone=%s",
		cfg.Scheduling.StrictStatusTransitions, location)

	// Настраиваем роутер
	r := api.NewRouter(api.Dependencies{
		Clients:           clientSvc,
		Pets:              petSvc,
		Employees:         employeeSvc,
		Catalog:           catalogSvc,
		Appointments:      appointmentSvc,
		CreateAppointment: createAppointmentUseCase,
		UpdateAppointment: updateAppointmentUseCase,
		Location:          location,
		Metrics:           metricsCollector,
		MetricsPath:       cfg.Metrics.Path,
		Logger:            log,
	})

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

func newMemoryStorage() *storage {
	s := memory.NewStore()
	return &storage{
		clients:      s.Clients(),
		pets:         s.Pets(),
		employees:    s.Employees(),
		services:     s.Services(),
		appointments: s.Appointments(),
		txManager:    s.TxManager(),
		close:        func() error { return nil },
	}
}

// newPostgresStorage открывает пул соединений драйвером lib/pq ("postgres") или pgx ("pgx")
// Запросы проходят через dbmetrics.DB; при выключенных метриках обертка ничего не пишет
func newPostgresStorage(cfg *config.Config, m *metrics.Metrics, stopCh <-chan struct{}) (*storage, error) {
	db, err := sql.Open(cfg.Database.Driver, cfg.Database.DSN())
	if err != nil {
		return nil, err
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	wrapped := dbmetrics.WrapWithDefault(db, m, cfg.Metrics.ServiceName, stopCh)

	return &storage{
		clients:      clientRepo.NewRepository(wrapped),
		pets:         petRepo.NewRepository(wrapped),
		employees:    employeeRepo.NewRepository(wrapped),
		services:     catalogRepo.NewRepository(wrapped),
		appointments: appointmentRepo.NewRepository(wrapped),
		txManager:    txmanager.NewTransactionManager(wrapped),
		close:        wrapped.Unwrap().Close,
	}, nil
}
