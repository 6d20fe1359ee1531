package appointment_summary

import (
	"context"

	"github.com/m04kA/SMC-PetCareService/internal/service/appointments/models"
)

type AppointmentService interface {
	Today(ctx context.Context) (*models.AppointmentListResponse, error)
	ThisWeek(ctx context.Context) (*models.AppointmentListResponse, error)
	Statistics(ctx context.Context) (*models.StatisticsResponse, error)
	Statuses() []string
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
