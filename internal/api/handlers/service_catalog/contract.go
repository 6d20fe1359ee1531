package service_catalog

import (
	"context"

	"github.com/m04kA/SMC-PetCareService/internal/service/catalog/models"
)

type CatalogService interface {
	Categories(ctx context.Context) ([]string, error)
	ListByCategory(ctx context.Context, category string) ([]models.ServiceResponse, error)
	Statistics(ctx context.Context) (*models.StatisticsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
