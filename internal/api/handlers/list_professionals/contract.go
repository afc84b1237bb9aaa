package list_professionals

import (
	"context"

	"github.com/m04kA/SMC-SalonAgenda/internal/service/catalog/models"
)

type CatalogService interface {
	ListProfessionals(ctx context.Context) ([]*models.ProfessionalResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
