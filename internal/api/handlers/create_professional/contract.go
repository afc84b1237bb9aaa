package create_professional

import (
	"context"

	"github.com/m04kA/SMC-SalonAgenda/internal/service/catalog/models"
)

type CatalogService interface {
	CreateProfessional(ctx context.Context, req *models.CreateProfessionalRequest) (*models.ProfessionalResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
