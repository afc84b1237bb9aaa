package catalog

import (
	"context"

	"github.com/m04kA/SMC-SalonAgenda/internal/domain"
)

// CatalogRepository интерфейс репозитория справочников
type CatalogRepository interface {
	CreateProfessional(ctx context.Context, p *domain.Professional) (*domain.Professional, error)
	GetProfessionalByID(ctx context.Context, id int64) (*domain.Professional, error)
	ListProfessionals(ctx context.Context) ([]*domain.Professional, error)
	CreateService(ctx context.Context, s *domain.Service) (*domain.Service, error)
	GetServiceByID(ctx context.Context, id int64) (*domain.Service, error)
	ListServices(ctx context.Context) ([]*domain.Service, error)
	DeleteService(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
