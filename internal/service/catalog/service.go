package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-SalonAgenda/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonAgenda/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonAgenda/internal/service/catalog/models"
	"github.com/m04kA/SMC-SalonAgenda/pkg/ptr"
)

// Service сервис справочников: мастера и услуги
type Service struct {
	catalogRepo CatalogRepository
	validate    *validator.Validate
	logger      Logger
}

// NewService создает новый экземпляр сервиса справочников
func NewService(catalogRepo CatalogRepository, logger Logger) *Service {
	return &Service{
		catalogRepo: catalogRepo,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		logger:      logger,
	}
}

// CreateProfessional создает мастера
func (s *Service) CreateProfessional(ctx context.Context, req *models.CreateProfessionalRequest) (*models.ProfessionalResponse, error) {
	s.logger.Info("CreateProfessional: name=%q", req.Name)

	normalizeProfessional(req)
	if err := s.validate.Struct(req); err != nil {
		s.logger.Warn("CreateProfessional: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.catalogRepo.CreateProfessional(ctx, req.ToDomain())
	if err != nil {
		s.logger.Error("CreateProfessional: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateProfessional - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("CreateProfessional: successfully created professional id=%d", created.ID)
	return models.FromDomainProfessional(created), nil
}

// GetProfessional получает мастера по ID
func (s *Service) GetProfessional(ctx context.Context, id int64) (*models.ProfessionalResponse, error) {
	p, err := s.catalogRepo.GetProfessionalByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrProfessionalNotFound) {
			return nil, ErrProfessionalNotFound
		}
		s.logger.Error("GetProfessional: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetProfessional - repository error: %w", ErrInternal, err)
	}
	return models.FromDomainProfessional(p), nil
}

// ListProfessionals возвращает всех мастеров
func (s *Service) ListProfessionals(ctx context.Context) ([]*models.ProfessionalResponse, error) {
	list, err := s.catalogRepo.ListProfessionals(ctx)
	if err != nil {
		s.logger.Error("ListProfessionals: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListProfessionals - repository error: %w", ErrInternal, err)
	}
	return models.FromDomainProfessionals(list), nil
}

// CreateService создает услугу
func (s *Service) CreateService(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("CreateService: name=%q, duration=%v", req.Name, req.DurationMinutes)

	req.Name = strings.TrimSpace(req.Name)
	if err := s.validate.Struct(req); err != nil {
		s.logger.Warn("CreateService: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	svc := req.ToDomain()
	if err := validateService(svc); err != nil {
		s.logger.Warn("CreateService: validation failed: %v", err)
		return nil, err
	}

	created, err := s.catalogRepo.CreateService(ctx, svc)
	if err != nil {
		s.logger.Error("CreateService: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateService - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("CreateService: successfully created service id=%d", created.ID)
	return models.FromDomainService(created), nil
}

// GetService получает услугу по ID
func (s *Service) GetService(ctx context.Context, id int64) (*models.ServiceResponse, error) {
	svc, err := s.catalogRepo.GetServiceByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetService: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetService - repository error: %w", ErrInternal, err)
	}
	return models.FromDomainService(svc), nil
}

// ListServices возвращает все услуги
func (s *Service) ListServices(ctx context.Context) ([]*models.ServiceResponse, error) {
	list, err := s.catalogRepo.ListServices(ctx)
	if err != nil {
		s.logger.Error("ListServices: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %w", ErrInternal, err)
	}
	return models.FromDomainServices(list), nil
}

// DeleteService удаляет услугу, если на неё нет бронирований
func (s *Service) DeleteService(ctx context.Context, id int64) error {
	s.logger.Info("DeleteService: id=%d", id)

	err := s.catalogRepo.DeleteService(ctx, id)
	switch {
	case err == nil:
		s.logger.Info("DeleteService: successfully deleted service id=%d", id)
		return nil
	case errors.Is(err, catalogRepo.ErrServiceNotFound):
		s.logger.Warn("DeleteService: service id=%d not found", id)
		return ErrServiceNotFound
	case errors.Is(err, catalogRepo.ErrServiceInUse):
		s.logger.Warn("DeleteService: service id=%d is referenced by bookings", id)
		return ErrServiceInUse
	default:
		s.logger.Error("DeleteService: repository error for id=%d: %v", id, err)
		return fmt.Errorf("%w: DeleteService - repository error: %w", ErrInternal, err)
	}
}

// normalizeProfessional обрезает пробелы, пустые контакты превращает в nil
func normalizeProfessional(req *models.CreateProfessionalRequest) {
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = blankToNil(req.Phone)
	req.Email = blankToNil(req.Email)
}

func blankToNil(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return ptr.Ptr(trimmed)
}

func validateService(svc *domain.Service) error {
	if !svc.HasValidDuration() {
		return fmt.Errorf("%w: duration_minutes must be between 1 and %d", ErrInvalidInput, domain.MaxServiceDurationMinutes)
	}

	if ptr.Value(svc.Price) < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	return nil
}
