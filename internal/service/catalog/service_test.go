package catalog

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonAgenda/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonAgenda/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonAgenda/internal/service/catalog/models"
	"github.com/m04kA/SMC-SalonAgenda/pkg/logger"
	"github.com/m04kA/SMC-SalonAgenda/pkg/ptr"
)

type memRepo struct {
	professionals []*domain.Professional
	services      []*domain.Service
	deleteErr     error
}

func (r *memRepo) CreateProfessional(_ context.Context, p *domain.Professional) (*domain.Professional, error) {
	p.ID = int64(len(r.professionals) + 1)
	r.professionals = append(r.professionals, p)
	return p, nil
}

func (r *memRepo) GetProfessionalByID(_ context.Context, id int64) (*domain.Professional, error) {
	for _, p := range r.professionals {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, catalogRepo.ErrProfessionalNotFound
}

func (r *memRepo) ListProfessionals(context.Context) ([]*domain.Professional, error) {
	return r.professionals, nil
}

func (r *memRepo) CreateService(_ context.Context, s *domain.Service) (*domain.Service, error) {
	s.ID = int64(len(r.services) + 1)
	r.services = append(r.services, s)
	return s, nil
}

func (r *memRepo) GetServiceByID(_ context.Context, id int64) (*domain.Service, error) {
	for _, s := range r.services {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, catalogRepo.ErrServiceNotFound
}

func (r *memRepo) ListServices(context.Context) ([]*domain.Service, error) {
	return r.services, nil
}

func (r *memRepo) DeleteService(context.Context, int64) error {
	return r.deleteErr
}

func TestCreateService_DefaultsDuration(t *testing.T) {
	repo := &memRepo{}
	svc := NewService(repo, logger.NewNop())

	got, err := svc.CreateService(context.Background(), &models.CreateServiceRequest{Name: "  Corte  ", Price: ptr.Ptr(80.0)})

	require.NoError(t, err)
	assert.Equal(t, "Corte", got.Name)
	assert.Equal(t, domain.DefaultServiceDurationMinutes, got.DurationMinutes)
}

func TestCreateService_Validation(t *testing.T) {
	svc := NewService(&memRepo{}, logger.NewNop())

	tests := []struct {
		name string
		req  models.CreateServiceRequest
	}{
		{name: "empty name", req: models.CreateServiceRequest{Name: " "}},
		{name: "long name", req: models.CreateServiceRequest{Name: strings.Repeat("a", domain.MaxNameLength+1)}},
		{name: "zero duration", req: models.CreateServiceRequest{Name: "Corte", DurationMinutes: ptr.Ptr(0)}},
		{name: "negative duration", req: models.CreateServiceRequest{Name: "Corte", DurationMinutes: ptr.Ptr(-15)}},
		{name: "negative price", req: models.CreateServiceRequest{Name: "Corte", Price: ptr.Ptr(-1.0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateService(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCreateProfessional(t *testing.T) {
	repo := &memRepo{}
	svc := NewService(repo, logger.NewNop())

	got, err := svc.CreateProfessional(context.Background(), &models.CreateProfessionalRequest{
		Name:  "Beatriz",
		Phone: ptr.Ptr("  "),
		Email: ptr.Ptr("bia@salao.com.br"),
	})

	require.NoError(t, err)
	assert.Nil(t, got.Phone)
	assert.Equal(t, "bia@salao.com.br", *got.Email)

	_, err = svc.CreateProfessional(context.Background(), &models.CreateProfessionalRequest{Name: "X", Email: ptr.Ptr("not-an-email")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetProfessional_NotFound(t *testing.T) {
	svc := NewService(&memRepo{}, logger.NewNop())

	_, err := svc.GetProfessional(context.Background(), 1)

	assert.ErrorIs(t, err, ErrProfessionalNotFound)
}

func TestDeleteService(t *testing.T) {
	tests := []struct {
		name     string
		repoErr  error
		expected error
	}{
		{name: "deleted"},
		{name: "not found", repoErr: catalogRepo.ErrServiceNotFound, expected: ErrServiceNotFound},
		{name: "in use", repoErr: catalogRepo.ErrServiceInUse, expected: ErrServiceInUse},
		{name: "storage", repoErr: errors.New("boom"), expected: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&memRepo{deleteErr: tt.repoErr}, logger.NewNop())

			err := svc.DeleteService(context.Background(), 1)

			if tt.expected == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}
