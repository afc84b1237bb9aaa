package models

import (
	"time"

	"github.com/m04kA/SMC-SalonAgenda/internal/domain"
)

// Request модели

// CreateProfessionalRequest запрос на создание мастера
type CreateProfessionalRequest struct {
	Name  string  `json:"name" validate:"required,max=120"`
	Phone *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
}

// ToDomain конвертирует request в domain модель
func (r *CreateProfessionalRequest) ToDomain() *domain.Professional {
	return &domain.Professional{
		Name:  r.Name,
		Phone: r.Phone,
		Email: r.Email,
	}
}

// CreateServiceRequest запрос на создание услуги
type CreateServiceRequest struct {
	Name            string   `json:"name" validate:"required,max=120"`
	DurationMinutes *int     `json:"duration_minutes,omitempty"` // nil = domain.DefaultServiceDurationMinutes
	Price           *float64 `json:"price,omitempty"`
	Description     string   `json:"description,omitempty" validate:"max=2000"`
}

// ToDomain конвертирует request в domain модель
func (r *CreateServiceRequest) ToDomain() *domain.Service {
	duration := domain.DefaultServiceDurationMinutes
	if r.DurationMinutes != nil {
		duration = *r.DurationMinutes
	}
	return &domain.Service{
		Name:            r.Name,
		DurationMinutes: duration,
		Price:           r.Price,
		Description:     r.Description,
	}
}

// Response модели

// ProfessionalResponse мастер
type ProfessionalResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone,omitempty"`
	Email     *string   `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ServiceResponse услуга
type ServiceResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"duration_minutes"`
	Price           *float64  `json:"price,omitempty"`
	Description     string    `json:"description,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// FromDomainProfessional конвертирует domain модель в response
func FromDomainProfessional(p *domain.Professional) *ProfessionalResponse {
	return &ProfessionalResponse{
		ID:        p.ID,
		Name:      p.Name,
		Phone:     p.Phone,
		Email:     p.Email,
		CreatedAt: p.CreatedAt,
	}
}

// FromDomainService конвертирует domain модель в response
func FromDomainService(s *domain.Service) *ServiceResponse {
	return &ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
		Description:     s.Description,
		CreatedAt:       s.CreatedAt,
	}
}

// FromDomainProfessionals конвертирует список мастеров
func FromDomainProfessionals(list []*domain.Professional) []*ProfessionalResponse {
	out := make([]*ProfessionalResponse, 0, len(list))
	for _, p := range list {
		out = append(out, FromDomainProfessional(p))
	}
	return out
}

// FromDomainServices конвертирует список услуг
func FromDomainServices(list []*domain.Service) []*ServiceResponse {
	out := make([]*ServiceResponse, 0, len(list))
	for _, s := range list {
		out = append(out, FromDomainService(s))
	}
	return out
}
