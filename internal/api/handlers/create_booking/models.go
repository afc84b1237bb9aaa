package create_booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	createBooking "github.com/m04kA/SMC-SalonAgenda/internal/usecase/create_booking"
)

// ErrInvalidStart начало бронирования не в формате RFC 3339
var ErrInvalidStart = errors.New("create_booking: invalid start")

// CreateBookingRequest HTTP запрос на создание бронирования (JSON или форма)
type CreateBookingRequest struct {
	ProfessionalID int64  `json:"professional_id"`
	ServiceID      int64  `json:"service_id"`
	Start          string `json:"start"` // RFC 3339, например 2025-11-03T10:00:00-03:00
	ClientName     string `json:"client_name"`
	ClientPhone    string `json:"client_phone"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	start, err := time.Parse(time.RFC3339, strings.TrimSpace(r.Start))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStart, r.Start)
	}

	return &createBooking.Request{
		ProfessionalID: r.ProfessionalID,
		ServiceID:      r.ServiceID,
		Start:          start,
		ClientName:     r.ClientName,
		ClientPhone:    r.ClientPhone,
	}, nil
}

// CreateBookingResponse HTTP ответ
type CreateBookingResponse struct {
	Status  string          `json:"status"`
	Booking BookingResponse `json:"booking"`
}

// BookingResponse созданное бронирование
type BookingResponse struct {
	ID             int64  `json:"id"`
	ProfessionalID int64  `json:"professional_id"`
	ServiceID      int64  `json:"service_id"`
	ServiceName    string `json:"service_name"`
	StartISO       string `json:"start_iso"`
	EndISO         string `json:"end_iso"`
	ClientName     string `json:"client_name"`
	ClientPhone    string `json:"client_phone"`
	CreatedAt      string `json:"created_at"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		Status: "ok",
		Booking: BookingResponse{
			ID:             resp.ID,
			ProfessionalID: resp.ProfessionalID,
			ServiceID:      resp.ServiceID,
			ServiceName:    resp.ServiceName,
			StartISO:       resp.Start.Format(time.RFC3339),
			EndISO:         resp.End.Format(time.RFC3339),
			ClientName:     resp.ClientName,
			ClientPhone:    resp.ClientPhone,
			CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
		},
	}
}
