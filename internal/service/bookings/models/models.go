package models

import (
	"time"

	"github.com/m04kA/SMC-SalonAgenda/internal/domain"
)

// Request модели

// ListBookingsRequest фильтр административного списка бронирований
type ListBookingsRequest struct {
	ProfessionalID *int64
	ServiceID      *int64
	From           *string // день, включительно: 2025-11-03 или "3 de Novembro de 2025"
	To             *string // день, включительно
	Search         *string // подстрока имени или телефона клиента
	Limit          int
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID             int64     `json:"id"`
	ProfessionalID int64     `json:"professional_id"`
	ServiceID      int64     `json:"service_id"`
	ServiceName    string    `json:"service_name"`
	StartISO       string    `json:"start_iso"` // RFC 3339 в зоне салона
	EndISO         string    `json:"end_iso"`
	ClientName     string    `json:"client_name"`
	ClientPhone    string    `json:"client_phone"`
	CreatedAt      time.Time `json:"created_at"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO, время выводится в зоне loc
func FromDomainBooking(b *domain.Booking, loc *time.Location) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:             b.ID,
		ProfessionalID: b.ProfessionalID,
		ServiceID:      b.ServiceID,
		ServiceName:    b.ServiceName,
		StartISO:       b.StartTime.In(loc).Format(time.RFC3339),
		EndISO:         b.EndTime.In(loc).Format(time.RFC3339),
		ClientName:     b.ClientName,
		ClientPhone:    b.ClientPhone,
		CreatedAt:      b.CreatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking, loc *time.Location) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking, loc); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
