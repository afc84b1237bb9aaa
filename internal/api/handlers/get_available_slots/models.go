package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SalonAgenda/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SalonAgenda/internal/usecase/get_available_slots"
)

// SlotsResponse HTTP ответ со слотами дня
type SlotsResponse struct {
	Date            string         `json:"date"` // YYYY-MM-DD
	ServiceID       int64          `json:"service_id"`
	ProfessionalID  int64          `json:"professional_id"`
	DurationMinutes int            `json:"duration_minutes"`
	Slots           []SlotResponse `json:"slots"`
}

// SlotResponse слот
type SlotResponse struct {
	StartTime string `json:"start_time"` // RFC 3339
	Available bool   `json:"available"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime: s.Start.Format(time.RFC3339),
			Available: s.Available,
		})
	}

	return &SlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		ServiceID:       resp.ServiceID,
		ProfessionalID:  resp.ProfessionalID,
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}
