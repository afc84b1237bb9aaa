package list_days

import (
	"time"

	"github.com/m04kA/SMC-SalonAgenda/internal/domain"
)

// Request модель запроса календаря
type Request struct {
	ProfessionalID *int64 // nil = первый мастер по ID
}

// Response календарь мастера на ближайшие дни
type Response struct {
	Professional *domain.Professional
	Services     []*domain.Service
	Days         []Day
}

// Day день календаря
type Day struct {
	Date         time.Time // полночь в зоне салона
	BookingCount int
	Open         bool
}
