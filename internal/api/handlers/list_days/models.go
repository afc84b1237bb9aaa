package list_days

import (
	"github.com/m04kA/SMC-SalonAgenda/internal/domain"
	catalogModels "github.com/m04kA/SMC-SalonAgenda/internal/service/catalog/models"
	listDays "github.com/m04kA/SMC-SalonAgenda/internal/usecase/list_days"
)

// DaysResponse HTTP ответ календаря
type DaysResponse struct {
	Professional *catalogModels.ProfessionalResponse `json:"professional"`
	Services     []*catalogModels.ServiceResponse    `json:"services"`
	Days         []DayResponse                       `json:"days"`
}

// DayResponse день календаря
type DayResponse struct {
	Date         string `json:"date"` // YYYY-MM-DD
	Weekday      string `json:"weekday"`
	BookingCount int    `json:"booking_count"`
	Open         bool   `json:"open"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *listDays.Response) *DaysResponse {
	days := make([]DayResponse, 0, len(resp.Days))
	for _, d := range resp.Days {
		days = append(days, DayResponse{
			Date:         d.Date.Format(domain.DateFormat),
			Weekday:      d.Date.Weekday().String(),
			BookingCount: d.BookingCount,
			Open:         d.Open,
		})
	}

	return &DaysResponse{
		Professional: catalogModels.FromDomainProfessional(resp.Professional),
		Services:     catalogModels.FromDomainServices(resp.Services),
		Days:         days,
	}
}
