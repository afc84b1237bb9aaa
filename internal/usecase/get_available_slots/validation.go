package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonAgenda/pkg/dateparse"
)

// validateRequest валидирует запрос и возвращает разобранный день в зоне loc
func validateRequest(req *Request, loc *time.Location) (time.Time, error) {
	if req.ServiceID <= 0 {
		return time.Time{}, fmt.Errorf("%w: service_id must be positive", ErrInvalidInput)
	}

	if req.ProfessionalID <= 0 {
		return time.Time{}, fmt.Errorf("%w: professional_id must be positive", ErrInvalidInput)
	}

	day, err := dateparse.Parse(req.Day, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: day: %w", ErrInvalidInput, err)
	}

	return day, nil
}
