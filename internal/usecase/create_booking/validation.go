package create_booking

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-SalonAgenda/internal/domain"
)

// validateRequest валидирует входные данные запроса и нормализует строки
func validateRequest(req *Request) error {
	if req.ProfessionalID <= 0 {
		return fmt.Errorf("%w: professional_id must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: service_id must be positive", ErrInvalidInput)
	}

	if req.Start.IsZero() {
		return fmt.Errorf("%w: start is required", ErrInvalidInput)
	}

	req.ClientName = strings.TrimSpace(req.ClientName)
	if req.ClientName == "" {
		return fmt.Errorf("%w: client_name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(req.ClientName) > domain.MaxNameLength {
		return fmt.Errorf("%w: client_name exceeds %d characters", ErrInvalidInput, domain.MaxNameLength)
	}

	req.ClientPhone = strings.TrimSpace(req.ClientPhone)
	if req.ClientPhone == "" {
		return fmt.Errorf("%w: client_phone is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(req.ClientPhone) > domain.MaxPhoneLength {
		return fmt.Errorf("%w: client_phone exceeds %d characters", ErrInvalidInput, domain.MaxPhoneLength)
	}

	return nil
}

// daysTouched возвращает календарные дни, которые задевает интервал
func daysTouched(cal Calendar, interval domain.Interval) []time.Time {
	first := cal.CivilDay(interval.Start)
	last := cal.CivilDay(interval.End.Add(-time.Nanosecond))
	days := []time.Time{first}
	for d := cal.CivilDay(first.AddDate(0, 0, 1)); !d.After(last); d = cal.CivilDay(d.AddDate(0, 0, 1)) {
		days = append(days, d)
	}
	return days
}
