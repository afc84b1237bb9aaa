package domain

import "time"

// Service salon service; DurationMinutes drives slot length
type Service struct {
	ID              int64
	Name            string
	DurationMinutes int
	Price           *float64
	Description     string
	CreatedAt       time.Time
}

// HasValidDuration returns true if the duration can produce slots
func (s *Service) HasValidDuration() bool {
	return s.DurationMinutes > 0 && s.DurationMinutes <= MaxServiceDurationMinutes
}
