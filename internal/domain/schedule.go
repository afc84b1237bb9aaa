package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonAgenda/pkg/types"
)

// WorkingHours opening window of a single weekday
type WorkingHours struct {
	Open  types.TimeString
	Close types.TimeString
}

// Validate checks format and that Open < Close
func (w WorkingHours) Validate() error {
	if err := w.Open.Validate(); err != nil {
		return fmt.Errorf("open: %w", err)
	}
	if err := w.Close.Validate(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	if !w.Open.IsBefore(w.Close) {
		return fmt.Errorf("open %s must be before close %s", w.Open, w.Close)
	}
	return nil
}

// WorkingHoursTable maps weekday to working hours; an absent weekday is closed
type WorkingHoursTable map[time.Weekday]WorkingHours

// For returns the working hours of the day's weekday and whether it is open
func (t WorkingHoursTable) For(day time.Time) (WorkingHours, bool) {
	hours, ok := t[day.Weekday()]
	return hours, ok
}

// IsOpen returns true if the day's weekday has working hours
func (t WorkingHoursTable) IsOpen(day time.Time) bool {
	_, ok := t.For(day)
	return ok
}

// DefaultWorkingHoursTable every weekday from DefaultOpenTime to DefaultCloseTime
func DefaultWorkingHoursTable() WorkingHoursTable {
	table := make(WorkingHoursTable, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		table[d] = WorkingHours{Open: DefaultOpenTime, Close: DefaultCloseTime}
	}
	return table
}
