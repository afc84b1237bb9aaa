// Package availability computes bookable start times of a day from the
// working-hours table, the service duration and the occupied intervals.
package availability

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonAgenda/internal/domain"
)

var (
	// ErrInvalidDuration service duration is not positive
	ErrInvalidDuration = errors.New("availability: service duration must be positive")

	// ErrInvalidSlotInterval slot granularity is not positive
	ErrInvalidSlotInterval = errors.New("availability: slot interval must be positive")

	// ErrNoLocation calculator built without a time zone
	ErrNoLocation = errors.New("availability: location is required")
)

// Calculator holds the schedule configuration. All times entering the
// calculator are normalised to its location before any comparison.
type Calculator struct {
	workingHours        domain.WorkingHoursTable
	slotIntervalMinutes int
	loc                 *time.Location
}

// NewCalculator validates and builds a calculator
func NewCalculator(workingHours domain.WorkingHoursTable, slotIntervalMinutes int, loc *time.Location) (*Calculator, error) {
	if slotIntervalMinutes <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSlotInterval, slotIntervalMinutes)
	}
	if loc == nil {
		return nil, ErrNoLocation
	}
	for weekday, hours := range workingHours {
		if err := hours.Validate(); err != nil {
			return nil, fmt.Errorf("availability: %s: %w", weekday, err)
		}
	}

	return &Calculator{
		workingHours:        workingHours,
		slotIntervalMinutes: slotIntervalMinutes,
		loc:                 loc,
	}, nil
}

// Location returns the civil time zone of the calculator
func (c *Calculator) Location() *time.Location {
	return c.loc
}

// Normalize expresses t in the calculator's zone
func (c *Calculator) Normalize(t time.Time) time.Time {
	return t.In(c.loc)
}

// CivilDay returns local midnight of the day containing t
func (c *Calculator) CivilDay(t time.Time) time.Time {
	y, m, d := t.In(c.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.loc)
}

// DayBounds returns [local midnight, next local midnight) of the day containing t
func (c *Calculator) DayBounds(t time.Time) (time.Time, time.Time) {
	start := c.CivilDay(t)
	return start, start.AddDate(0, 0, 1)
}

// IsOpen reports whether the day containing t has working hours
func (c *Calculator) IsOpen(t time.Time) bool {
	return c.workingHours.IsOpen(c.CivilDay(t))
}

// ComputeSlots returns the ordered candidate start times of the day containing
// `day`, each tagged available or not against `occupied`.
//
// Candidates start at opening time and step by the slot interval while
// start+duration <= closing time. A closed day yields an empty slice.
func (c *Calculator) ComputeSlots(day time.Time, serviceDurationMinutes int, occupied []domain.Interval) ([]domain.Slot, error) {
	if serviceDurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDuration, serviceDurationMinutes)
	}

	civil := c.CivilDay(day)
	hours, ok := c.workingHours.For(civil)
	if !ok {
		return []domain.Slot{}, nil
	}

	openAt := hours.Open.On(civil, c.loc)
	closeAt := hours.Close.On(civil, c.loc)
	duration := time.Duration(serviceDurationMinutes) * time.Minute
	step := time.Duration(c.slotIntervalMinutes) * time.Minute

	busy := make([]domain.Interval, len(occupied))
	for i, interval := range occupied {
		busy[i] = interval.In(c.loc)
	}

	slots := make([]domain.Slot, 0)
	for start := openAt; !start.Add(duration).After(closeAt); start = start.Add(step) {
		candidate := domain.Interval{Start: start, End: start.Add(duration)}
		_, conflict := FirstConflict(candidate, busy)
		slots = append(slots, domain.Slot{
			Start:     candidate.Start,
			End:       candidate.End,
			Available: !conflict,
		})
	}

	return slots, nil
}

// FirstConflict returns the first occupied interval overlapping candidate
func FirstConflict(candidate domain.Interval, occupied []domain.Interval) (domain.Interval, bool) {
	for _, interval := range occupied {
		if candidate.Overlaps(interval) {
			return interval, true
		}
	}
	return domain.Interval{}, false
}
