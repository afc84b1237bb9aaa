package domain

import "time"

// Booking reserved interval of a professional for a client.
// Invariant: EndTime = StartTime + service duration.
type Booking struct {
	ID             int64
	ProfessionalID int64
	ServiceID      int64
	ClientName     string
	ClientPhone    string
	StartTime      time.Time
	EndTime        time.Time
	CreatedAt      time.Time

	// Joined from services, filled by read queries
	ServiceName string
}

// Interval returns the booking interval [StartTime, EndTime)
func (b *Booking) Interval() Interval {
	return Interval{Start: b.StartTime, End: b.EndTime}
}

// BookingsFilter filter for the administrative booking list
type BookingsFilter struct {
	ProfessionalID *int64     // optional
	ServiceID      *int64     // optional
	From           *time.Time // start_time >= From
	To             *time.Time // start_time < To
	Search         *string    // substring of client name or phone
	Limit          int        // 0 = DefaultListLimit
}

// DefaultListLimit page size of the administrative booking list
const DefaultListLimit = 100

// DayBookingCount number of bookings of a professional on a civil day
type DayBookingCount struct {
	Date  time.Time
	Count int
}
