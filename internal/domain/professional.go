package domain

import "time"

// Professional person who performs services and owns a booking set
type Professional struct {
	ID        int64
	Name      string
	Phone     *string
	Email     *string
	CreatedAt time.Time
}
