package domain

import "time"

// Slot candidate booking start time within working hours
type Slot struct {
	Start     time.Time
	End       time.Time
	Available bool
}
