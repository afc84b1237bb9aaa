package domain

// Default configuration values
const (
	DefaultSlotIntervalMinutes    = 15
	DefaultServiceDurationMinutes = 60
	DefaultCalendarDays           = 14
	DefaultTimezone               = "America/Sao_Paulo"
	DefaultOpenTime               = "09:00"
	DefaultCloseTime              = "19:00"
)

// Business validation constants
const (
	MaxNameLength             = 120
	MaxPhoneLength            = 30
	MaxServiceDurationMinutes = 24 * 60
	MaxCalendarDays           = 90
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Recipient roles for booking notifications
const (
	RecipientClient       = "client"
	RecipientProfessional = "professional"
)
