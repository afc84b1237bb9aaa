package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonAgenda/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	LockProfessional(ctx context.Context, professionalID int64) error
	ListOverlapping(ctx context.Context, professionalID int64, from, to time.Time) ([]domain.Interval, error)
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// CatalogRepository интерфейс справочников мастеров и услуг
type CatalogRepository interface {
	GetProfessionalByID(ctx context.Context, id int64) (*domain.Professional, error)
	GetServiceByID(ctx context.Context, id int64) (*domain.Service, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Calendar приводит время к зоне салона
type Calendar interface {
	Normalize(t time.Time) time.Time
	CivilDay(t time.Time) time.Time
}

// OccupancyCache кэш занятости, сбрасывается после успешной записи
type OccupancyCache interface {
	Invalidate(ctx context.Context, professionalID int64, day time.Time) error
}

// Notifier отправка уведомлений о бронировании
type Notifier interface {
	Notify(ctx context.Context, bookingID int64, role string) error
}

// Metrics счётчик исходов бронирования
type Metrics interface {
	IncBookingOutcome(outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
