package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonAgenda/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListOverlapping(ctx context.Context, professionalID int64, from, to time.Time) ([]domain.Interval, error)
}

// CatalogRepository интерфейс справочников мастеров и услуг
type CatalogRepository interface {
	GetProfessionalByID(ctx context.Context, id int64) (*domain.Professional, error)
	GetServiceByID(ctx context.Context, id int64) (*domain.Service, error)
}

// SlotCalculator расчёт слотов дня
type SlotCalculator interface {
	Location() *time.Location
	DayBounds(t time.Time) (time.Time, time.Time)
	ComputeSlots(day time.Time, serviceDurationMinutes int, occupied []domain.Interval) ([]domain.Slot, error)
}

// OccupancyCache кэш занятых интервалов дня
type OccupancyCache interface {
	Get(ctx context.Context, professionalID int64, day time.Time) ([]domain.Interval, error)
	Generation(ctx context.Context, professionalID int64, day time.Time) (int64, error)
	Set(ctx context.Context, professionalID int64, day time.Time, generation int64, intervals []domain.Interval) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
