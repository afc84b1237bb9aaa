package list_days

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonAgenda/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	CountByDay(ctx context.Context, professionalID int64, from, to time.Time, tz string) ([]domain.DayBookingCount, error)
}

// CatalogRepository интерфейс справочников мастеров и услуг
type CatalogRepository interface {
	GetProfessionalByID(ctx context.Context, id int64) (*domain.Professional, error)
	GetFirstProfessional(ctx context.Context) (*domain.Professional, error)
	ListServices(ctx context.Context) ([]*domain.Service, error)
}

// Calendar рабочий календарь салона
type Calendar interface {
	Location() *time.Location
	CivilDay(t time.Time) time.Time
	IsOpen(t time.Time) bool
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
