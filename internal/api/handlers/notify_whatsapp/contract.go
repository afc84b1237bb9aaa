package notify_whatsapp

import (
	"context"

	"github.com/m04kA/SMC-SalonAgenda/internal/service/bookings/models"
)

type BookingService interface {
	GetByID(ctx context.Context, id int64) (*models.BookingResponse, error)
}

type Notifier interface {
	Notify(ctx context.Context, bookingID int64, role string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
