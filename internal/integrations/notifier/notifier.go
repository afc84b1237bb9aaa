// Package notifier отправляет уведомления о бронированиях.
// Пока это заглушка WhatsApp: каждое уведомление пишется одной строкой лога.
package notifier

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonAgenda/internal/domain"
)

// ErrInvalidRecipient неизвестная роль получателя
var ErrInvalidRecipient = errors.New("notifier: recipient role must be client or professional")

// Logger интерфейс логгера
type Logger interface {
	Info(format string, v ...interface{})
}

// Notifier заглушка канала WhatsApp
type Notifier struct {
	log Logger
}

// New создает заглушку уведомлений
func New(log Logger) *Notifier {
	return &Notifier{log: log}
}

// ValidRecipient проверяет роль получателя
func ValidRecipient(role string) bool {
	return role == domain.RecipientClient || role == domain.RecipientProfessional
}

// Notify отправляет уведомление о бронировании получателю role
func (n *Notifier) Notify(ctx context.Context, bookingID int64, role string) error {
	if !ValidRecipient(role) {
		return fmt.Errorf("%w: got %q", ErrInvalidRecipient, role)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	n.log.Info("Notify: channel=whatsapp, booking_id=%d, recipient=%s", bookingID, role)
	return nil
}
