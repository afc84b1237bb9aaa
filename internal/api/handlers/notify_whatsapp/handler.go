package notify_whatsapp

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonAgenda/internal/api/handlers"
	"github.com/m04kA/SMC-SalonAgenda/internal/integrations/notifier"
	"github.com/m04kA/SMC-SalonAgenda/internal/service/bookings"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBookingID   = "некорректный booking_id"
	msgInvalidRecipient   = "recipient_role должен быть client или professional"
	msgNotFound           = "бронирование не найдено"
)

type Handler struct {
	service  BookingService
	notifier Notifier
	logger   Logger
}

func NewHandler(service BookingService, notifier Notifier, logger Logger) *Handler {
	return &Handler{
		service:  service,
		notifier: notifier,
		logger:   logger,
	}
}

// Handle POST /api/v1/notify-whatsapp
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req NotifyRequest
	if err := handlers.DecodeBody(r, &req); err != nil {
		h.logger.Warn("POST /notify-whatsapp - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.BookingID <= 0 {
		h.logger.Warn("POST /notify-whatsapp - Invalid booking ID: %d", req.BookingID)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}
	if !notifier.ValidRecipient(req.RecipientRole) {
		h.logger.Warn("POST /notify-whatsapp - Invalid recipient: %q", req.RecipientRole)
		handlers.RespondBadRequest(w, msgInvalidRecipient)
		return
	}

	if _, err := h.service.GetByID(r.Context(), req.BookingID); err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /notify-whatsapp - Booking not found: booking_id=%d", req.BookingID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("POST /notify-whatsapp - Failed to get booking: booking_id=%d, error=%v", req.BookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if err := h.notifier.Notify(r.Context(), req.BookingID, req.RecipientRole); err != nil {
		h.logger.Error("POST /notify-whatsapp - Failed to notify: booking_id=%d, recipient=%s, error=%v",
			req.BookingID, req.RecipientRole, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /notify-whatsapp - Notification sent: booking_id=%d, recipient=%s", req.BookingID, req.RecipientRole)
	handlers.RespondJSON(w, http.StatusOK, NotifyResponse{Status: "ok"})
}
