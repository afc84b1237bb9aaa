package list_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SalonAgenda/internal/api/handlers"
	"github.com/m04kA/SMC-SalonAgenda/internal/service/bookings"
	"github.com/m04kA/SMC-SalonAgenda/internal/service/bookings/models"
)

const (
	msgInvalidProfessionalID = "некорректный professional_id"
	msgInvalidServiceID      = "некорректный service_id"
	msgInvalidLimit          = "некорректный limit"
	msgInvalidDate           = "некорректный формат даты"
	msgInvalidTimeRange      = "дата начала периода позже даты окончания"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/bookings
// Query params: professional_id, service_id, from, to (дни включительно), q (имя или телефон), limit
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	professionalID, err := handlers.ParseOptionalID(query.Get("professional_id"))
	if err != nil {
		h.logger.Warn("GET /admin/bookings - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	serviceID, err := handlers.ParseOptionalID(query.Get("service_id"))
	if err != nil {
		h.logger.Warn("GET /admin/bookings - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	var limit int
	if raw := query.Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			h.logger.Warn("GET /admin/bookings - Invalid limit: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidLimit)
			return
		}
	}

	req := &models.ListBookingsRequest{
		ProfessionalID: professionalID,
		ServiceID:      serviceID,
		From:           handlers.OptionalString(query.Get("from")),
		To:             handlers.OptionalString(query.Get("to")),
		Search:         handlers.OptionalString(query.Get("q")),
		Limit:          limit,
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidTimeRange):
			h.logger.Warn("GET /admin/bookings - Invalid time range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /admin/bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /admin/bookings - Failed to list bookings: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/bookings - Bookings retrieved successfully: count=%d", len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
