package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonAgenda/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-SalonAgenda/internal/usecase/get_available_slots"
)

const (
	msgInvalidServiceID      = "некорректный service_id"
	msgInvalidProfessionalID = "некорректный professional_id"
	msgMissingDay            = "параметр day обязателен"
	msgInvalidParams         = "некорректные параметры запроса"
	msgServiceNotFound       = "услуга не найдена"
	msgProfessionalNotFound  = "мастер не найден"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots
// Query params: day (YYYY-MM-DD или "3 de Novembro de 2025"), service_id, professional_id
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	day := query.Get("day")
	if day == "" {
		h.logger.Warn("GET /slots - Missing day")
		handlers.RespondBadRequest(w, msgMissingDay)
		return
	}

	serviceID, err := handlers.ParseID(query.Get("service_id"))
	if err != nil {
		h.logger.Warn("GET /slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	professionalID, err := handlers.ParseID(query.Get("professional_id"))
	if err != nil {
		h.logger.Warn("GET /slots - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		Day:            day,
		ServiceID:      serviceID,
		ProfessionalID: professionalID,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /slots - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrProfessionalNotFound):
			h.logger.Warn("GET /slots - Professional not found: professional_id=%d", professionalID)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		default:
			h.logger.Error("GET /slots - Failed to get slots: service_id=%d, professional_id=%d, error=%v",
				serviceID, professionalID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /slots - Slots retrieved successfully: day=%s, count=%d",
		result.Date.Format("2006-01-02"), len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
