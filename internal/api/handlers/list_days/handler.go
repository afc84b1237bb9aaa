package list_days

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonAgenda/internal/api/handlers"
	listDays "github.com/m04kA/SMC-SalonAgenda/internal/usecase/list_days"
)

const (
	msgInvalidProfessionalID = "некорректный professional_id"
	msgProfessionalNotFound  = "мастер не найден"
)

type Handler struct {
	useCase ListDaysUseCase
	logger  Logger
}

func NewHandler(useCase ListDaysUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/days
// Query params: professional_id (опционально, по умолчанию первый мастер)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	professionalID, err := handlers.ParseOptionalID(r.URL.Query().Get("professional_id"))
	if err != nil {
		h.logger.Warn("GET /days - Invalid professional ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProfessionalID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &listDays.Request{ProfessionalID: professionalID})
	if err != nil {
		switch {
		case errors.Is(err, listDays.ErrInvalidInput):
			h.logger.Warn("GET /days - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidProfessionalID)

		case errors.Is(err, listDays.ErrProfessionalNotFound):
			h.logger.Warn("GET /days - Professional not found: %v", err)
			handlers.RespondNotFound(w, msgProfessionalNotFound)

		default:
			h.logger.Error("GET /days - Failed to list days: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /days - Days retrieved successfully: professional_id=%d, count=%d",
		result.Professional.ID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
