package create_professional

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonAgenda/internal/api/handlers"
	"github.com/m04kA/SMC-SalonAgenda/internal/service/catalog"
	"github.com/m04kA/SMC-SalonAgenda/internal/service/catalog/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные мастера"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/professionals
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProfessionalRequest
	if err := handlers.DecodeBody(r, &req); err != nil {
		h.logger.Warn("POST /admin/professionals - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	professional, err := h.service.CreateProfessional(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("POST /admin/professionals - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /admin/professionals - Failed to create professional: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/professionals - Professional created successfully: professional_id=%d", professional.ID)
	handlers.RespondJSON(w, http.StatusCreated, professional)
}
