package list_professionals

import (
	"net/http"

	"github.com/m04kA/SMC-SalonAgenda/internal/api/handlers"
	"github.com/m04kA/SMC-SalonAgenda/internal/service/catalog/models"
)

// ProfessionalsResponse HTTP ответ со списком мастеров
type ProfessionalsResponse struct {
	Professionals []*models.ProfessionalResponse `json:"professionals"`
}

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

// Handle GET /api/v1/admin/professionals
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	professionals, err := h.service.ListProfessionals(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/professionals - Failed to list professionals: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/professionals - Professionals retrieved successfully: count=%d", len(professionals))
	handlers.RespondJSON(w, http.StatusOK, ProfessionalsResponse{Professionals: professionals})
}
