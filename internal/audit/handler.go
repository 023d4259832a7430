package audit

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/narenkm/societyhub/pkg/response"
)

// Handler handles HTTP requests for the audit trail
type Handler struct {
	service *Service
}

// NewHandler creates a new audit handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for audit endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/resident/{residentId}", h.ListByResident)

	return r
}

// ListByResident handles GET /audit/resident/{residentId}
// @Summary      List a resident's base-maintenance changes
// @Tags         audit
// @Produce      json
// @Param        residentId path int true "Resident ID"
// @Success      200 {object} response.APIResponse{data=[]MaintenanceChange}
// @Router       /audit/resident/{residentId} [get]
func (h *Handler) ListByResident(w http.ResponseWriter, r *http.Request) {
	residentID, err := strconv.ParseInt(chi.URLParam(r, "residentId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid resident ID")
		return
	}

	entries, err := h.service.ListByResident(r.Context(), residentID)
	if err != nil {
		response.InternalError(w, "Failed to list audit entries")
		return
	}

	response.JSON(w, http.StatusOK, entries)
}
