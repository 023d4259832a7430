package resident

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/narenkm/societyhub/pkg/response"
	"github.com/narenkm/societyhub/pkg/validate"
)

// Handler handles HTTP requests for resident operations
type Handler struct {
	service *Service
}

// NewHandler creates a new resident handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for resident endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{id}", h.GetByID)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	r.Post("/{id}/activate", h.Activate)
	r.Post("/{id}/deactivate", h.Deactivate)

	return r
}

// Create handles POST /residents
// @Summary      Register a resident
// @Description  Register a new resident flat with its base monthly maintenance
// @Tags         residents
// @Accept       json
// @Produce      json
// @Param        request body CreateResidentRequest true "Resident registration request"
// @Success      201 {object} response.APIResponse{data=ResidentResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /residents [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateResidentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	resident, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrFlatNumberTaken) {
			response.Conflict(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to create resident")
		return
	}

	response.JSON(w, http.StatusCreated, resident.ToResponse())
}

// GetByID handles GET /residents/{id}
// @Summary      Get resident by ID
// @Tags         residents
// @Produce      json
// @Param        id path int true "Resident ID"
// @Success      200 {object} response.APIResponse{data=ResidentResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /residents/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid resident ID")
		return
	}

	resident, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrResidentNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get resident")
		return
	}

	response.JSON(w, http.StatusOK, resident.ToResponse())
}

// List handles GET /residents
// @Summary      List residents
// @Description  Get a paginated list of residents, optionally only active ones
// @Tags         residents
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        per_page query int false "Items per page" default(20)
// @Param        active query bool false "Only active residents"
// @Success      200 {object} response.APIResponse{data=[]ResidentResponse}
// @Router       /residents [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	activeOnly := r.URL.Query().Get("active") == "true"

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	residents, total, err := h.service.List(r.Context(), activeOnly, page, perPage)
	if err != nil {
		response.InternalError(w, "Failed to list residents")
		return
	}

	residentResponses := make([]*ResidentResponse, len(residents))
	for i, res := range residents {
		residentResponses[i] = res.ToResponse()
	}

	totalPages := (total + perPage - 1) / perPage
	meta := &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}

	response.JSONWithMeta(w, http.StatusOK, residentResponses, meta)
}

// Update handles PUT /residents/{id}
// @Summary      Update a resident
// @Description  Update registry fields; base maintenance changes apply to months generated afterwards
// @Tags         residents
// @Accept       json
// @Produce      json
// @Param        id path int true "Resident ID"
// @Param        request body UpdateResidentRequest true "Resident update request"
// @Success      200 {object} response.APIResponse{data=ResidentResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /residents/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid resident ID")
		return
	}

	var req UpdateResidentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	resident, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, ErrResidentNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to update resident")
		return
	}

	response.JSON(w, http.StatusOK, resident.ToResponse())
}

// Activate handles POST /residents/{id}/activate
// @Summary      Activate a resident
// @Tags         residents
// @Produce      json
// @Param        id path int true "Resident ID"
// @Success      200 {object} response.APIResponse{data=ResidentResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /residents/{id}/activate [post]
func (h *Handler) Activate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, true)
}

// Deactivate handles POST /residents/{id}/deactivate
// @Summary      Deactivate a resident
// @Description  Deactivated residents stop getting monthly payment rows generated
// @Tags         residents
// @Produce      json
// @Param        id path int true "Resident ID"
// @Success      200 {object} response.APIResponse{data=ResidentResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /residents/{id}/deactivate [post]
func (h *Handler) Deactivate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, false)
}

func (h *Handler) setActive(w http.ResponseWriter, r *http.Request, active bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid resident ID")
		return
	}

	resident, err := h.service.SetActive(r.Context(), id, active)
	if err != nil {
		if errors.Is(err, ErrResidentNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to update resident")
		return
	}

	response.JSON(w, http.StatusOK, resident.ToResponse())
}

// Delete handles DELETE /residents/{id}
// @Summary      Delete a resident
// @Description  Delete a resident with no payment history
// @Tags         residents
// @Produce      json
// @Param        id path int true "Resident ID"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /residents/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid resident ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrResidentNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		if errors.Is(err, ErrHasPayments) {
			response.Conflict(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to delete resident")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Resident deleted successfully"})
}
