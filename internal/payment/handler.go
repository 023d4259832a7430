package payment

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/narenkm/societyhub/internal/export"
	"github.com/narenkm/societyhub/internal/resident"
	"github.com/narenkm/societyhub/pkg/middleware"
	"github.com/narenkm/societyhub/pkg/response"
	"github.com/narenkm/societyhub/pkg/validate"
)

// Handler handles HTTP requests for payment operations
type Handler struct {
	service *Service
}

// NewHandler creates a new payment handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for payment endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/generate", h.Generate)
	r.Post("/refresh-overdue", h.RefreshOverdue)
	r.Get("/export.csv", h.ExportCSV)

	r.Get("/", h.ListByMonth)
	r.Get("/{id}", h.GetByID)
	r.Put("/{id}/amounts", h.UpdateAmounts)
	r.Post("/{id}/record", h.RecordPayment)
	r.Get("/{id}/receipt", h.Receipt)

	r.Get("/resident/{residentId}", h.ListByResident)

	return r
}

// Generate handles POST /payments/generate
// @Summary      Generate a month's payment rows
// @Description  Create the month's maintenance charge for every active resident without one, base plus carry-forward
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request body GenerateRequest true "Month to generate"
// @Success      201 {object} response.APIResponse{data=GenerateResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /payments/generate [post]
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	created, err := h.service.GenerateForMonth(r.Context(), req.Month)
	if err != nil {
		if errors.Is(err, ErrInvalidMonth) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to generate payments")
		return
	}

	response.JSON(w, http.StatusCreated, &GenerateResponse{Month: req.Month, Created: created})
}

// GetByID handles GET /payments/{id}
// @Summary      Get payment by ID
// @Tags         payments
// @Produce      json
// @Param        id path int true "Payment ID"
// @Success      200 {object} response.APIResponse{data=PaymentResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /payments/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid payment ID")
		return
	}

	p, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrPaymentNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get payment")
		return
	}

	response.JSON(w, http.StatusOK, p.ToResponse())
}

// ListByMonth handles GET /payments?month=YYYY-MM
// @Summary      List a month's payments
// @Tags         payments
// @Produce      json
// @Param        month query string true "Payment month (YYYY-MM)"
// @Param        page query int false "Page number" default(1)
// @Param        per_page query int false "Items per page" default(20)
// @Success      200 {object} response.APIResponse{data=[]PaymentResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /payments [get]
func (h *Handler) ListByMonth(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		response.BadRequest(w, "month query parameter is required")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	payments, total, err := h.service.ListByMonth(r.Context(), month, page, perPage)
	if err != nil {
		if errors.Is(err, ErrInvalidMonth) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to list payments")
		return
	}

	paymentResponses := make([]*PaymentResponse, len(payments))
	for i, p := range payments {
		paymentResponses[i] = p.ToResponse()
	}

	totalPages := (total + perPage - 1) / perPage
	meta := &response.Meta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}

	response.JSONWithMeta(w, http.StatusOK, paymentResponses, meta)
}

// ListByResident handles GET /payments/resident/{residentId}
// @Summary      List a resident's payment history
// @Description  All of a resident's payment months, ascending
// @Tags         payments
// @Produce      json
// @Param        residentId path int true "Resident ID"
// @Success      200 {object} response.APIResponse{data=[]PaymentResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /payments/resident/{residentId} [get]
func (h *Handler) ListByResident(w http.ResponseWriter, r *http.Request) {
	residentID, err := strconv.ParseInt(chi.URLParam(r, "residentId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid resident ID")
		return
	}

	payments, err := h.service.ListByResident(r.Context(), residentID)
	if err != nil {
		if errors.Is(err, resident.ErrResidentNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to list payments")
		return
	}

	paymentResponses := make([]*PaymentResponse, len(payments))
	for i, p := range payments {
		paymentResponses[i] = p.ToResponse()
	}

	response.JSON(w, http.StatusOK, paymentResponses)
}

// UpdateAmounts handles PUT /payments/{id}/amounts
// @Summary      Edit a payment's amounts
// @Description  Edit due/paid amounts; the change cascades through the resident's future months and may update their base maintenance
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id path int true "Payment ID"
// @Param        request body UpdateAmountsRequest true "New amounts"
// @Success      200 {object} response.APIResponse{data=PaymentResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /payments/{id}/amounts [put]
func (h *Handler) UpdateAmounts(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid payment ID")
		return
	}

	actorID, ok := middleware.GetActorID(r.Context())
	if !ok {
		response.Unauthorized(w, "Acting admin not identified")
		return
	}

	var req UpdateAmountsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	p, err := h.service.UpdateAmounts(r.Context(), id, &req, actorID)
	if err != nil {
		switch {
		case errors.Is(err, ErrPaymentNotFound), errors.Is(err, resident.ErrResidentNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrPaidExceedsDue):
			response.BadRequest(w, err.Error())
		case errors.Is(err, ErrRecalcIncomplete):
			// The edit itself was saved; later months may be stale.
			response.PartialSuccess(w, err.Error())
		default:
			response.InternalError(w, "Failed to update payment")
		}
		return
	}

	response.JSON(w, http.StatusOK, p.ToResponse())
}

// RecordPayment handles POST /payments/{id}/record
// @Summary      Record a payment received
// @Description  Record money received against a month; the new total cascades through future months
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id path int true "Payment ID"
// @Param        request body RecordPaymentRequest true "Payment details"
// @Success      200 {object} response.APIResponse{data=PaymentResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /payments/{id}/record [post]
func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid payment ID")
		return
	}

	actorID, ok := middleware.GetActorID(r.Context())
	if !ok {
		response.Unauthorized(w, "Acting admin not identified")
		return
	}

	var req RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	p, err := h.service.RecordPayment(r.Context(), id, &req, actorID)
	if err != nil {
		switch {
		case errors.Is(err, ErrPaymentNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrPaidExceedsDue), errors.Is(err, ErrInvalidPaymentDate):
			response.BadRequest(w, err.Error())
		case errors.Is(err, ErrRecalcIncomplete):
			response.PartialSuccess(w, err.Error())
		default:
			response.InternalError(w, "Failed to record payment")
		}
		return
	}

	response.JSON(w, http.StatusOK, p.ToResponse())
}

// RefreshOverdue handles POST /payments/refresh-overdue
// @Summary      Reclassify a month against due dates
// @Description  Flag unpaid rows whose due date has passed as OVERDUE
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request body RefreshOverdueRequest true "Month to refresh"
// @Success      200 {object} response.APIResponse{data=RefreshOverdueResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /payments/refresh-overdue [post]
func (h *Handler) RefreshOverdue(w http.ResponseWriter, r *http.Request) {
	var req RefreshOverdueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	updated, err := h.service.RefreshOverdue(r.Context(), req.Month)
	if err != nil {
		if errors.Is(err, ErrInvalidMonth) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to refresh statuses")
		return
	}

	response.JSON(w, http.StatusOK, &RefreshOverdueResponse{Month: req.Month, Updated: updated})
}

// Receipt handles GET /payments/{id}/receipt
// @Summary      Get a payment receipt
// @Description  Receipt payload for a fully paid month
// @Tags         payments
// @Produce      json
// @Param        id path int true "Payment ID"
// @Success      200 {object} response.APIResponse{data=ReceiptResponse}
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /payments/{id}/receipt [get]
func (h *Handler) Receipt(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid payment ID")
		return
	}

	receipt, err := h.service.Receipt(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrPaymentNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		if errors.Is(err, ErrReceiptUnavailable) {
			response.Conflict(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to build receipt")
		return
	}

	response.JSON(w, http.StatusOK, receipt)
}

// ExportCSV handles GET /payments/export.csv
// @Summary      Export payments as CSV
// @Description  CSV of payments for the society's spreadsheet; omit month for all months
// @Tags         payments
// @Produce      text/csv
// @Param        month query string false "Payment month (YYYY-MM)"
// @Success      200 {string} string "CSV payload"
// @Failure      400 {object} response.APIResponse
// @Router       /payments/export.csv [get]
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")

	payments, err := h.service.ListForExport(r.Context(), month)
	if err != nil {
		if errors.Is(err, ErrInvalidMonth) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to export payments")
		return
	}

	rows := make([]export.Row, len(payments))
	for i, p := range payments {
		row := export.Row{
			FlatNumber:   p.FlatNumber,
			ResidentName: p.ResidentName,
			Month:        p.Month,
			AmountDue:    p.AmountDue,
			AmountPaid:   p.AmountPaid,
			Status:       string(p.Status),
			DueDate:      p.DueDate.Format("2006-01-02"),
			Remarks:      p.Remarks,
		}
		if p.PaymentDate != nil {
			row.PaymentDate = p.PaymentDate.Format("2006-01-02")
		}
		if p.PaymentMethod != nil {
			row.PaymentMethod = *p.PaymentMethod
		}
		if p.TransactionRef != nil {
			row.TransactionRef = *p.TransactionRef
		}
		rows[i] = row
	}

	filename := "payments.csv"
	if month != "" {
		filename = "payments-" + month + ".csv"
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := export.Write(w, rows); err != nil {
		// Headers are already out; nothing sensible left to send.
		return
	}
}
