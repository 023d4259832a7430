package payment

// GenerateRequest represents the request to generate a month's payment rows
type GenerateRequest struct {
	Month string `json:"month" validate:"required,len=7"` // "YYYY-MM"
}

// UpdateAmountsRequest represents an edit to a payment's amounts.
// Both amounts are absolute values, not deltas.
type UpdateAmountsRequest struct {
	AmountDue  float64 `json:"amount_due" validate:"gte=0"`
	AmountPaid float64 `json:"amount_paid" validate:"gte=0"`
	Remarks    *string `json:"remarks,omitempty" validate:"omitempty,max=500"`
}

// RecordPaymentRequest represents a resident's payment being recorded
// against a month. AmountPaid is the new total paid for the month.
type RecordPaymentRequest struct {
	AmountPaid     float64 `json:"amount_paid" validate:"gt=0"`
	PaymentDate    *string `json:"payment_date,omitempty"` // "YYYY-MM-DD", defaults to today
	PaymentMethod  string  `json:"payment_method" validate:"required,oneof=CASH UPI CHEQUE BANK_TRANSFER"`
	TransactionRef *string `json:"transaction_ref,omitempty" validate:"omitempty,max=100"`
}

// RefreshOverdueRequest represents the request to reclassify a month's
// unpaid rows against their due dates
type RefreshOverdueRequest struct {
	Month string `json:"month" validate:"required,len=7"`
}

// PaymentResponse represents the response for a payment
type PaymentResponse struct {
	ID             int64   `json:"id"`
	ResidentID     int64   `json:"resident_id"`
	ResidentName   string  `json:"resident_name,omitempty"`
	FlatNumber     string  `json:"flat_number,omitempty"`
	Month          string  `json:"month"`
	AmountDue      float64 `json:"amount_due"`
	AmountPaid     float64 `json:"amount_paid"`
	Status         string  `json:"status"`
	DueDate        string  `json:"due_date"`
	PaymentDate    *string `json:"payment_date,omitempty"`
	PaymentMethod  *string `json:"payment_method,omitempty"`
	TransactionRef *string `json:"transaction_ref,omitempty"`
	Remarks        string  `json:"remarks"`
	UpdatedAt      string  `json:"updated_at"`
}

// GenerateResponse reports how many rows a generation run created
type GenerateResponse struct {
	Month   string `json:"month"`
	Created int    `json:"created"`
}

// RefreshOverdueResponse reports how many rows were reclassified
type RefreshOverdueResponse struct {
	Month   string `json:"month"`
	Updated int    `json:"updated"`
}

// ReceiptResponse is the printable receipt payload for a paid month
type ReceiptResponse struct {
	ReceiptNumber   string  `json:"receipt_number"`
	ResidentName    string  `json:"resident_name"`
	FlatNumber      string  `json:"flat_number"`
	Month           string  `json:"month"`
	AmountPaid      float64 `json:"amount_paid"`
	AmountFormatted string  `json:"amount_formatted"` // "₹3,000.00"
	PaymentDate     *string `json:"payment_date,omitempty"`
	PaymentMethod   *string `json:"payment_method,omitempty"`
	TransactionRef  *string `json:"transaction_ref,omitempty"`
	Remarks         string  `json:"remarks"`
	GeneratedAt     string  `json:"generated_at"`
}

// ToResponse converts a Payment model to a PaymentResponse DTO
func (p *Payment) ToResponse() *PaymentResponse {
	resp := &PaymentResponse{
		ID:             p.ID,
		ResidentID:     p.ResidentID,
		ResidentName:   p.ResidentName,
		FlatNumber:     p.FlatNumber,
		Month:          p.Month,
		AmountDue:      p.AmountDue,
		AmountPaid:     p.AmountPaid,
		Status:         string(p.Status),
		DueDate:        p.DueDate.Format("2006-01-02"),
		PaymentMethod:  p.PaymentMethod,
		TransactionRef: p.TransactionRef,
		Remarks:        p.Remarks,
		UpdatedAt:      p.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if p.PaymentDate != nil {
		d := p.PaymentDate.Format("2006-01-02")
		resp.PaymentDate = &d
	}
	return resp
}
