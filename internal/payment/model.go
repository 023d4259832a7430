package payment

import (
	"time"

	"github.com/narenkm/societyhub/internal/payment/recalc"
)

// Payment represents one resident's maintenance charge for one calendar month.
// At most one record exists per (resident, month); the month string sorts in
// calendar order.
type Payment struct {
	ID             int64         `json:"id"`
	ResidentID     int64         `json:"resident_id"`
	Month          string        `json:"month"` // "YYYY-MM"
	AmountDue      float64       `json:"amount_due"`
	AmountPaid     float64       `json:"amount_paid"`
	Status         recalc.Status `json:"status"`
	DueDate        time.Time     `json:"due_date"`
	PaymentDate    *time.Time    `json:"payment_date,omitempty"`
	PaymentMethod  *string       `json:"payment_method,omitempty"`
	TransactionRef *string       `json:"transaction_ref,omitempty"`
	Remarks        string        `json:"remarks"`
	UpdatedAt      time.Time     `json:"updated_at"`

	// Populated via JOIN
	ResidentName string `json:"resident_name,omitempty"`
	FlatNumber   string `json:"flat_number,omitempty"`
}

// toRecord projects the payment onto the recalculation engine's view
func (p *Payment) toRecord() *recalc.PaymentRecord {
	return &recalc.PaymentRecord{
		ID:         p.ID,
		ResidentID: p.ResidentID,
		Month:      p.Month,
		AmountDue:  p.AmountDue,
		AmountPaid: p.AmountPaid,
		Status:     p.Status,
		Remarks:    p.Remarks,
	}
}
