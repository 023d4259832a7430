package notification

import "time"

// Notification records a payment's stored status changing value, whether
// from a direct edit or a recalculation.
type Notification struct {
	ID         int64     `json:"id"`
	ResidentID int64     `json:"resident_id"`
	PaymentID  int64     `json:"payment_id"`
	Month      string    `json:"month"`
	OldStatus  string    `json:"old_status"`
	NewStatus  string    `json:"new_status"`
	Message    string    `json:"message"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}
