package payment

import (
	"context"

	"github.com/narenkm/societyhub/internal/payment/recalc"
)

// RecalcStore adapts the payment repository to the recalculation engine's
// PaymentStore interface
type RecalcStore struct {
	repo *Repository
}

// NewRecalcStore creates a payment store for the recalculation engine
func NewRecalcStore(repo *Repository) *RecalcStore {
	return &RecalcStore{repo: repo}
}

// GetByResidentMonth returns the engine's view of one month's payment,
// or nil if no record exists
func (s *RecalcStore) GetByResidentMonth(ctx context.Context, residentID int64, month string) (*recalc.PaymentRecord, error) {
	p, err := s.repo.GetByResidentMonth(ctx, residentID, month)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	return p.toRecord(), nil
}

// ListAfterMonth returns the engine's view of a resident's future months,
// ascending
func (s *RecalcStore) ListAfterMonth(ctx context.Context, residentID int64, month string) ([]*recalc.PaymentRecord, error) {
	payments, err := s.repo.ListAfterMonth(ctx, residentID, month)
	if err != nil {
		return nil, err
	}

	records := make([]*recalc.PaymentRecord, len(payments))
	for i, p := range payments {
		records[i] = p.toRecord()
	}
	return records, nil
}

// SaveAmounts persists a recalculated record's amount due, status and remarks
func (s *RecalcStore) SaveAmounts(ctx context.Context, rec *recalc.PaymentRecord) error {
	return s.repo.UpdateRecalc(ctx, rec.ID, rec.AmountDue, rec.Status, rec.Remarks)
}
