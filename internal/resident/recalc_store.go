package resident

import (
	"context"

	"github.com/narenkm/societyhub/internal/payment/recalc"
)

// RecalcStore adapts the resident repository to the recalculation engine's
// ResidentStore interface
type RecalcStore struct {
	repo *Repository
}

// NewRecalcStore creates a resident store for the recalculation engine
func NewRecalcStore(repo *Repository) *RecalcStore {
	return &RecalcStore{repo: repo}
}

// GetByID returns the engine's view of a resident, or nil if unknown
func (s *RecalcStore) GetByID(ctx context.Context, id int64) (*recalc.ResidentRecord, error) {
	resident, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if resident == nil {
		return nil, nil
	}
	return &recalc.ResidentRecord{
		ID:              resident.ID,
		BaseMaintenance: resident.BaseMaintenance,
	}, nil
}

// SaveBaseMaintenance persists a resident's new standing monthly charge
func (s *RecalcStore) SaveBaseMaintenance(ctx context.Context, id int64, base float64) error {
	return s.repo.UpdateBaseMaintenance(ctx, id, base)
}
