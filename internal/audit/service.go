package audit

import (
	"context"

	"github.com/narenkm/societyhub/internal/payment/recalc"
)

// Service handles the base-maintenance audit trail
type Service struct {
	repo *Repository
}

// NewService creates a new audit service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// RecordBaseChange stores an audit entry for a base-maintenance change.
// Implements the recalculation engine's AuditSink.
func (s *Service) RecordBaseChange(ctx context.Context, change recalc.BaseChange) error {
	_, err := s.repo.Create(ctx, change.ResidentID, change.OldBase, change.NewBase, change.TriggerMonth, change.ActorID)
	return err
}

// ListByResident retrieves a resident's maintenance-change history
func (s *Service) ListByResident(ctx context.Context, residentID int64) ([]*MaintenanceChange, error) {
	return s.repo.ListByResident(ctx, residentID)
}
