package notification

import (
	"context"
	"errors"
	"fmt"

	"github.com/narenkm/societyhub/internal/payment/recalc"
)

// Common errors
var (
	ErrNotificationNotFound = errors.New("notification not found")
)

// Service handles the status-change notification feed
type Service struct {
	repo *Repository
}

// NewService creates a new notification service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// StatusChanged records a payment's status change. Implements the
// recalculation engine's StatusNotifier.
func (s *Service) StatusChanged(ctx context.Context, p *recalc.PaymentRecord, oldStatus recalc.Status) error {
	message := fmt.Sprintf("Payment for %s moved from %s to %s (due ₹%s, paid ₹%s)",
		p.Month, oldStatus, p.Status, recalc.FormatAmount(p.AmountDue), recalc.FormatAmount(p.AmountPaid))
	_, err := s.repo.Create(ctx, p.ResidentID, p.ID, p.Month, string(oldStatus), string(p.Status), message)
	return err
}

// ListByResident retrieves a resident's notifications
func (s *Service) ListByResident(ctx context.Context, residentID int64, page, perPage int, unreadOnly bool) ([]*Notification, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByResident(ctx, residentID, perPage, offset, unreadOnly)
}

// MarkAsRead marks a notification as read
func (s *Service) MarkAsRead(ctx context.Context, id int64) error {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if n == nil {
		return ErrNotificationNotFound
	}

	return s.repo.MarkAsRead(ctx, id)
}

// MarkAllAsRead marks every unread notification as read
func (s *Service) MarkAllAsRead(ctx context.Context) error {
	return s.repo.MarkAllAsRead(ctx)
}

// GetUnreadCount returns the number of unread notifications for a resident
func (s *Service) GetUnreadCount(ctx context.Context, residentID int64) (int, error) {
	return s.repo.GetUnreadCount(ctx, residentID)
}
