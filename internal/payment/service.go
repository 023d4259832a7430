package payment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/narenkm/societyhub/internal/payment/recalc"
	"github.com/narenkm/societyhub/internal/resident"
)

// Common errors
var (
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrPaidExceedsDue     = errors.New("amount paid cannot exceed amount due")
	ErrInvalidMonth       = errors.New("payment month must be in YYYY-MM format")
	ErrInvalidPaymentDate = errors.New("payment date must be in YYYY-MM-DD format")
	ErrReceiptUnavailable = errors.New("receipt is only available for fully paid months")

	// ErrRecalcIncomplete marks a partial success: the edited payment was
	// saved but the forward recalculation stopped before finishing, so
	// later months may be stale.
	ErrRecalcIncomplete = errors.New("recalculation incomplete")
)

// Service handles payment business logic. All edits to amounts flow through
// here so that every change triggers the same classify → cascade → propagate
// sequence; nothing recalculates from inside the persistence layer.
type Service struct {
	repo      *Repository
	residents *resident.Repository
	engine    *recalc.Engine
	notifier  recalc.StatusNotifier
	dueDay    int
}

// NewService creates a new payment service with dependencies injected
func NewService(repo *Repository, residents *resident.Repository, engine *recalc.Engine, notifier recalc.StatusNotifier, dueDay int) *Service {
	return &Service{
		repo:      repo,
		residents: residents,
		engine:    engine,
		notifier:  notifier,
		dueDay:    dueDay,
	}
}

// GenerateForMonth creates the month's payment row for every active resident
// that does not have one yet. Each new row charges the resident's base
// maintenance plus whatever the previous month left unpaid.
func (s *Service) GenerateForMonth(ctx context.Context, month string) (int, error) {
	if _, err := recalc.ParseMonth(month); err != nil {
		return 0, ErrInvalidMonth
	}

	dueDate, err := recalc.DueDate(month, s.dueDay)
	if err != nil {
		return 0, ErrInvalidMonth
	}

	residents, err := s.residents.ListActive(ctx)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, res := range residents {
		existing, err := s.repo.GetByResidentMonth(ctx, res.ID, month)
		if err != nil {
			return created, err
		}
		if existing != nil {
			continue
		}

		carry, err := s.engine.CarryForward(ctx, res.ID, month)
		if err != nil {
			return created, err
		}

		p := &Payment{
			ResidentID: res.ID,
			Month:      month,
			AmountDue:  round2(res.BaseMaintenance + carry),
			AmountPaid: 0,
			Status:     recalc.StatusPending,
			DueDate:    dueDate,
			Remarks:    recalc.Remarks(res.BaseMaintenance, carry),
		}
		if _, err := s.repo.Create(ctx, p); err != nil {
			return created, err
		}
		created++
	}

	return created, nil
}

// GetByID retrieves a payment
func (s *Service) GetByID(ctx context.Context, id int64) (*Payment, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPaymentNotFound
	}
	return p, nil
}

// ListByResident retrieves a resident's payment history, ascending by month
func (s *Service) ListByResident(ctx context.Context, residentID int64) ([]*Payment, error) {
	res, err := s.residents.GetByID(ctx, residentID)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, resident.ErrResidentNotFound
	}
	return s.repo.ListByResident(ctx, residentID)
}

// ListByMonth retrieves a month's payments across residents, paginated
func (s *Service) ListByMonth(ctx context.Context, month string, page, perPage int) ([]*Payment, int, error) {
	if _, err := recalc.ParseMonth(month); err != nil {
		return nil, 0, ErrInvalidMonth
	}
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListByMonth(ctx, month, perPage, offset)
}

// UpdateAmounts is the edit boundary for a payment's amounts. It re-derives
// the status, persists the edit, then cascades the change into the
// resident's future months, and finally — when the due amount moved by at
// least the maintenance-change threshold — lets the engine decide whether
// the resident's base rate itself changed.
//
// actorID identifies the admin making the edit; it ends up in the audit
// trail when a base change fires.
func (s *Service) UpdateAmounts(ctx context.Context, id int64, req *UpdateAmountsRequest, actorID int64) (*Payment, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPaymentNotFound
	}

	if req.AmountPaid > req.AmountDue {
		return nil, ErrPaidExceedsDue
	}

	res, err := s.residents.GetByID(ctx, p.ResidentID)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, resident.ErrResidentNotFound
	}

	oldDue, oldPaid, oldStatus := p.AmountDue, p.AmountPaid, p.Status

	newDue := round2(req.AmountDue)
	newPaid := round2(req.AmountPaid)
	newStatus := recalc.Classify(newDue, newPaid)
	remarks := p.Remarks
	if req.Remarks != nil {
		remarks = *req.Remarks
	}

	updated, err := s.repo.UpdateAmounts(ctx, id, newDue, newPaid, newStatus, remarks)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrPaymentNotFound
	}
	updated.ResidentName, updated.FlatNumber = p.ResidentName, p.FlatNumber

	s.notifyStatusChange(ctx, updated, oldStatus)

	// Cascade first, against the resident's current (old) base rate.
	if newDue != oldDue || newPaid != oldPaid {
		if err := s.engine.Cascade(ctx, p.ResidentID, p.Month); err != nil {
			return updated, fmt.Errorf("%w: %v", ErrRecalcIncomplete, err)
		}
	}

	// A large due change may mean the base rate moved; if the engine agrees
	// it rewrites the future months again with the new base.
	if math.Abs(newDue-oldDue) >= recalc.MaintenanceChangeThreshold {
		if _, err := s.engine.PropagateMaintenanceChange(ctx, updated.toRecord(), oldDue, newDue, actorID); err != nil {
			return updated, fmt.Errorf("%w: %v", ErrRecalcIncomplete, err)
		}
	}

	return updated, nil
}

// RecordPayment records money received against a month. The paid amount is
// the new total for the month, validated against the amount due, and the
// change cascades into future months like any other edit.
func (s *Service) RecordPayment(ctx context.Context, id int64, req *RecordPaymentRequest, actorID int64) (*Payment, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPaymentNotFound
	}

	newPaid := round2(req.AmountPaid)
	if newPaid > p.AmountDue {
		return nil, ErrPaidExceedsDue
	}

	paymentDate := time.Now().UTC()
	if req.PaymentDate != nil {
		paymentDate, err = time.Parse("2006-01-02", *req.PaymentDate)
		if err != nil {
			return nil, ErrInvalidPaymentDate
		}
	}

	oldPaid, oldStatus := p.AmountPaid, p.Status
	newStatus := recalc.Classify(p.AmountDue, newPaid)

	updated, err := s.repo.RecordPayment(ctx, id, newPaid, newStatus, paymentDate, req.PaymentMethod, req.TransactionRef)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrPaymentNotFound
	}
	updated.ResidentName, updated.FlatNumber = p.ResidentName, p.FlatNumber

	s.notifyStatusChange(ctx, updated, oldStatus)

	if newPaid != oldPaid {
		if err := s.engine.Cascade(ctx, p.ResidentID, p.Month); err != nil {
			return updated, fmt.Errorf("%w: %v", ErrRecalcIncomplete, err)
		}
	}

	return updated, nil
}

// RefreshOverdue reclassifies a month's rows against their due dates,
// flagging unpaid rows whose due date has passed as OVERDUE
func (s *Service) RefreshOverdue(ctx context.Context, month string) (int, error) {
	if _, err := recalc.ParseMonth(month); err != nil {
		return 0, ErrInvalidMonth
	}

	payments, err := s.repo.ListForExport(ctx, month)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	updated := 0
	for _, p := range payments {
		duePassed := now.After(p.DueDate)
		newStatus := recalc.ClassifyByDate(p.AmountDue, p.AmountPaid, duePassed)
		if newStatus == p.Status {
			continue
		}

		oldStatus := p.Status
		if err := s.repo.UpdateStatus(ctx, p.ID, newStatus); err != nil {
			return updated, err
		}
		p.Status = newStatus
		s.notifyStatusChange(ctx, p, oldStatus)
		updated++
	}

	return updated, nil
}

// Receipt builds the printable receipt payload for a fully paid month
func (s *Service) Receipt(ctx context.Context, id int64) (*ReceiptResponse, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPaymentNotFound
	}
	if p.Status != recalc.StatusPaid {
		return nil, ErrReceiptUnavailable
	}

	receipt := &ReceiptResponse{
		ReceiptNumber:   uuid.NewString(),
		ResidentName:    p.ResidentName,
		FlatNumber:      p.FlatNumber,
		Month:           p.Month,
		AmountPaid:      p.AmountPaid,
		AmountFormatted: "₹" + recalc.FormatAmount(p.AmountPaid),
		PaymentMethod:   p.PaymentMethod,
		TransactionRef:  p.TransactionRef,
		Remarks:         p.Remarks,
		GeneratedAt:     time.Now().UTC().Format("2006-01-02T15:04:05Z"),
	}
	if p.PaymentDate != nil {
		d := p.PaymentDate.Format("2006-01-02")
		receipt.PaymentDate = &d
	}

	return receipt, nil
}

// ListForExport retrieves payments for the CSV export
func (s *Service) ListForExport(ctx context.Context, month string) ([]*Payment, error) {
	if month != "" {
		if _, err := recalc.ParseMonth(month); err != nil {
			return nil, ErrInvalidMonth
		}
	}
	return s.repo.ListForExport(ctx, month)
}

func (s *Service) notifyStatusChange(ctx context.Context, p *Payment, oldStatus recalc.Status) {
	if s.notifier == nil || p.Status == oldStatus {
		return
	}
	if err := s.notifier.StatusChanged(ctx, p.toRecord(), oldStatus); err != nil {
		log.Printf("status notification failed for payment %d (%s -> %s): %v", p.ID, oldStatus, p.Status, err)
	}
}

// round2 rounds a currency amount to 2 decimal places
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
