package recalc

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
)

// MaintenanceChangeThreshold is the minimum change in a month's amount due
// (in currency units) treated as evidence that the resident's base
// maintenance rate itself changed, rather than a one-off adjustment.
const MaintenanceChangeThreshold = 10.0

// Common errors
var (
	ErrResidentNotFound = errors.New("resident not found")
)

// PaymentRecord is the slice of a payment the engine reads and rewrites
type PaymentRecord struct {
	ID         int64
	ResidentID int64
	Month      string // "YYYY-MM"
	AmountDue  float64
	AmountPaid float64
	Status     Status
	Remarks    string
}

// ResidentRecord is the slice of a resident the engine needs
type ResidentRecord struct {
	ID              int64
	BaseMaintenance float64
}

// BaseChange describes a base-maintenance update for the audit trail
type BaseChange struct {
	ResidentID   int64
	OldBase      float64
	NewBase      float64
	TriggerMonth string
	ActorID      int64
}

// PaymentStore is the payment persistence the engine depends on
type PaymentStore interface {
	// GetByResidentMonth returns the payment for (resident, month), or nil
	// if no record exists for that month
	GetByResidentMonth(ctx context.Context, residentID int64, month string) (*PaymentRecord, error)
	// ListAfterMonth returns the resident's payments with month strictly
	// greater than the given one, ordered ascending by month
	ListAfterMonth(ctx context.Context, residentID int64, month string) ([]*PaymentRecord, error)
	// SaveAmounts persists the record's amount due, remarks and status
	SaveAmounts(ctx context.Context, p *PaymentRecord) error
}

// ResidentStore is the resident persistence the engine depends on
type ResidentStore interface {
	GetByID(ctx context.Context, id int64) (*ResidentRecord, error)
	SaveBaseMaintenance(ctx context.Context, id int64, base float64) error
}

// AuditSink records base-maintenance changes. Failures are logged and
// swallowed: auditing must never abort a recalculation.
type AuditSink interface {
	RecordBaseChange(ctx context.Context, change BaseChange) error
}

// StatusNotifier is told whenever a recalculation changes a payment's
// stored status. Failures are logged and swallowed.
type StatusNotifier interface {
	StatusChanged(ctx context.Context, p *PaymentRecord, oldStatus Status) error
}

// Engine recomputes a resident's future payment months after an edit.
// Each month's amount due embeds the unpaid balance carried from the
// month before it, so an edit to one month invalidates every month
// after it for that resident.
type Engine struct {
	payments  PaymentStore
	residents ResidentStore
	audit     AuditSink
	notifier  StatusNotifier
}

// NewEngine creates a recalculation engine with its collaborators injected.
// audit and notifier may be nil, in which case those events are dropped.
func NewEngine(payments PaymentStore, residents ResidentStore, audit AuditSink, notifier StatusNotifier) *Engine {
	return &Engine{
		payments:  payments,
		residents: residents,
		audit:     audit,
		notifier:  notifier,
	}
}

// CarryForward returns the unpaid balance from the month immediately before
// the given one. A missing previous record means zero: either the resident
// is new or the data has a gap, and earlier arrears are already embedded in
// whatever record does exist. The balance is never negative; an overpayment
// does not become a credit.
func (e *Engine) CarryForward(ctx context.Context, residentID int64, month string) (float64, error) {
	prevMonth, err := PreviousMonth(month)
	if err != nil {
		return 0, err
	}

	prev, err := e.payments.GetByResidentMonth(ctx, residentID, prevMonth)
	if err != nil {
		return 0, fmt.Errorf("failed to look up previous month %s: %w", prevMonth, err)
	}
	if prev == nil {
		return 0, nil
	}

	balance := round2(prev.AmountDue - prev.AmountPaid)
	if balance < 0 {
		return 0, nil
	}
	return balance, nil
}

// Cascade recomputes every payment month after editedMonth for the resident,
// in ascending order. Order matters: each month's carry-forward reads the
// previous month's amounts, which the loop may have just rewritten.
//
// Each month is persisted as its own write with no wrapping transaction; a
// failure leaves earlier months updated and is reported with the month that
// stopped the walk so the caller can surface the partial result.
func (e *Engine) Cascade(ctx context.Context, residentID int64, editedMonth string) error {
	resident, err := e.residents.GetByID(ctx, residentID)
	if err != nil {
		return fmt.Errorf("failed to load resident %d: %w", residentID, err)
	}
	if resident == nil {
		return ErrResidentNotFound
	}

	future, err := e.payments.ListAfterMonth(ctx, residentID, editedMonth)
	if err != nil {
		return fmt.Errorf("failed to list payments after %s: %w", editedMonth, err)
	}

	for _, p := range future {
		carry, err := e.CarryForward(ctx, residentID, p.Month)
		if err != nil {
			return fmt.Errorf("recalculation stopped at %s: %w", p.Month, err)
		}

		newDue := round2(resident.BaseMaintenance + carry)
		if newDue == p.AmountDue {
			// Already consistent, skip the write
			continue
		}

		p.AmountDue = newDue
		p.Remarks = Remarks(resident.BaseMaintenance, carry)
		oldStatus := p.Status
		p.Status = Classify(p.AmountDue, p.AmountPaid)

		if err := e.payments.SaveAmounts(ctx, p); err != nil {
			return fmt.Errorf("recalculation stopped at %s: %w", p.Month, err)
		}
		e.notifyStatusChange(ctx, p, oldStatus)
	}

	return nil
}

func (e *Engine) notifyStatusChange(ctx context.Context, p *PaymentRecord, oldStatus Status) {
	if e.notifier == nil || p.Status == oldStatus {
		return
	}
	if err := e.notifier.StatusChanged(ctx, p, oldStatus); err != nil {
		log.Printf("status notification failed for payment %d (%s -> %s): %v", p.ID, oldStatus, p.Status, err)
	}
}

// round2 rounds a currency amount to 2 decimal places
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
