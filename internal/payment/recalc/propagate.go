package recalc

import (
	"context"
	"fmt"
	"log"
	"math"
)

// PropagateMaintenanceChange handles an edit whose change in amount due is
// large enough to mean the resident's standing monthly charge itself changed.
//
// The base implied by the edit is the new amount due minus whatever
// carry-forward applied to the edited month. If that base moved by at least
// MaintenanceChangeThreshold, the resident's stored base maintenance is
// updated, the change is audited, and every month after the edited one is
// rewritten using the new base plus its own carry-forward.
//
// This pass runs after Cascade when both fire for one edit, so its amounts
// are authoritative for future months. Unlike Cascade it only upgrades
// statuses: a row flips to PAID or PARTIAL when its payments cover the new
// amount, but a row is never pushed back to PENDING by a raised charge.
//
// Returns whether the base change fired.
func (e *Engine) PropagateMaintenanceChange(ctx context.Context, edited *PaymentRecord, oldAmountDue, newAmountDue float64, actorID int64) (bool, error) {
	carry, err := e.CarryForward(ctx, edited.ResidentID, edited.Month)
	if err != nil {
		return false, err
	}

	oldBase := round2(oldAmountDue - carry)
	newBase := round2(newAmountDue - carry)
	if newBase <= 0 || math.Abs(newBase-oldBase) < MaintenanceChangeThreshold {
		return false, nil
	}

	if err := e.residents.SaveBaseMaintenance(ctx, edited.ResidentID, newBase); err != nil {
		return false, fmt.Errorf("failed to update base maintenance for resident %d: %w", edited.ResidentID, err)
	}

	if e.audit != nil {
		change := BaseChange{
			ResidentID:   edited.ResidentID,
			OldBase:      oldBase,
			NewBase:      newBase,
			TriggerMonth: edited.Month,
			ActorID:      actorID,
		}
		if err := e.audit.RecordBaseChange(ctx, change); err != nil {
			log.Printf("audit record failed for resident %d base change: %v", edited.ResidentID, err)
		}
	}

	future, err := e.payments.ListAfterMonth(ctx, edited.ResidentID, edited.Month)
	if err != nil {
		return true, fmt.Errorf("failed to list payments after %s: %w", edited.Month, err)
	}

	for _, p := range future {
		monthCarry, err := e.CarryForward(ctx, p.ResidentID, p.Month)
		if err != nil {
			return true, fmt.Errorf("recalculation stopped at %s: %w", p.Month, err)
		}

		p.AmountDue = round2(newBase + monthCarry)
		p.Remarks = Remarks(newBase, monthCarry)

		oldStatus := p.Status
		switch {
		case p.AmountPaid >= p.AmountDue:
			p.Status = StatusPaid
		case p.AmountPaid > 0:
			p.Status = StatusPartial
		}
		// A row with nothing paid keeps its current status here; this
		// pass never resets a month to PENDING.

		if err := e.payments.SaveAmounts(ctx, p); err != nil {
			return true, fmt.Errorf("recalculation stopped at %s: %w", p.Month, err)
		}
		e.notifyStatusChange(ctx, p, oldStatus)
	}

	return true, nil
}
