package recalc

// Status represents the settlement state of a monthly maintenance payment
type Status string

const (
	StatusPending Status = "PENDING"
	StatusPartial Status = "PARTIAL"
	StatusPaid    Status = "PAID"
	StatusOverdue Status = "OVERDUE"
)

// Classify derives a payment status from its amounts alone.
// Used on row creation and plain amount edits, where the due date is
// not consulted.
func Classify(amountDue, amountPaid float64) Status {
	switch {
	case amountPaid >= amountDue:
		return StatusPaid
	case amountPaid > 0:
		return StatusPartial
	default:
		return StatusPending
	}
}

// ClassifyByDate derives a payment status taking the due date into account.
// duePassed reports whether the record's due date is already behind us;
// an unpaid record past its due date is OVERDUE rather than PENDING.
func ClassifyByDate(amountDue, amountPaid float64, duePassed bool) Status {
	switch {
	case amountPaid >= amountDue:
		return StatusPaid
	case amountPaid > 0:
		return StatusPartial
	case duePassed:
		return StatusOverdue
	default:
		return StatusPending
	}
}
