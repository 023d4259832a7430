package payment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/narenkm/societyhub/internal/payment/recalc"
)

// Repository handles payment data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new payment repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const paymentColumns = `p.id, p.resident_id, p.month, p.amount_due, p.amount_paid, p.status,
	p.due_date, p.payment_date, p.payment_method, p.transaction_ref, p.remarks, p.updated_at`

const paymentJoin = `FROM payments p JOIN residents r ON p.resident_id = r.id`

func scanPayment(row interface{ Scan(...interface{}) error }, withResident bool) (*Payment, error) {
	p := &Payment{}
	dest := []interface{}{
		&p.ID,
		&p.ResidentID,
		&p.Month,
		&p.AmountDue,
		&p.AmountPaid,
		&p.Status,
		&p.DueDate,
		&p.PaymentDate,
		&p.PaymentMethod,
		&p.TransactionRef,
		&p.Remarks,
		&p.UpdatedAt,
	}
	if withResident {
		dest = append(dest, &p.ResidentName, &p.FlatNumber)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return p, nil
}

// Create inserts a new payment row
func (r *Repository) Create(ctx context.Context, p *Payment) (*Payment, error) {
	query := `
		INSERT INTO payments (resident_id, month, amount_due, amount_paid, status, due_date, remarks)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + bareColumns()

	created, err := scanPayment(r.db.QueryRowContext(ctx, query,
		p.ResidentID,
		p.Month,
		p.AmountDue,
		p.AmountPaid,
		p.Status,
		p.DueDate,
		p.Remarks,
	), false)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	return created, nil
}

// GetByID retrieves a payment with its resident's name and flat
func (r *Repository) GetByID(ctx context.Context, id int64) (*Payment, error) {
	query := `SELECT ` + paymentColumns + `, r.name, r.flat_number ` + paymentJoin + ` WHERE p.id = $1`

	p, err := scanPayment(r.db.QueryRowContext(ctx, query, id), true)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return p, nil
}

// GetByResidentMonth retrieves the payment for one resident and month
func (r *Repository) GetByResidentMonth(ctx context.Context, residentID int64, month string) (*Payment, error) {
	query := `SELECT ` + paymentColumns + `, r.name, r.flat_number ` + paymentJoin + `
		WHERE p.resident_id = $1 AND p.month = $2`

	p, err := scanPayment(r.db.QueryRowContext(ctx, query, residentID, month), true)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get payment for month: %w", err)
	}

	return p, nil
}

// ListAfterMonth retrieves a resident's payments with month strictly greater
// than the given one, ascending. The "YYYY-MM" format makes the string
// comparison a calendar comparison.
func (r *Repository) ListAfterMonth(ctx context.Context, residentID int64, month string) ([]*Payment, error) {
	query := `SELECT ` + paymentColumns + `, r.name, r.flat_number ` + paymentJoin + `
		WHERE p.resident_id = $1 AND p.month > $2
		ORDER BY p.month ASC`

	return r.queryPayments(ctx, query, residentID, month)
}

// ListByResident retrieves all of a resident's payments, ascending by month
func (r *Repository) ListByResident(ctx context.Context, residentID int64) ([]*Payment, error) {
	query := `SELECT ` + paymentColumns + `, r.name, r.flat_number ` + paymentJoin + `
		WHERE p.resident_id = $1
		ORDER BY p.month ASC`

	return r.queryPayments(ctx, query, residentID)
}

// ListByMonth retrieves a month's payments across residents, paginated
func (r *Repository) ListByMonth(ctx context.Context, month string, limit, offset int) ([]*Payment, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM payments WHERE month = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, month).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payments: %w", err)
	}

	query := `SELECT ` + paymentColumns + `, r.name, r.flat_number ` + paymentJoin + `
		WHERE p.month = $1
		ORDER BY r.flat_number
		LIMIT $2 OFFSET $3`

	payments, err := r.queryPayments(ctx, query, month, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	return payments, total, nil
}

// ListForExport retrieves payments for the CSV export, all months when
// month is empty
func (r *Repository) ListForExport(ctx context.Context, month string) ([]*Payment, error) {
	query := `SELECT ` + paymentColumns + `, r.name, r.flat_number ` + paymentJoin + `
		WHERE ($1 = '' OR p.month = $1)
		ORDER BY p.month, r.flat_number`

	return r.queryPayments(ctx, query, month)
}

func (r *Repository) queryPayments(ctx context.Context, query string, args ...interface{}) ([]*Payment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []*Payment
	for rows.Next() {
		p, err := scanPayment(rows, true)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}

	return payments, nil
}

// UpdateAmounts persists an edited payment's amounts, status and remarks
func (r *Repository) UpdateAmounts(ctx context.Context, id int64, amountDue, amountPaid float64, status recalc.Status, remarks string) (*Payment, error) {
	query := `
		UPDATE payments
		SET amount_due = $2, amount_paid = $3, status = $4, remarks = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + bareColumns()

	p, err := scanPayment(r.db.QueryRowContext(ctx, query, id, amountDue, amountPaid, status, remarks), false)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update payment amounts: %w", err)
	}

	return p, nil
}

// UpdateRecalc persists a recalculated amount due, remarks and status.
// The paid amount is untouched: recalculation never changes what a
// resident actually paid.
func (r *Repository) UpdateRecalc(ctx context.Context, id int64, amountDue float64, status recalc.Status, remarks string) error {
	query := `
		UPDATE payments
		SET amount_due = $2, status = $3, remarks = $4, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, amountDue, status, remarks)
	if err != nil {
		return fmt.Errorf("failed to save recalculated payment: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("payment %d not found", id)
	}

	return nil
}

// RecordPayment persists a received payment against a month
func (r *Repository) RecordPayment(ctx context.Context, id int64, amountPaid float64, status recalc.Status, paymentDate time.Time, method string, transactionRef *string) (*Payment, error) {
	query := `
		UPDATE payments
		SET amount_paid = $2, status = $3, payment_date = $4, payment_method = $5, transaction_ref = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + bareColumns()

	p, err := scanPayment(r.db.QueryRowContext(ctx, query, id, amountPaid, status, paymentDate, method, transactionRef), false)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	return p, nil
}

// UpdateStatus persists a reclassified status
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status recalc.Status) error {
	_, err := r.db.ExecContext(ctx, `UPDATE payments SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}
	return nil
}

// bareColumns is the RETURNING list for statements without the resident join
func bareColumns() string {
	return `id, resident_id, month, amount_due, amount_paid, status,
	due_date, payment_date, payment_method, transaction_ref, remarks, updated_at`
}
