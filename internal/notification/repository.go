package notification

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles notification data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new notification repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new status-change notification
func (r *Repository) Create(ctx context.Context, residentID, paymentID int64, month, oldStatus, newStatus, message string) (*Notification, error) {
	query := `
		INSERT INTO notifications (resident_id, payment_id, month, old_status, new_status, message)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, resident_id, payment_id, month, old_status, new_status, message, is_read, created_at
	`

	n := &Notification{}
	err := r.db.QueryRowContext(ctx, query, residentID, paymentID, month, oldStatus, newStatus, message).Scan(
		&n.ID,
		&n.ResidentID,
		&n.PaymentID,
		&n.Month,
		&n.OldStatus,
		&n.NewStatus,
		&n.Message,
		&n.IsRead,
		&n.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	return n, nil
}

// GetByID retrieves a notification by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Notification, error) {
	query := `
		SELECT id, resident_id, payment_id, month, old_status, new_status, message, is_read, created_at
		FROM notifications
		WHERE id = $1
	`

	n := &Notification{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&n.ID,
		&n.ResidentID,
		&n.PaymentID,
		&n.Month,
		&n.OldStatus,
		&n.NewStatus,
		&n.Message,
		&n.IsRead,
		&n.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}

	return n, nil
}

// ListByResident retrieves a resident's notifications, newest first
func (r *Repository) ListByResident(ctx context.Context, residentID int64, limit, offset int, unreadOnly bool) ([]*Notification, int, error) {
	where := `WHERE resident_id = $1`
	if unreadOnly {
		where += ` AND is_read = FALSE`
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM notifications ` + where
	if err := r.db.QueryRowContext(ctx, countQuery, residentID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	query := `
		SELECT id, resident_id, payment_id, month, old_status, new_status, message, is_read, created_at
		FROM notifications ` + where + `
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, residentID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*Notification
	for rows.Next() {
		n := &Notification{}
		if err := rows.Scan(
			&n.ID,
			&n.ResidentID,
			&n.PaymentID,
			&n.Month,
			&n.OldStatus,
			&n.NewStatus,
			&n.Message,
			&n.IsRead,
			&n.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}

	return notifications, total, nil
}

// MarkAsRead marks a notification as read
func (r *Repository) MarkAsRead(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark notification as read: %w", err)
	}
	return nil
}

// MarkAllAsRead marks every unread notification as read
func (r *Repository) MarkAllAsRead(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `UPDATE notifications SET is_read = TRUE WHERE is_read = FALSE`)
	if err != nil {
		return fmt.Errorf("failed to mark notifications as read: %w", err)
	}
	return nil
}

// GetUnreadCount returns the number of unread notifications for a resident
func (r *Repository) GetUnreadCount(ctx context.Context, residentID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE resident_id = $1 AND is_read = FALSE`, residentID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}
