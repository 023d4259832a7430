package audit

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles audit trail persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new audit repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new maintenance-change entry
func (r *Repository) Create(ctx context.Context, residentID int64, oldBase, newBase float64, triggerMonth string, actorID int64) (*MaintenanceChange, error) {
	query := `
		INSERT INTO maintenance_changes (resident_id, old_base, new_base, trigger_month, actor_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, resident_id, old_base, new_base, trigger_month, actor_id, created_at
	`

	entry := &MaintenanceChange{}
	err := r.db.QueryRowContext(ctx, query, residentID, oldBase, newBase, triggerMonth, actorID).Scan(
		&entry.ID,
		&entry.ResidentID,
		&entry.OldBase,
		&entry.NewBase,
		&entry.TriggerMonth,
		&entry.ActorID,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create audit entry: %w", err)
	}

	return entry, nil
}

// ListByResident retrieves a resident's maintenance-change history, newest first
func (r *Repository) ListByResident(ctx context.Context, residentID int64) ([]*MaintenanceChange, error) {
	query := `
		SELECT id, resident_id, old_base, new_base, trigger_month, actor_id, created_at
		FROM maintenance_changes
		WHERE resident_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, residentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []*MaintenanceChange
	for rows.Next() {
		entry := &MaintenanceChange{}
		if err := rows.Scan(
			&entry.ID,
			&entry.ResidentID,
			&entry.OldBase,
			&entry.NewBase,
			&entry.TriggerMonth,
			&entry.ActorID,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
