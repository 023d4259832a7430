package resident

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles resident data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new resident repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const residentColumns = `id, name, flat_number, phone, email, base_maintenance, occupancy, is_active, created_at`

func scanResident(row interface{ Scan(...interface{}) error }) (*Resident, error) {
	r := &Resident{}
	err := row.Scan(
		&r.ID,
		&r.Name,
		&r.FlatNumber,
		&r.Phone,
		&r.Email,
		&r.BaseMaintenance,
		&r.Occupancy,
		&r.IsActive,
		&r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Create inserts a new resident into the database
func (r *Repository) Create(ctx context.Context, req *CreateResidentRequest) (*Resident, error) {
	query := `
		INSERT INTO residents (name, flat_number, phone, email, base_maintenance, occupancy, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		RETURNING ` + residentColumns

	resident, err := scanResident(r.db.QueryRowContext(ctx, query,
		req.Name,
		req.FlatNumber,
		req.Phone,
		req.Email,
		req.BaseMaintenance,
		req.Occupancy,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create resident: %w", err)
	}

	return resident, nil
}

// GetByID retrieves a resident by their ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Resident, error) {
	query := `SELECT ` + residentColumns + ` FROM residents WHERE id = $1`

	resident, err := scanResident(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resident: %w", err)
	}

	return resident, nil
}

// GetByFlatNumber retrieves a resident by their flat number
func (r *Repository) GetByFlatNumber(ctx context.Context, flatNumber string) (*Resident, error) {
	query := `SELECT ` + residentColumns + ` FROM residents WHERE flat_number = $1`

	resident, err := scanResident(r.db.QueryRowContext(ctx, query, flatNumber))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resident by flat: %w", err)
	}

	return resident, nil
}

// List retrieves residents with pagination, optionally only active ones
func (r *Repository) List(ctx context.Context, activeOnly bool, limit, offset int) ([]*Resident, int, error) {
	where := ``
	if activeOnly {
		where = `WHERE is_active = TRUE`
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM residents ` + where
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count residents: %w", err)
	}

	query := `SELECT ` + residentColumns + ` FROM residents ` + where + `
		ORDER BY flat_number
		LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list residents: %w", err)
	}
	defer rows.Close()

	var residents []*Resident
	for rows.Next() {
		resident, err := scanResident(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan resident: %w", err)
		}
		residents = append(residents, resident)
	}

	return residents, total, nil
}

// ListActive retrieves every active resident, ordered by flat number
func (r *Repository) ListActive(ctx context.Context) ([]*Resident, error) {
	query := `SELECT ` + residentColumns + ` FROM residents WHERE is_active = TRUE ORDER BY flat_number`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active residents: %w", err)
	}
	defer rows.Close()

	var residents []*Resident
	for rows.Next() {
		resident, err := scanResident(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resident: %w", err)
		}
		residents = append(residents, resident)
	}

	return residents, nil
}

// Update applies the non-nil fields of the request to a resident
func (r *Repository) Update(ctx context.Context, id int64, req *UpdateResidentRequest) (*Resident, error) {
	query := `
		UPDATE residents
		SET name = COALESCE($2, name),
		    phone = COALESCE($3, phone),
		    email = COALESCE($4, email),
		    base_maintenance = COALESCE($5, base_maintenance),
		    occupancy = COALESCE($6, occupancy)
		WHERE id = $1
		RETURNING ` + residentColumns

	resident, err := scanResident(r.db.QueryRowContext(ctx, query,
		id,
		req.Name,
		req.Phone,
		req.Email,
		req.BaseMaintenance,
		req.Occupancy,
	))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update resident: %w", err)
	}

	return resident, nil
}

// SetActive flips a resident's active flag
func (r *Repository) SetActive(ctx context.Context, id int64, active bool) (*Resident, error) {
	query := `UPDATE residents SET is_active = $2 WHERE id = $1 RETURNING ` + residentColumns

	resident, err := scanResident(r.db.QueryRowContext(ctx, query, id, active))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to set resident active flag: %w", err)
	}

	return resident, nil
}

// UpdateBaseMaintenance sets a resident's standing monthly charge
func (r *Repository) UpdateBaseMaintenance(ctx context.Context, id int64, base float64) error {
	result, err := r.db.ExecContext(ctx, `UPDATE residents SET base_maintenance = $2 WHERE id = $1`, id, base)
	if err != nil {
		return fmt.Errorf("failed to update base maintenance: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("resident %d not found", id)
	}

	return nil
}

// CountPayments returns the number of payment rows referencing a resident
func (r *Repository) CountPayments(ctx context.Context, id int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM payments WHERE resident_id = $1`, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count payments: %w", err)
	}
	return count, nil
}

// Delete removes a resident with no payment history
func (r *Repository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM residents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete resident: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("resident not found")
	}

	return nil
}
