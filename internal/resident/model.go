package resident

import "time"

// Occupancy describes how a flat is currently held
type Occupancy string

const (
	OccupancyOwner  Occupancy = "OWNER"
	OccupancyTenant Occupancy = "TENANT"
	OccupancyVacant Occupancy = "VACANT"
)

// Resident represents a member flat in the society's registry
type Resident struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	FlatNumber      string    `json:"flat_number"`
	Phone           *string   `json:"phone,omitempty"`
	Email           *string   `json:"email,omitempty"`
	BaseMaintenance float64   `json:"base_maintenance"` // standing monthly charge before carry-forward
	Occupancy       Occupancy `json:"occupancy"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
}
