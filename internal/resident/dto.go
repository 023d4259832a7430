package resident

// CreateResidentRequest represents the request body for registering a resident
type CreateResidentRequest struct {
	Name            string  `json:"name" validate:"required,min=1,max=100"`
	FlatNumber      string  `json:"flat_number" validate:"required,min=1,max=20"`
	Phone           *string `json:"phone,omitempty" validate:"omitempty,min=7,max=20"`
	Email           *string `json:"email,omitempty" validate:"omitempty,email"`
	BaseMaintenance float64 `json:"base_maintenance" validate:"gte=0"`
	Occupancy       string  `json:"occupancy" validate:"required,oneof=OWNER TENANT VACANT"`
}

// UpdateResidentRequest represents the request body for updating a resident
type UpdateResidentRequest struct {
	Name            *string  `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Phone           *string  `json:"phone,omitempty" validate:"omitempty,min=7,max=20"`
	Email           *string  `json:"email,omitempty" validate:"omitempty,email"`
	BaseMaintenance *float64 `json:"base_maintenance,omitempty" validate:"omitempty,gte=0"`
	Occupancy       *string  `json:"occupancy,omitempty" validate:"omitempty,oneof=OWNER TENANT VACANT"`
}

// ResidentResponse represents the response for a single resident
type ResidentResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	FlatNumber      string  `json:"flat_number"`
	Phone           *string `json:"phone,omitempty"`
	Email           *string `json:"email,omitempty"`
	BaseMaintenance float64 `json:"base_maintenance"`
	Occupancy       string  `json:"occupancy"`
	IsActive        bool    `json:"is_active"`
	CreatedAt       string  `json:"created_at"`
}

// ToResponse converts a Resident model to a ResidentResponse DTO
func (r *Resident) ToResponse() *ResidentResponse {
	return &ResidentResponse{
		ID:              r.ID,
		Name:            r.Name,
		FlatNumber:      r.FlatNumber,
		Phone:           r.Phone,
		Email:           r.Email,
		BaseMaintenance: r.BaseMaintenance,
		Occupancy:       string(r.Occupancy),
		IsActive:        r.IsActive,
		CreatedAt:       r.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
