package resident

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrResidentNotFound = errors.New("resident not found")
	ErrFlatNumberTaken  = errors.New("flat number already registered")
	ErrHasPayments      = errors.New("resident has payment records and cannot be deleted")
)

// Service handles resident registry business logic
type Service struct {
	repo *Repository
}

// NewService creates a new resident service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a new resident
func (s *Service) Create(ctx context.Context, req *CreateResidentRequest) (*Resident, error) {
	existing, err := s.repo.GetByFlatNumber(ctx, req.FlatNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrFlatNumberTaken
	}

	return s.repo.Create(ctx, req)
}

// GetByID retrieves a resident by their ID
func (s *Service) GetByID(ctx context.Context, id int64) (*Resident, error) {
	resident, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if resident == nil {
		return nil, ErrResidentNotFound
	}
	return resident, nil
}

// List retrieves residents with pagination
func (s *Service) List(ctx context.Context, activeOnly bool, page, perPage int) ([]*Resident, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.List(ctx, activeOnly, perPage, offset)
}

// Update applies changes to a resident's registry entry. A base maintenance
// change here takes effect for months generated afterwards; already-generated
// months are only rewritten by the recalculation engine.
func (s *Service) Update(ctx context.Context, id int64, req *UpdateResidentRequest) (*Resident, error) {
	resident, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if resident == nil {
		return nil, ErrResidentNotFound
	}
	return resident, nil
}

// SetActive activates or deactivates a resident. Deactivated residents stop
// getting monthly payment rows generated; their history stays intact.
func (s *Service) SetActive(ctx context.Context, id int64, active bool) (*Resident, error) {
	resident, err := s.repo.SetActive(ctx, id, active)
	if err != nil {
		return nil, err
	}
	if resident == nil {
		return nil, ErrResidentNotFound
	}
	return resident, nil
}

// Delete removes a resident, refused while payment rows reference them
func (s *Service) Delete(ctx context.Context, id int64) error {
	resident, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if resident == nil {
		return ErrResidentNotFound
	}

	count, err := s.repo.CountPayments(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrHasPayments
	}

	return s.repo.Delete(ctx, id)
}
