package ads

import (
	"context"

	"github.com/user/adboard-go/apperror"
)

// AdService holds the business logic for advertisements, including the
// ownership checks on mutation.
type AdService struct {
	repo Repository
}

// NewAdService creates an AdService.
func NewAdService(repo Repository) *AdService {
	return &AdService{repo: repo}
}

// Create stores a new advertisement owned by authorID.
func (s *AdService) Create(ctx context.Context, req CreateRequest, authorID int) (*AdResponse, error) {
	ad, err := s.repo.Create(ctx, req.Title, req.Description, authorID)
	if err != nil {
		return nil, err
	}
	return toResponse(ad), nil
}

// Get returns the public view of an advertisement.
func (s *AdService) Get(ctx context.Context, id int) (*AdResponse, error) {
	ad, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(ad), nil
}

// Update applies a partial update after verifying the caller owns the ad.
func (s *AdService) Update(ctx context.Context, id int, req UpdateRequest, callerID int) (*AdResponse, error) {
	ad, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ad.AuthorID != callerID {
		return nil, apperror.NewForbiddenError("Permission denied", nil)
	}

	updated, err := s.repo.Update(ctx, id, Patch{Title: req.Title, Description: req.Description})
	if err != nil {
		return nil, err
	}
	return toResponse(updated), nil
}

// Delete removes an advertisement after verifying the caller owns it.
func (s *AdService) Delete(ctx context.Context, id int, callerID int) error {
	ad, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if ad.AuthorID != callerID {
		return apperror.NewForbiddenError("Permission denied", nil)
	}
	return s.repo.Delete(ctx, id)
}
