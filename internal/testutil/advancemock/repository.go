package advancemock

import (
	"context"
	"errors"

	domain "creator-advance-service/internal/domain/advance"

	"github.com/google/uuid"
)

var errUnimplemented = errors.New("advancemock: method not implemented")

// Ensure compile-time compliance
var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Fill in the function fields a test needs; unfilled ones fail loudly.
type Repo struct {
	CreateFn           func(ctx context.Context, a *domain.AdvanceRequest) error
	GetByAdvanceIDFn   func(ctx context.Context, advanceID uuid.UUID) (*domain.AdvanceRequest, error)
	GetPageByCreatorFn func(ctx context.Context, creatorID uuid.UUID, skip, take int) ([]domain.AdvanceRequest, int64, error)
	HasPendingFn       func(ctx context.Context, creatorID uuid.UUID) (bool, error)
	UpdateFn           func(ctx context.Context, a *domain.AdvanceRequest) error
}

func (m *Repo) Create(ctx context.Context, a *domain.AdvanceRequest) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return errUnimplemented
}

func (m *Repo) GetByAdvanceID(ctx context.Context, advanceID uuid.UUID) (*domain.AdvanceRequest, error) {
	if m.GetByAdvanceIDFn != nil {
		return m.GetByAdvanceIDFn(ctx, advanceID)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetPageByCreator(ctx context.Context, creatorID uuid.UUID, skip, take int) ([]domain.AdvanceRequest, int64, error) {
	if m.GetPageByCreatorFn != nil {
		return m.GetPageByCreatorFn(ctx, creatorID, skip, take)
	}
	return nil, 0, errUnimplemented
}

func (m *Repo) HasPending(ctx context.Context, creatorID uuid.UUID) (bool, error) {
	if m.HasPendingFn != nil {
		return m.HasPendingFn(ctx, creatorID)
	}
	return false, errUnimplemented
}

func (m *Repo) Update(ctx context.Context, a *domain.AdvanceRequest) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, a)
	}
	return errUnimplemented
}
