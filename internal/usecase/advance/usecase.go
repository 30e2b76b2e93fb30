package advance

import (
	"context"
	"errors"
	"time"

	domain "creator-advance-service/internal/domain/advance"
	"creator-advance-service/pkg/paging"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Usecase struct {
	repo  domain.Repository
	terms domain.Terms
	calc  domain.Calculator
	now   func() time.Time
}

func NewUsecase(r domain.Repository, terms domain.Terms) *Usecase {
	return &Usecase{
		repo:  r,
		terms: terms,
		calc:  domain.NewCalculator(terms),
		now:   time.Now,
	}
}

// Create persists a new pending request unless the creator already has
// one. The HasPending read is a fast path only; under concurrent
// creates the unique index decides, surfacing gorm.ErrDuplicatedKey
// which maps to the same business-rule failure. Nothing is persisted
// on any failure path.
func (u *Usecase) Create(ctx context.Context, in CreateAdvanceInput) (*AdvanceDTO, error) {
	pending, err := u.repo.HasPending(ctx, in.CreatorID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, domain.BusinessRule("creator already has a pending request")
	}

	a, err := domain.New(in.CreatorID, in.RequestedAmount, u.now().UTC(), u.terms)
	if err != nil {
		return nil, err
	}

	if err := u.repo.Create(ctx, a); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.BusinessRule("creator already has a pending request")
		}
		return nil, err
	}
	return toDTO(a), nil
}

// GetByCreator returns one page of the creator's requests, most recent
// first. A page number past the end yields an empty page with totals
// intact.
func (u *Usecase) GetByCreator(ctx context.Context, in ListAdvancesInput) (*paging.Page[AdvanceDTO], error) {
	if in.CreatorID == uuid.Nil {
		return nil, domain.InvalidArgument("creator_id", "creator id is required")
	}
	if in.PageNumber < 1 {
		return nil, domain.InvalidArgument("page_number", "page number must be at least 1")
	}
	if in.PageSize < 1 {
		return nil, domain.InvalidArgument("page_size", "page size must be at least 1")
	}

	skip := (in.PageNumber - 1) * in.PageSize
	items, total, err := u.repo.GetPageByCreator(ctx, in.CreatorID, skip, in.PageSize)
	if err != nil {
		return nil, err
	}

	dtos := make([]AdvanceDTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, *toDTO(&items[i]))
	}
	return paging.NewPage(dtos, total, in.PageNumber, in.PageSize), nil
}

func (u *Usecase) Approve(ctx context.Context, advanceID uuid.UUID) (*AdvanceDTO, error) {
	return u.transition(ctx, advanceID, (*domain.AdvanceRequest).Approve)
}

func (u *Usecase) Reject(ctx context.Context, advanceID uuid.UUID) (*AdvanceDTO, error) {
	return u.transition(ctx, advanceID, (*domain.AdvanceRequest).Reject)
}

func (u *Usecase) transition(ctx context.Context, advanceID uuid.UUID, apply func(*domain.AdvanceRequest, time.Time) error) (*AdvanceDTO, error) {
	a, err := u.repo.GetByAdvanceID(ctx, advanceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound("request not found")
		}
		return nil, err
	}

	if err := apply(a, u.now().UTC()); err != nil {
		return nil, err
	}
	// Update is guarded on the stored row still being pending, so the
	// loser of a concurrent approve/reject gets InvalidState here.
	if err := u.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return toDTO(a), nil
}

// Simulate previews the fee breakdown without creating anything.
func (u *Usecase) Simulate(amount decimal.Decimal) (*SimulationDTO, error) {
	if !amount.GreaterThan(u.terms.MinimumAmount) {
		return nil, domain.InvalidArgument("amount",
			"amount must be greater than "+domain.FormatAmount(u.terms.MinimumAmount))
	}
	fee, net := u.calc.Quote(amount)
	return &SimulationDTO{
		RequestedAmount: amount,
		Fee:             fee,
		NetAmount:       net,
		FeeRate:         u.calc.Rate(),
	}, nil
}

func toDTO(a *domain.AdvanceRequest) *AdvanceDTO {
	return &AdvanceDTO{
		ID:              a.AdvanceID,
		CreatorID:       a.CreatorID,
		RequestedAmount: a.RequestedAmount,
		Fee:             a.Fee,
		NetAmount:       a.NetAmount,
		Status:          string(a.Status),
		RequestDate:     a.RequestDate,
		ProcessedDate:   a.ProcessedDate,
	}
}
