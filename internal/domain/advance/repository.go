package advance

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence boundary for advance requests.
//
// Create must surface a violation of the one-pending-per-creator unique
// index as gorm.ErrDuplicatedKey so the usecase can map it to a
// business-rule failure; the usecase's own pending check is only a fast
// path. Update must apply only while the stored row is still pending
// and report InvalidState otherwise, so a concurrent approve/reject
// race has exactly one winner.
type Repository interface {
	Create(ctx context.Context, a *AdvanceRequest) error
	GetByAdvanceID(ctx context.Context, advanceID uuid.UUID) (*AdvanceRequest, error)
	// GetPageByCreator returns the slice ordered by request_date
	// descending (insertion order on ties) plus the total count of all
	// rows for the creator.
	GetPageByCreator(ctx context.Context, creatorID uuid.UUID, skip, take int) ([]AdvanceRequest, int64, error)
	HasPending(ctx context.Context, creatorID uuid.UUID) (bool, error)
	Update(ctx context.Context, a *AdvanceRequest) error
}
