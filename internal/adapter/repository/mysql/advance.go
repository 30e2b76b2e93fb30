package mysql

import (
	"context"

	domain "creator-advance-service/internal/domain/advance"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdvanceRepository struct{ db *gorm.DB }

func NewAdvanceRepository(db *gorm.DB) *AdvanceRepository { return &AdvanceRepository{db: db} }

// Create inserts the request. A second pending row for the same
// creator trips ux_advances_creator_pending and comes back as
// gorm.ErrDuplicatedKey (the DB requires TranslateError).
func (r *AdvanceRepository) Create(ctx context.Context, a *domain.AdvanceRequest) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AdvanceRepository) GetByAdvanceID(ctx context.Context, advanceID uuid.UUID) (*domain.AdvanceRequest, error) {
	var out domain.AdvanceRequest
	res := r.db.WithContext(ctx).Where("advance_id = ?", advanceID).First(&out)
	if res.Error != nil {
		return nil, res.Error
	}
	return &out, nil
}

func (r *AdvanceRepository) GetPageByCreator(ctx context.Context, creatorID uuid.UUID, skip, take int) ([]domain.AdvanceRequest, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&domain.AdvanceRequest{}).
		Where("creator_id = ?", creatorID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var items []domain.AdvanceRequest
	err = r.db.WithContext(ctx).
		Where("creator_id = ?", creatorID).
		Order("request_date DESC, id ASC"). // id ASC keeps ties in insertion order
		Offset(skip).
		Limit(take).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *AdvanceRepository) HasPending(ctx context.Context, creatorID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&domain.AdvanceRequest{}).
		Where("creator_id = ? AND status = ?", creatorID, domain.StatusPending).
		Count(&n).Error
	return n > 0, err
}

// Update applies the state transition only while the stored row is
// still pending. Zero rows affected means another caller processed the
// request first; that loser gets InvalidState instead of silently
// overwriting the terminal status.
func (r *AdvanceRepository) Update(ctx context.Context, a *domain.AdvanceRequest) error {
	res := r.db.WithContext(ctx).
		Model(&domain.AdvanceRequest{}).
		Where("id = ? AND status = ?", a.ID, domain.StatusPending).
		Updates(map[string]any{
			"status":         a.Status,
			"processed_date": a.ProcessedDate,
			"pending_flag":   a.PendingFlag,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.InvalidState("request was already processed")
	}
	return nil
}
