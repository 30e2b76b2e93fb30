package advance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// AdvanceRequest is a creator's request to receive part of their future
// earnings now, minus a fee. Amounts and creator are fixed at
// construction; status moves exactly once, from pending to either
// approved or rejected.
type AdvanceRequest struct {
	// Internal numeric PK; also the insertion-order tie-breaker for listings.
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Public identifier.
	AdvanceID uuid.UUID `gorm:"column:advance_id;type:char(36);not null;uniqueIndex:ux_advances_advance_id" json:"id"`
	CreatorID uuid.UUID `gorm:"column:creator_id;type:char(36);not null;index:idx_advances_creator_status,priority:1;uniqueIndex:ux_advances_creator_pending,priority:1" json:"creator_id"`

	RequestedAmount decimal.Decimal `gorm:"column:requested_amount;type:decimal(18,2);not null" json:"requested_amount"`
	Fee             decimal.Decimal `gorm:"column:fee;type:decimal(18,2);not null" json:"fee"`
	NetAmount       decimal.Decimal `gorm:"column:net_amount;type:decimal(18,2);not null" json:"net_amount"`

	Status Status `gorm:"column:status;type:enum('pending','approved','rejected');default:'pending';index:idx_advances_creator_status,priority:2" json:"status"`
	// 1 while pending, NULL once processed. NULLs never collide in a
	// unique index, so ux_advances_creator_pending allows at most one
	// pending row per creator while leaving processed rows unconstrained.
	PendingFlag *uint8 `gorm:"column:pending_flag;uniqueIndex:ux_advances_creator_pending,priority:2" json:"-"`

	RequestDate   time.Time  `gorm:"column:request_date;not null" json:"request_date"`
	ProcessedDate *time.Time `gorm:"column:processed_date" json:"processed_date,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (AdvanceRequest) TableName() string { return "advance_requests" }

// New builds a pending request with a fresh public id and the fee
// breakdown computed from terms. requestDate comes from the caller so
// construction stays deterministic under test.
func New(creatorID uuid.UUID, requestedAmount decimal.Decimal, requestDate time.Time, terms Terms) (*AdvanceRequest, error) {
	if creatorID == uuid.Nil {
		return nil, InvalidArgument("creator_id", "creator id is required")
	}
	if !requestedAmount.GreaterThan(terms.MinimumAmount) {
		return nil, InvalidArgument("requested_amount",
			"requested amount must be greater than "+FormatAmount(terms.MinimumAmount))
	}

	fee, net := NewCalculator(terms).Quote(requestedAmount)
	flag := uint8(1)
	return &AdvanceRequest{
		AdvanceID:       uuid.New(),
		CreatorID:       creatorID,
		RequestedAmount: requestedAmount,
		Fee:             fee,
		NetAmount:       net,
		Status:          StatusPending,
		PendingFlag:     &flag,
		RequestDate:     requestDate.UTC(),
	}, nil
}

// Approve moves a pending request to its approved terminal state.
func (a *AdvanceRequest) Approve(now time.Time) error {
	if a.Status != StatusPending {
		return InvalidState("only pending requests can be approved")
	}
	a.Status = StatusApproved
	a.markProcessed(now)
	return nil
}

// Reject moves a pending request to its rejected terminal state.
func (a *AdvanceRequest) Reject(now time.Time) error {
	if a.Status != StatusPending {
		return InvalidState("only pending requests can be rejected")
	}
	a.Status = StatusRejected
	a.markProcessed(now)
	return nil
}

func (a *AdvanceRequest) markProcessed(now time.Time) {
	t := now.UTC()
	a.ProcessedDate = &t
	a.PendingFlag = nil
}
