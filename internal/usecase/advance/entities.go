package advance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateAdvanceInput struct {
	CreatorID       uuid.UUID
	RequestedAmount decimal.Decimal
}

type ListAdvancesInput struct {
	CreatorID  uuid.UUID
	PageNumber int
	PageSize   int
}

type AdvanceDTO struct {
	ID              uuid.UUID       `json:"id"`
	CreatorID       uuid.UUID       `json:"creator_id"`
	RequestedAmount decimal.Decimal `json:"requested_amount"`
	Fee             decimal.Decimal `json:"fee"`
	NetAmount       decimal.Decimal `json:"net_amount"`
	Status          string          `json:"status"`
	RequestDate     time.Time       `json:"request_date"`
	ProcessedDate   *time.Time      `json:"processed_date,omitempty"`
}

type SimulationDTO struct {
	RequestedAmount decimal.Decimal `json:"requested_amount"`
	Fee             decimal.Decimal `json:"fee"`
	NetAmount       decimal.Decimal `json:"net_amount"`
	FeeRate         decimal.Decimal `json:"fee_rate"`
}
