package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Due is a manually recorded store obligation, distinct from obligations
// derived from fulfilled orders. Append-only.
type Due struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	StoreID     uint            `json:"store_id" gorm:"index;not null"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(20,4);not null"`
	Description string          `json:"description" gorm:"type:text"`
	RecordedBy  uint            `json:"recorded_by" gorm:"not null"`
	IncurredAt  time.Time       `json:"incurred_at" gorm:"not null"`
	CreatedAt   time.Time       `json:"created_at"`
}
