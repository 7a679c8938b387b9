package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is an append-only record of money received from a store. It never
// updates an order or product.
type Payment struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	Reference  string          `json:"reference" gorm:"unique;not null"`
	StoreID    uint            `json:"store_id" gorm:"index;not null"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:decimal(20,4);not null"`
	Method     string          `json:"method" gorm:"size:32;not null"` // cash, bank_transfer, cheque
	RecordedBy uint            `json:"recorded_by" gorm:"not null"`
	PaidAt     time.Time       `json:"paid_at" gorm:"not null"`
	CreatedAt  time.Time       `json:"created_at"`
}
