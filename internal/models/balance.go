package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type DueEntryType string

const (
	DueManual  DueEntryType = "manual"
	DueByOrder DueEntryType = "by_order"
)

// DueEntry is one row of a store's unified due history. Manual dues are read
// straight from the dues collection; by_order entries are synthesized at read
// time from fulfilled orders and never persisted.
type DueEntry struct {
	Type        DueEntryType    `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	OrderNumber string          `json:"order_number,omitempty"`
	RecordedAt  time.Time       `json:"recorded_at"`
}

// Balance is a store's (or an officer's rolled-up) financial position. It is
// recomputed from the order, payment, and due collections on every read and is
// never stored, so it cannot drift from the records it is derived from.
type Balance struct {
	Owed       decimal.Decimal `json:"owed"`
	Paid       decimal.Decimal `json:"paid"`
	Net        decimal.Decimal `json:"net"`
	DueHistory []DueEntry      `json:"due_history"`
}
