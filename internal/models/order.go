package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderDraft     OrderStatus = "draft"
	OrderPending   OrderStatus = "pending"
	OrderApproved  OrderStatus = "approved"
	OrderFulfilled OrderStatus = "fulfilled"
	OrderRejected  OrderStatus = "rejected"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderDraft, OrderPending, OrderApproved, OrderFulfilled, OrderRejected:
		return true
	}
	return false
}

func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo reports whether the state machine allows moving to target.
// draft -> pending -> {approved -> fulfilled} | rejected; rejected is reachable
// from both pending and approved. fulfilled and rejected are terminal.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderDraft:
		return target == OrderPending
	case OrderPending:
		return target == OrderApproved || target == OrderRejected
	case OrderApproved:
		return target == OrderFulfilled || target == OrderRejected
	}
	return false
}

// HoldsStock reports whether stock is currently reserved by an order in this
// status. Drafts never reserve; rejection has already released.
func (s OrderStatus) HoldsStock() bool {
	return s == OrderPending || s == OrderApproved || s == OrderFulfilled
}

type Order struct {
	ID          uint        `json:"id" gorm:"primaryKey"`
	OrderNumber string      `json:"order_number" gorm:"unique;not null"`
	StoreID     uint        `json:"store_id" gorm:"index;not null"`
	CreatedBy   uint        `json:"created_by" gorm:"index;not null"`
	Status      OrderStatus `json:"status" gorm:"type:varchar(16);default:'draft'"`

	Items         []OrderItem        `json:"items" gorm:"constraint:OnDelete:CASCADE"`
	StatusHistory []OrderStatusEvent `json:"status_history" gorm:"constraint:OnDelete:CASCADE"`

	SubmittedAt *time.Time     `json:"submitted_at"`
	ApprovedAt  *time.Time     `json:"approved_at"`
	FulfilledAt *time.Time     `json:"fulfilled_at"`
	RejectedAt  *time.Time     `json:"rejected_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

// Total is the order's monetary value: discounted line totals summed, bonus
// units excluded.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].LineTotal())
	}
	return total
}

// OrderStatusEvent is one entry in an order's status history log.
type OrderStatusEvent struct {
	ID        uint        `json:"id" gorm:"primaryKey"`
	OrderID   uint        `json:"order_id" gorm:"index;not null"`
	Status    OrderStatus `json:"status" gorm:"type:varchar(16);not null"`
	ActorID   uint        `json:"actor_id" gorm:"not null"`
	Note      string      `json:"note" gorm:"type:text"`
	CreatedAt time.Time   `json:"created_at"`
}
