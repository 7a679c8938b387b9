package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderItem struct {
	ID                 uint            `json:"id" gorm:"primaryKey"`
	OrderID            uint            `json:"order_id" gorm:"index;not null"`
	ProductID          uint            `json:"product_id" gorm:"index;not null"`
	UnitPrice          decimal.Decimal `json:"unit_price" gorm:"type:decimal(20,4);not null"` // snapshot of the product price at draft time
	Quantity           int             `json:"quantity" gorm:"not null"`
	BonusQuantity      int             `json:"bonus_quantity" gorm:"default:0"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage" gorm:"type:decimal(5,2);default:0"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

var hundred = decimal.NewFromInt(100)

// LineTotal is unitPrice * quantity * (1 - discount/100). Bonus units ship free
// and contribute nothing here.
func (i *OrderItem) LineTotal() decimal.Decimal {
	gross := i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
	return gross.Mul(hundred.Sub(i.DiscountPercentage)).Div(hundred)
}

// UnitsNeeded is the stock an order line consumes: paid plus bonus units.
func (i *OrderItem) UnitsNeeded() int {
	return i.Quantity + i.BonusQuantity
}
