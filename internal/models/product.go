package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	Name      string          `json:"name" gorm:"unique;not null"`
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"type:decimal(20,4);not null"`
	Stock     int             `json:"stock" gorm:"not null;default:0"` // mutated only through guarded conditional updates
	PackSize  int             `json:"pack_size" gorm:"default:1"`
	UnitLabel string          `json:"unit_label" gorm:"size:32"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `json:"deleted_at" gorm:"index"`
}
