package models

import (
	"time"

	"gorm.io/gorm"
)

type Store struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"not null"`
	Area      string         `json:"area"`
	Phone     string         `json:"phone"`
	OfficerID uint           `json:"officer_id" gorm:"index;not null"` // field officer responsible for the store
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}
