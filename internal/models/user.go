package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Username     string         `json:"username" gorm:"unique;not null"`
	Email        string         `json:"email" gorm:"unique;not null"`
	PhoneNumber  string         `json:"phone_number"`
	PasswordHash string         `json:"-" gorm:"not null"`
	Role         string         `json:"role" gorm:"default:'officer'"` // admin, stock_manager, officer
	IsActive     bool           `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type UserRole string

const (
	RoleAdmin        UserRole = "admin"
	RoleStockManager UserRole = "stock_manager"
	RoleOfficer      UserRole = "officer"
)

// Actor is the authenticated caller of a service operation. Handlers resolve it
// from the request token and pass it explicitly; services never reach into
// request state themselves.
type Actor struct {
	ID   uint     `json:"id"`
	Role UserRole `json:"role"`
}

func (a Actor) Is(roles ...UserRole) bool {
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}
