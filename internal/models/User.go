package models

import (
	"time"

	"gorm.io/gorm"
)

// User is a system account. Inactive users cannot authenticate.
type User struct {
	gorm.Model
	Username     string     `json:"username" gorm:"uniqueIndex;not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"not null"`
	Role         Role       `json:"role" gorm:"type:text;not null;default:user"`
	IsActive     bool       `json:"is_active" gorm:"not null;default:true"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedByID  *uint      `json:"created_by,omitempty"`
	CreatedBy    *User      `json:"-" gorm:"foreignKey:CreatedByID"`
}
