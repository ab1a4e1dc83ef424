// Package domain contains the orphanage profile model.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Orphanage is a receiving organization. Donors browse these profiles and
// address donations to them.
type Orphanage struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"type:text;not null" json:"name"`
	Slug        string       `gorm:"type:text;not null;uniqueIndex" json:"slug"`
	Description string       `gorm:"type:text;not null;default:''" json:"description,omitempty"`
	Address     string       `gorm:"type:text;not null;default:''" json:"address,omitempty"`
	City        string       `gorm:"type:text;not null;default:''" json:"city,omitempty"`
	Phone       string       `gorm:"type:text;not null;default:''" json:"phone,omitempty"`
	Email       string       `gorm:"type:text;not null;default:''" json:"email,omitempty"`
	IsVerified  bool         `gorm:"not null;default:false" json:"is_verified"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Orphanage) TableName() string { return "orphanages" }
