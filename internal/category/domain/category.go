// Package domain contains the donation category model.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Category labels donations and needs (food, clothing, education, ...).
// The set is operator-managed and small enough to list unpaginated.
type Category struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"type:text;not null;uniqueIndex" json:"name"`
	Description string       `gorm:"type:text;not null;default:''" json:"description,omitempty"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Category) TableName() string { return "categories" }

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, category *Category) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Category, error)
	FindByName(ctx context.Context, db *gorm.DB, name string) (*Category, error)
	List(ctx context.Context, db *gorm.DB) ([]Category, error)
}

type Service interface {
	List(ctx context.Context) ([]Category, error)
	GetByID(ctx context.Context, id string) (Category, error)
	// ResolveIDByName matches case-insensitively and returns nil when no
	// category carries the name.
	ResolveIDByName(ctx context.Context, name string) (*snowflake.ID, error)
}

var (
	ErrInvalidID = errors.New("invalid_category_id")
	ErrNotFound  = errors.New("category_not_found")
)
