package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/heartlink/heartlink/pkg/db/pagination"
	"gorm.io/gorm"
)

type CreateOrphanageRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
}

type ListOrphanageRequest struct {
	Search    string
	Verified  *bool
	PageToken string
	PageSize  int32
}

type ListOrphanageResponse struct {
	pagination.PageInfo
	Orphanages []Orphanage `json:"orphanages"`
}

// ListFilter narrows orphanage listings.
type ListFilter struct {
	Search   string
	Verified *bool
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, orphanage *Orphanage) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Orphanage, error)
	FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*Orphanage, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter, page pagination.Pagination) ([]*Orphanage, error)
}

type Service interface {
	Create(ctx context.Context, req CreateOrphanageRequest) (Orphanage, error)
	List(ctx context.Context, req ListOrphanageRequest) (ListOrphanageResponse, error)
	GetByID(ctx context.Context, id string) (Orphanage, error)
	GetBySlug(ctx context.Context, slug string) (Orphanage, error)
}

var (
	ErrInvalidName = errors.New("invalid_orphanage_name")
	ErrInvalidID   = errors.New("invalid_orphanage_id")
	ErrNotFound    = errors.New("orphanage_not_found")
	ErrSlugExists  = errors.New("orphanage_slug_exists")
)
