package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/heartlink/heartlink/pkg/db/pagination"
	"gorm.io/gorm"
)

// ListFilter narrows donation listings.
type ListFilter struct {
	DonorID     snowflake.ID
	OrphanageID snowflake.ID
	Status      *DonationStatus
	Type        *DonationType
	NeedID      *snowflake.ID
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, donation *Donation) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Donation, error)
	FindByIDForUpdate(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Donation, error)
	Update(ctx context.Context, db *gorm.DB, donation *Donation) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	List(ctx context.Context, db *gorm.DB, filter ListFilter, page pagination.Pagination) ([]*Donation, error)
	ListAll(ctx context.Context, db *gorm.DB, filter ListFilter) ([]Donation, error)
}
