package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// ListFilter narrows need listings.
type ListFilter struct {
	OrphanageID snowflake.ID
	Status      *NeedStatus
	Priority    *NeedPriority
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, need *Need) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Need, error)
	FindByIDForUpdate(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Need, error)
	Update(ctx context.Context, db *gorm.DB, need *Need) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error
	ListByOrphanage(ctx context.Context, db *gorm.DB, filter ListFilter) ([]Need, error)
}
