package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/heartlink/heartlink/internal/need/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, need *domain.Need) error {
	return db.WithContext(ctx).Create(need).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Need, error) {
	var need domain.Need
	err := db.WithContext(ctx).First(&need, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &need, nil
}

func (r *repo) FindByIDForUpdate(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Need, error) {
	stmt := db.WithContext(ctx)
	// sqlite has no row locks; the database-level write lock covers it.
	if db.Dialector.Name() != "sqlite" {
		stmt = stmt.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var need domain.Need
	err := stmt.First(&need, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &need, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, need *domain.Need) error {
	return db.WithContext(ctx).Save(need).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(`DELETE FROM needs WHERE id = ?`, id).Error
}

func (r *repo) ListByOrphanage(ctx context.Context, db *gorm.DB, filter domain.ListFilter) ([]domain.Need, error) {
	stmt := db.WithContext(ctx).Model(&domain.Need{})
	if filter.OrphanageID != 0 {
		stmt = stmt.Where("orphanage_id = ?", filter.OrphanageID)
	}
	if filter.Status != nil {
		stmt = stmt.Where("status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		stmt = stmt.Where("priority = ?", *filter.Priority)
	}

	var needs []domain.Need
	err := stmt.
		Order("created_at desc, id desc").
		Find(&needs).Error
	if err != nil {
		return nil, err
	}
	return needs, nil
}
