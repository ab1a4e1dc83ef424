package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/heartlink/heartlink/internal/donation/domain"
	"github.com/heartlink/heartlink/pkg/db/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, donation *domain.Donation) error {
	return db.WithContext(ctx).Create(donation).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Donation, error) {
	var donation domain.Donation
	err := db.WithContext(ctx).First(&donation, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &donation, nil
}

func (r *repo) FindByIDForUpdate(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Donation, error) {
	stmt := db.WithContext(ctx)
	// sqlite has no row locks; the database-level write lock covers it.
	if db.Dialector.Name() != "sqlite" {
		stmt = stmt.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var donation domain.Donation
	err := stmt.First(&donation, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &donation, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, donation *domain.Donation) error {
	return db.WithContext(ctx).Save(donation).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(`DELETE FROM donations WHERE id = ?`, id).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter, page pagination.Pagination) ([]*domain.Donation, error) {
	stmt := applyFilter(db.WithContext(ctx).Model(&domain.Donation{}), filter)

	if page.PageToken != "" {
		createdAt, id, err := pagination.DecodeTimeCursor(page.PageToken)
		if err != nil {
			return nil, err
		}
		stmt = stmt.Where("created_at < ? OR (created_at = ? AND id < ?)", createdAt, createdAt, id)
	}
	if page.PageSize > 0 {
		stmt = stmt.Limit(page.PageSize + 1)
	}

	var donations []*domain.Donation
	err := stmt.
		Order("created_at desc, id desc").
		Find(&donations).Error
	if err != nil {
		return nil, err
	}
	return donations, nil
}

func (r *repo) ListAll(ctx context.Context, db *gorm.DB, filter domain.ListFilter) ([]domain.Donation, error) {
	var donations []domain.Donation
	err := applyFilter(db.WithContext(ctx).Model(&domain.Donation{}), filter).
		Order("created_at desc, id desc").
		Find(&donations).Error
	if err != nil {
		return nil, err
	}
	return donations, nil
}

func applyFilter(stmt *gorm.DB, filter domain.ListFilter) *gorm.DB {
	if filter.DonorID != 0 {
		stmt = stmt.Where("donor_id = ?", filter.DonorID)
	}
	if filter.OrphanageID != 0 {
		stmt = stmt.Where("orphanage_id = ?", filter.OrphanageID)
	}
	if filter.Status != nil {
		stmt = stmt.Where("status = ?", *filter.Status)
	}
	if filter.Type != nil {
		stmt = stmt.Where("type = ?", *filter.Type)
	}
	if filter.NeedID != nil {
		stmt = stmt.Where("need_id = ?", *filter.NeedID)
	}
	if filter.CreatedFrom != nil {
		stmt = stmt.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		stmt = stmt.Where("created_at <= ?", *filter.CreatedTo)
	}
	return stmt
}
