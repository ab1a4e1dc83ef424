package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/heartlink/heartlink/internal/orphanage/domain"
	"github.com/heartlink/heartlink/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, orphanage *domain.Orphanage) error {
	return db.WithContext(ctx).Create(orphanage).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Orphanage, error) {
	var orphanage domain.Orphanage
	err := db.WithContext(ctx).First(&orphanage, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &orphanage, nil
}

func (r *repo) FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*domain.Orphanage, error) {
	var orphanage domain.Orphanage
	err := db.WithContext(ctx).First(&orphanage, "slug = ?", strings.TrimSpace(slug)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &orphanage, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter, page pagination.Pagination) ([]*domain.Orphanage, error) {
	stmt := db.WithContext(ctx).Model(&domain.Orphanage{})

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		stmt = stmt.Where("lower(name) LIKE ? OR lower(city) LIKE ?", pattern, pattern)
	}
	if filter.Verified != nil {
		stmt = stmt.Where("is_verified = ?", *filter.Verified)
	}

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

	var orphanages []*domain.Orphanage
	err := stmt.
		Order("created_at desc, id desc").
		Find(&orphanages).Error
	if err != nil {
		return nil, err
	}
	return orphanages, nil
}
