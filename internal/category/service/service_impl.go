package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/heartlink/heartlink/internal/category/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("category.service"),
		repo: p.Repo,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Category, error) {
	return s.repo.List(ctx, s.db)
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Category, error) {
	categoryID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || categoryID == 0 {
		return domain.Category{}, domain.ErrInvalidID
	}

	category, err := s.repo.FindByID(ctx, s.db, categoryID)
	if err != nil {
		return domain.Category{}, err
	}
	if category == nil {
		return domain.Category{}, domain.ErrNotFound
	}
	return *category, nil
}

func (s *Service) ResolveIDByName(ctx context.Context, name string) (*snowflake.ID, error) {
	if strings.TrimSpace(name) == "" {
		return nil, nil
	}

	category, err := s.repo.FindByName(ctx, s.db, name)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, nil
	}
	return &category.ID, nil
}
