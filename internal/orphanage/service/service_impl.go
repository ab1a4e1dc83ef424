package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/heartlink/heartlink/internal/clock"
	"github.com/heartlink/heartlink/internal/orphanage/domain"
	"github.com/heartlink/heartlink/pkg/db"
	"github.com/heartlink/heartlink/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("orphanage.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateOrphanageRequest) (domain.Orphanage, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Orphanage{}, domain.ErrInvalidName
	}

	now := s.clock.Now()
	orphanage := domain.Orphanage{
		ID:          s.genID.Generate(),
		Name:        name,
		Slug:        slug.Make(name),
		Description: strings.TrimSpace(req.Description),
		Address:     strings.TrimSpace(req.Address),
		City:        strings.TrimSpace(req.City),
		Phone:       strings.TrimSpace(req.Phone),
		Email:       strings.TrimSpace(req.Email),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, s.db, &orphanage); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Orphanage{}, domain.ErrSlugExists
		}
		return domain.Orphanage{}, fmt.Errorf("failed to create orphanage: %w", err)
	}

	s.log.Info("orphanage created",
		zap.String("orphanage_id", orphanage.ID.String()),
		zap.String("slug", orphanage.Slug),
	)
	return orphanage, nil
}

func (s *Service) List(ctx context.Context, req domain.ListOrphanageRequest) (domain.ListOrphanageResponse, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	items, err := s.repo.List(ctx, s.db,
		domain.ListFilter{Search: req.Search, Verified: req.Verified},
		pagination.Pagination{PageToken: req.PageToken, PageSize: int(pageSize)},
	)
	if err != nil {
		return domain.ListOrphanageResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(orphanage *domain.Orphanage) string {
		token, err := pagination.EncodeTimeCursor(orphanage.CreatedAt, orphanage.ID.String())
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > int(pageSize) {
		items = items[:pageSize]
	}

	orphanages := make([]domain.Orphanage, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		orphanages = append(orphanages, *item)
	}

	resp := domain.ListOrphanageResponse{Orphanages: orphanages}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Orphanage, error) {
	orphanageID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || orphanageID == 0 {
		return domain.Orphanage{}, domain.ErrInvalidID
	}

	orphanage, err := s.repo.FindByID(ctx, s.db, orphanageID)
	if err != nil {
		return domain.Orphanage{}, err
	}
	if orphanage == nil {
		return domain.Orphanage{}, domain.ErrNotFound
	}
	return *orphanage, nil
}

func (s *Service) GetBySlug(ctx context.Context, rawSlug string) (domain.Orphanage, error) {
	if strings.TrimSpace(rawSlug) == "" {
		return domain.Orphanage{}, domain.ErrInvalidID
	}

	orphanage, err := s.repo.FindBySlug(ctx, s.db, rawSlug)
	if err != nil {
		return domain.Orphanage{}, err
	}
	if orphanage == nil {
		return domain.Orphanage{}, domain.ErrNotFound
	}
	return *orphanage, nil
}
