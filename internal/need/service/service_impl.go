package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	categorydomain "github.com/heartlink/heartlink/internal/category/domain"
	"github.com/heartlink/heartlink/internal/clock"
	"github.com/heartlink/heartlink/internal/donorctx"
	"github.com/heartlink/heartlink/internal/need/domain"
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

	Categories categorydomain.Service
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository

	categories categorydomain.Service
}

func New(p Params) *Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("need.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		repo:       p.Repo,
		categories: p.Categories,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateNeedRequest) (domain.Need, error) {
	orphanageID, ok := donorctx.OrphanageIDFromContext(ctx)
	if !ok {
		return domain.Need{}, domain.ErrInvalidOrphanage
	}

	if fieldErrs := domain.ValidateNeedForm(req.Form); len(fieldErrs) > 0 {
		return domain.Need{}, &domain.ValidationFailedError{Fields: fieldErrs}
	}

	categoryID, err := s.resolveCategory(ctx, req.Form.CategoryID)
	if err != nil {
		return domain.Need{}, err
	}

	quantity, _ := strconv.Atoi(strings.TrimSpace(req.Form.Quantity))
	priority := domain.PriorityMedium
	if raw := strings.TrimSpace(req.Form.Priority); raw != "" {
		priority, _ = domain.ParsePriority(raw)
	}

	now := s.clock.Now()
	need := domain.Need{
		ID:          s.genID.Generate(),
		OrphanageID: orphanageID,
		CategoryID:  categoryID,
		ItemName:    strings.TrimSpace(req.Form.ItemName),
		Description: strings.TrimSpace(req.Form.Description),
		Quantity:    quantity,
		Priority:    priority,
		Status:      domain.NeedActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, s.db, &need); err != nil {
		return domain.Need{}, fmt.Errorf("failed to create need: %w", err)
	}

	s.log.Info("need created",
		zap.String("need_id", need.ID.String()),
		zap.String("priority", string(need.Priority)),
	)
	return need, nil
}

// resolveCategory accepts either a category ID or a category name, matching
// how clients submit the field.
func (s *Service) resolveCategory(ctx context.Context, raw string) (snowflake.ID, error) {
	raw = strings.TrimSpace(raw)
	if id, err := snowflake.ParseString(raw); err == nil && id != 0 {
		if _, err := s.categories.GetByID(ctx, raw); err == nil {
			return id, nil
		}
	}

	id, err := s.categories.ResolveIDByName(ctx, raw)
	if err != nil {
		return 0, err
	}
	if id == nil {
		return 0, domain.ErrUnknownCategory
	}
	return *id, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Need, error) {
	needID, err := parseID(id)
	if err != nil {
		return domain.Need{}, domain.ErrInvalidID
	}

	need, err := s.repo.FindByID(ctx, s.db, needID)
	if err != nil {
		return domain.Need{}, err
	}
	if need == nil {
		return domain.Need{}, domain.ErrNotFound
	}
	return *need, nil
}

// Update applies only the supplied fields. Quantity never drops below what
// is already fulfilled; lowering it exactly to the fulfilled amount
// completes the need. Status otherwise only changes through MarkFulfilled
// and Cancel.
func (s *Service) Update(ctx context.Context, id string, req domain.UpdateNeedRequest) (domain.Need, error) {
	needID, err := parseID(id)
	if err != nil {
		return domain.Need{}, domain.ErrInvalidID
	}

	var result domain.Need
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		need, err := s.repo.FindByIDForUpdate(ctx, tx, needID)
		if err != nil {
			return err
		}
		if need == nil {
			return domain.ErrNotFound
		}
		if err := s.authorize(ctx, need); err != nil {
			return err
		}

		if req.ItemName != nil {
			if strings.TrimSpace(*req.ItemName) == "" {
				return &domain.ValidationFailedError{Fields: domain.FieldErrors{"itemName": "item name is required"}}
			}
			need.ItemName = strings.TrimSpace(*req.ItemName)
		}
		if req.Description != nil {
			need.Description = strings.TrimSpace(*req.Description)
		}
		if req.Quantity != nil {
			if *req.Quantity <= 0 {
				return &domain.ValidationFailedError{Fields: domain.FieldErrors{"quantity": "quantity must be greater than zero"}}
			}
			if *req.Quantity < need.QuantityFulfilled {
				return &domain.ValidationFailedError{Fields: domain.FieldErrors{"quantity": "quantity cannot be lower than the quantity already fulfilled"}}
			}
			need.Quantity = *req.Quantity
			if need.Status == domain.NeedActive && need.QuantityFulfilled >= need.Quantity {
				now := s.clock.Now()
				need.Status = domain.NeedFulfilled
				need.FulfilledAt = &now
			}
		}
		if req.Priority != nil {
			need.Priority = *req.Priority
		}
		if req.CategoryID != nil {
			categoryID, err := s.resolveCategory(ctx, *req.CategoryID)
			if err != nil {
				return err
			}
			need.CategoryID = categoryID
		}

		need.UpdatedAt = s.clock.Now()
		if err := s.repo.Update(ctx, tx, need); err != nil {
			return err
		}

		result = *need
		return nil
	})
	if err != nil {
		return domain.Need{}, err
	}
	return result, nil
}

// MarkFulfilled moves an active need to fulfilled. Calling it again on a
// fulfilled need is a no-op.
func (s *Service) MarkFulfilled(ctx context.Context, id string) (domain.Need, error) {
	return s.transition(ctx, id, domain.NeedFulfilled)
}

// Cancel moves an active need to cancelled.
func (s *Service) Cancel(ctx context.Context, id string) (domain.Need, error) {
	return s.transition(ctx, id, domain.NeedCancelled)
}

func (s *Service) transition(ctx context.Context, id string, target domain.NeedStatus) (domain.Need, error) {
	needID, err := parseID(id)
	if err != nil {
		return domain.Need{}, domain.ErrInvalidID
	}

	var result domain.Need
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		need, err := s.repo.FindByIDForUpdate(ctx, tx, needID)
		if err != nil {
			return err
		}
		if need == nil {
			return domain.ErrNotFound
		}
		if err := s.authorize(ctx, need); err != nil {
			return err
		}

		if need.Status == target {
			result = *need
			return nil
		}
		if need.Status != domain.NeedActive {
			return domain.ErrInvalidTransition
		}

		now := s.clock.Now()
		switch target {
		case domain.NeedFulfilled:
			need.FulfilledAt = &now
		case domain.NeedCancelled:
			need.CancelledAt = &now
		default:
			return domain.ErrInvalidTransition
		}

		need.Status = target
		need.UpdatedAt = now
		if err := s.repo.Update(ctx, tx, need); err != nil {
			return err
		}

		result = *need
		return nil
	})
	if err != nil {
		return domain.Need{}, err
	}

	s.log.Info("need transitioned",
		zap.String("need_id", result.ID.String()),
		zap.String("status", string(result.Status)),
	)
	return result, nil
}

// Delete removes a need regardless of status. Donations already tied to it
// keep their need reference.
func (s *Service) Delete(ctx context.Context, id string) error {
	needID, err := parseID(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		need, err := s.repo.FindByIDForUpdate(ctx, tx, needID)
		if err != nil {
			return err
		}
		if need == nil {
			return domain.ErrNotFound
		}
		if err := s.authorize(ctx, need); err != nil {
			return err
		}
		return s.repo.Delete(ctx, tx, needID)
	})
}

func (s *Service) ListByOrphanage(ctx context.Context, orphanageID string, req domain.ListNeedRequest) ([]domain.Need, error) {
	id, err := parseID(orphanageID)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	filter := domain.ListFilter{OrphanageID: id}
	if raw := strings.TrimSpace(req.Status); raw != "" {
		status, ok := domain.ParseStatus(raw)
		if !ok {
			return nil, domain.ErrInvalidFilter
		}
		filter.Status = &status
	}
	if raw := strings.TrimSpace(req.Priority); raw != "" {
		priority, ok := domain.ParsePriority(raw)
		if !ok {
			return nil, domain.ErrInvalidFilter
		}
		filter.Priority = &priority
	}

	return s.repo.ListByOrphanage(ctx, s.db, filter)
}

func (s *Service) Statistics(ctx context.Context, orphanageID string) (domain.Statistics, error) {
	id, err := parseID(orphanageID)
	if err != nil {
		return domain.Statistics{}, domain.ErrInvalidID
	}

	needs, err := s.repo.ListByOrphanage(ctx, s.db, domain.ListFilter{OrphanageID: id})
	if err != nil {
		return domain.Statistics{}, err
	}
	return domain.ComputeStatistics(needs), nil
}

// RecordFulfillment credits a completed donation against its need inside
// the donation's transaction. A terminal or since-deleted need absorbs the
// credit silently so the donation can still complete.
func (s *Service) RecordFulfillment(ctx context.Context, tx *gorm.DB, needID snowflake.ID, quantity int) error {
	if quantity <= 0 {
		return nil
	}

	need, err := s.repo.FindByIDForUpdate(ctx, tx, needID)
	if err != nil {
		return err
	}
	if need == nil {
		return nil
	}
	if need.Status != domain.NeedActive {
		return nil
	}

	need.QuantityFulfilled += quantity
	if need.QuantityFulfilled > need.Quantity {
		need.QuantityFulfilled = need.Quantity
	}

	now := s.clock.Now()
	if need.QuantityFulfilled >= need.Quantity {
		need.Status = domain.NeedFulfilled
		need.FulfilledAt = &now
	}
	need.UpdatedAt = now

	return s.repo.Update(ctx, tx, need)
}

// authorize permits writes only by the orphanage that owns the need.
func (s *Service) authorize(ctx context.Context, need *domain.Need) error {
	orphanageID, ok := donorctx.OrphanageIDFromContext(ctx)
	if !ok {
		return domain.ErrInvalidOrphanage
	}
	if orphanageID != need.OrphanageID {
		return domain.ErrForbidden
	}
	return nil
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", value)
	}
	return id, nil
}
