package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/bwmarrin/snowflake"
	categorydomain "github.com/heartlink/heartlink/internal/category/domain"
	"github.com/heartlink/heartlink/internal/clock"
	"github.com/heartlink/heartlink/internal/config"
	"github.com/heartlink/heartlink/internal/donation/domain"
	"github.com/heartlink/heartlink/internal/donorctx"
	orphanagedomain "github.com/heartlink/heartlink/internal/orphanage/domain"
	"github.com/heartlink/heartlink/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Policy  *config.DonationPolicyHolder
	Repo    domain.Repository
	Needs   domain.NeedFulfiller
	Receipt domain.ReceiptRenderer

	Orphanages orphanagedomain.Service
	Categories categorydomain.Service
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	policy  *config.DonationPolicyHolder
	repo    domain.Repository
	needs   domain.NeedFulfiller
	receipt domain.ReceiptRenderer

	orphanages orphanagedomain.Service
	categories categorydomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("donation.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		policy:     p.Policy,
		repo:       p.Repo,
		needs:      p.Needs,
		receipt:    p.Receipt,
		orphanages: p.Orphanages,
		categories: p.Categories,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateDonationRequest) (domain.Donation, error) {
	donorID, ok := donorctx.DonorIDFromContext(ctx)
	if !ok {
		return domain.Donation{}, domain.ErrInvalidDonor
	}

	policy := config.DonationPolicy{}
	if s.policy != nil {
		policy = s.policy.Get()
	}
	if fieldErrs := domain.ValidateDonationForm(req.Form, policy); len(fieldErrs) > 0 {
		return domain.Donation{}, &domain.ValidationFailedError{Fields: fieldErrs}
	}

	donation, err := s.buildDonation(donorID, req.Form)
	if err != nil {
		return domain.Donation{}, err
	}

	if err := s.repo.Insert(ctx, s.db, &donation); err != nil {
		return domain.Donation{}, fmt.Errorf("failed to create donation: %w", err)
	}

	// Re-read so the caller sees exactly what was stored.
	stored, err := s.repo.FindByID(ctx, s.db, donation.ID)
	if err != nil {
		return domain.Donation{}, fmt.Errorf("failed to create donation: %w", err)
	}
	if stored == nil {
		return domain.Donation{}, domain.ErrNotFound
	}

	s.log.Info("donation created",
		zap.String("donation_id", stored.ID.String()),
		zap.String("type", string(stored.Type)),
	)
	return *stored, nil
}

func (s *Service) buildDonation(donorID snowflake.ID, form domain.DonationForm) (domain.Donation, error) {
	orphanageID, err := parseID(form.OrphanageID)
	if err != nil {
		return domain.Donation{}, &domain.ValidationFailedError{Fields: domain.FieldErrors{"orphanageId": "orphanage id is invalid"}}
	}
	categoryID, err := parseID(form.CategoryID)
	if err != nil {
		return domain.Donation{}, &domain.ValidationFailedError{Fields: domain.FieldErrors{"categoryId": "category id is invalid"}}
	}

	var needID *snowflake.ID
	if strings.TrimSpace(form.NeedID) != "" {
		parsed, err := parseID(form.NeedID)
		if err != nil {
			return domain.Donation{}, &domain.ValidationFailedError{Fields: domain.FieldErrors{"needId": "need id is invalid"}}
		}
		needID = &parsed
	}

	donationType, _ := domain.ParseType(form.Type)
	now := s.clock.Now()
	donation := domain.Donation{
		ID:          s.genID.Generate(),
		DonorID:     donorID,
		OrphanageID: orphanageID,
		CategoryID:  categoryID,
		NeedID:      needID,
		Type:        donationType,
		Status:      domain.StatusPending,
		Note:        strings.TrimSpace(form.Note),
		IsAnonymous: form.IsAnonymous,
		IsRecurring: form.IsRecurring,
		Metadata:    datatypes.JSONMap{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	switch donationType {
	case domain.TypeMonetary:
		amountMinor, err := domain.ParseAmountMinor(form.Amount)
		if err != nil {
			return domain.Donation{}, &domain.ValidationFailedError{Fields: domain.FieldErrors{"amount": "amount must be a valid number"}}
		}
		donation.AmountMinor = amountMinor
		donation.Currency = strings.ToUpper(strings.TrimSpace(form.Currency))
	case domain.TypeInKind:
		donation.ItemDescription = strings.TrimSpace(form.ItemDescription)
		quantity, err := parsePositiveInt(form.Quantity)
		if err != nil {
			return domain.Donation{}, &domain.ValidationFailedError{Fields: domain.FieldErrors{"quantity": "quantity must be a whole number"}}
		}
		donation.Quantity = &quantity
	}

	if form.IsRecurring {
		frequency, _ := domain.ParseFrequency(form.RecurringFrequency)
		donation.RecurringFrequency = &frequency
	}

	return donation, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Donation, error) {
	donationID, err := parseID(id)
	if err != nil {
		return domain.Donation{}, domain.ErrInvalidID
	}

	donation, err := s.repo.FindByID(ctx, s.db, donationID)
	if err != nil {
		return domain.Donation{}, err
	}
	if donation == nil {
		return domain.Donation{}, domain.ErrNotFound
	}
	return *donation, nil
}

// Confirm moves a pending donation to CONFIRMED. Only the receiving
// orphanage may confirm.
func (s *Service) Confirm(ctx context.Context, id string) (domain.Donation, error) {
	return s.transition(ctx, id, domain.StatusConfirmed)
}

// Complete moves a confirmed donation to COMPLETED, stamps CompletedAt and
// records fulfillment against the linked need, if any.
func (s *Service) Complete(ctx context.Context, id string) (domain.Donation, error) {
	return s.transition(ctx, id, domain.StatusCompleted)
}

// Cancel moves a pending or confirmed donation to CANCELLED.
func (s *Service) Cancel(ctx context.Context, id string) (domain.Donation, error) {
	return s.transition(ctx, id, domain.StatusCancelled)
}

func (s *Service) transition(ctx context.Context, id string, target domain.DonationStatus) (domain.Donation, error) {
	donationID, err := parseID(id)
	if err != nil {
		return domain.Donation{}, domain.ErrInvalidID
	}

	var result domain.Donation
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		donation, err := s.repo.FindByIDForUpdate(ctx, tx, donationID)
		if err != nil {
			return err
		}
		if donation == nil {
			return domain.ErrNotFound
		}

		if err := s.authorizeTransition(ctx, donation, target); err != nil {
			return err
		}

		if donation.Status == target {
			// Repeating a transition is a no-op, not an error.
			result = *donation
			return nil
		}
		if !domain.IsTransitionAllowed(donation.Status, target) {
			return domain.ErrInvalidTransition
		}

		now := s.clock.Now()
		switch target {
		case domain.StatusConfirmed:
			donation.ConfirmedAt = &now
		case domain.StatusCompleted:
			donation.CompletedAt = &now
			if donation.NeedID != nil {
				if err := s.needs.RecordFulfillment(ctx, tx, *donation.NeedID, fulfilledQuantity(donation)); err != nil {
					return err
				}
			}
		case domain.StatusCancelled:
			donation.CancelledAt = &now
		default:
			return domain.ErrInvalidTransition
		}

		donation.Status = target
		donation.UpdatedAt = now
		if err := s.repo.Update(ctx, tx, donation); err != nil {
			return err
		}

		result = *donation
		return nil
	})
	if err != nil {
		return domain.Donation{}, err
	}

	s.log.Info("donation transitioned",
		zap.String("donation_id", result.ID.String()),
		zap.String("status", string(result.Status)),
	)
	return result, nil
}

// authorizeTransition enforces who may drive each transition: the receiving
// orphanage confirms and completes, the owning donor cancels. An orphanage
// may also cancel a donation addressed to it.
func (s *Service) authorizeTransition(ctx context.Context, donation *domain.Donation, target domain.DonationStatus) error {
	orphanageID, hasOrphanage := donorctx.OrphanageIDFromContext(ctx)
	donorID, hasDonor := donorctx.DonorIDFromContext(ctx)

	switch target {
	case domain.StatusConfirmed, domain.StatusCompleted:
		if !hasOrphanage || orphanageID != donation.OrphanageID {
			return domain.ErrForbidden
		}
	case domain.StatusCancelled:
		if hasDonor && donorID == donation.DonorID {
			return nil
		}
		if hasOrphanage && orphanageID == donation.OrphanageID {
			return nil
		}
		return domain.ErrForbidden
	}
	return nil
}

func fulfilledQuantity(donation *domain.Donation) int {
	if donation.Type == domain.TypeInKind && donation.Quantity != nil {
		return *donation.Quantity
	}
	return 1
}

func (s *Service) Delete(ctx context.Context, id string) error {
	donorID, ok := donorctx.DonorIDFromContext(ctx)
	if !ok {
		return domain.ErrInvalidDonor
	}

	donationID, err := parseID(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		donation, err := s.repo.FindByIDForUpdate(ctx, tx, donationID)
		if err != nil {
			return err
		}
		if donation == nil {
			return domain.ErrNotFound
		}
		if donation.DonorID != donorID {
			return domain.ErrForbidden
		}
		if donation.Status != domain.StatusPending {
			return domain.ErrDeleteNotPending
		}
		return s.repo.Delete(ctx, tx, donationID)
	})
}

func (s *Service) ListByDonor(ctx context.Context, req domain.ListDonationRequest) (domain.ListDonationResponse, error) {
	donorID, ok := donorctx.DonorIDFromContext(ctx)
	if !ok {
		return domain.ListDonationResponse{}, domain.ErrInvalidDonor
	}
	return s.list(ctx, domain.ListFilter{DonorID: donorID}, req)
}

func (s *Service) ListByOrphanage(ctx context.Context, orphanageID string, req domain.ListDonationRequest) (domain.ListDonationResponse, error) {
	id, err := parseID(orphanageID)
	if err != nil {
		return domain.ListDonationResponse{}, domain.ErrInvalidID
	}
	return s.list(ctx, domain.ListFilter{OrphanageID: id}, req)
}

func (s *Service) list(ctx context.Context, filter domain.ListFilter, req domain.ListDonationRequest) (domain.ListDonationResponse, error) {
	if raw := strings.TrimSpace(req.Status); raw != "" {
		status, ok := domain.ParseStatus(raw)
		if !ok {
			return domain.ListDonationResponse{}, domain.ErrInvalidFilter
		}
		filter.Status = &status
	}
	if raw := strings.TrimSpace(req.Type); raw != "" {
		donationType, ok := domain.ParseType(raw)
		if !ok {
			return domain.ListDonationResponse{}, domain.ErrInvalidFilter
		}
		filter.Type = &donationType
	}
	if raw := strings.TrimSpace(req.NeedID); raw != "" {
		needID, err := parseID(raw)
		if err != nil {
			return domain.ListDonationResponse{}, domain.ErrInvalidFilter
		}
		filter.NeedID = &needID
	}
	filter.CreatedFrom = req.CreatedFrom
	filter.CreatedTo = req.CreatedTo

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	items, err := s.repo.List(ctx, s.db, filter, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  int(pageSize),
	})
	if err != nil {
		return domain.ListDonationResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(donation *domain.Donation) string {
		token, err := pagination.EncodeTimeCursor(donation.CreatedAt, donation.ID.String())
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > int(pageSize) {
		items = items[:pageSize]
	}

	donations := make([]domain.Donation, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		donations = append(donations, *item)
	}

	resp := domain.ListDonationResponse{Donations: donations}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}
	return resp, nil
}

func (s *Service) StatisticsForDonor(ctx context.Context) (domain.Statistics, error) {
	donorID, ok := donorctx.DonorIDFromContext(ctx)
	if !ok {
		return domain.Statistics{}, domain.ErrInvalidDonor
	}

	donations, err := s.repo.ListAll(ctx, s.db, domain.ListFilter{DonorID: donorID})
	if err != nil {
		return domain.Statistics{}, err
	}
	return domain.ComputeStatistics(donations), nil
}

func (s *Service) StatisticsForOrphanage(ctx context.Context, orphanageID string) (domain.Statistics, error) {
	id, err := parseID(orphanageID)
	if err != nil {
		return domain.Statistics{}, domain.ErrInvalidID
	}

	donations, err := s.repo.ListAll(ctx, s.db, domain.ListFilter{OrphanageID: id})
	if err != nil {
		return domain.Statistics{}, err
	}
	return domain.ComputeStatistics(donations), nil
}

func (s *Service) Receipt(ctx context.Context, id string) (io.Reader, error) {
	donation, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if donation.Status != domain.StatusCompleted || donation.CompletedAt == nil {
		return nil, domain.ErrReceiptNotReady
	}

	data := domain.ReceiptData{
		ReceiptNumber: "HL-" + donation.ID.String(),
		DonorName:     "Donor " + donation.DonorID.String(),
		DonationType:  donation.Type,
		CompletedOn:   donation.CompletedAt.Format("2006-01-02"),
	}
	if donation.IsAnonymous {
		data.DonorName = "Anonymous donor"
	}

	if orphanage, err := s.orphanages.GetByID(ctx, donation.OrphanageID.String()); err == nil {
		data.OrphanageName = orphanage.Name
	}
	if category, err := s.categories.GetByID(ctx, donation.CategoryID.String()); err == nil {
		data.CategoryName = category.Name
	}

	switch donation.Type {
	case domain.TypeMonetary:
		data.AmountFormatted = formatAmountMinor(donation.AmountMinor, donation.Currency)
	case domain.TypeInKind:
		data.ItemDescription = donation.ItemDescription
		if donation.Quantity != nil {
			data.Quantity = *donation.Quantity
		}
	}

	return s.receipt.RenderReceipt(ctx, data)
}

func formatAmountMinor(minor int64, currency string) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	formatted := fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
	if currency == "" {
		return formatted
	}
	return currency + " " + formatted
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", value)
	}
	return id, nil
}

func parsePositiveInt(value string) (int, error) {
	var parsed int
	if _, err := fmt.Sscanf(strings.TrimSpace(value), "%d", &parsed); err != nil {
		return 0, err
	}
	if parsed <= 0 {
		return 0, fmt.Errorf("value must be positive")
	}
	return parsed, nil
}
