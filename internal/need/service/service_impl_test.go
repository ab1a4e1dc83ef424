package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	categorydomain "github.com/heartlink/heartlink/internal/category/domain"
	categoryrepository "github.com/heartlink/heartlink/internal/category/repository"
	categoryservice "github.com/heartlink/heartlink/internal/category/service"
	"github.com/heartlink/heartlink/internal/clock"
	"github.com/heartlink/heartlink/internal/donorctx"
	"github.com/heartlink/heartlink/internal/need/domain"
	"github.com/heartlink/heartlink/internal/need/repository"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type needTestStack struct {
	db    *gorm.DB
	genID *snowflake.Node
	clock *clock.FakeClock
	needs *Service

	orphanageID snowflake.ID
	categoryID  snowflake.ID
}

var needTestDBSeq int

func newNeedTestStack(t *testing.T) *needTestStack {
	t.Helper()

	needTestDBSeq++
	dsn := fmt.Sprintf("file:needsvc%d?mode=memory&cache=shared", needTestDBSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&categorydomain.Category{},
		&domain.Need{},
	))

	genID, err := snowflake.NewNode(2)
	require.NoError(t, err)

	fakeClock := clock.NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	log := zap.NewNop()

	categorySvc := categoryservice.New(categoryservice.Params{
		DB:   db,
		Log:  log,
		Repo: categoryrepository.Provide(),
	})
	needSvc := New(Params{
		DB:         db,
		Log:        log,
		GenID:      genID,
		Clock:      fakeClock,
		Repo:       repository.Provide(),
		Categories: categorySvc,
	})

	category := categorydomain.Category{
		ID:        genID.Generate(),
		Name:      "Food",
		CreatedAt: fakeClock.Now(),
		UpdatedAt: fakeClock.Now(),
	}
	require.NoError(t, db.Create(&category).Error)

	return &needTestStack{
		db:          db,
		genID:       genID,
		clock:       fakeClock,
		needs:       needSvc,
		orphanageID: genID.Generate(),
		categoryID:  category.ID,
	}
}

func (s *needTestStack) ctx() context.Context {
	return donorctx.WithOrphanageID(context.Background(), s.orphanageID)
}

func (s *needTestStack) createNeed(t *testing.T, quantity string) domain.Need {
	t.Helper()
	need, err := s.needs.Create(s.ctx(), domain.CreateNeedRequest{
		Form: domain.NeedForm{
			CategoryID: s.categoryID.String(),
			ItemName:   "Rice",
			Quantity:   quantity,
			Priority:   "HIGH",
		},
	})
	require.NoError(t, err)
	return need
}

func TestCreateNeed(t *testing.T) {
	stack := newNeedTestStack(t)

	need := stack.createNeed(t, "25")
	require.Equal(t, domain.NeedActive, need.Status)
	require.Equal(t, 25, need.Quantity)
	require.Equal(t, 0, need.QuantityFulfilled)
	require.Equal(t, domain.PriorityHigh, need.Priority)
	require.Equal(t, stack.orphanageID, need.OrphanageID)
}

func TestCreateNeedResolvesCategoryByName(t *testing.T) {
	stack := newNeedTestStack(t)

	need, err := stack.needs.Create(stack.ctx(), domain.CreateNeedRequest{
		Form: domain.NeedForm{
			CategoryID: "food",
			ItemName:   "Rice",
			Quantity:   "5",
		},
	})
	require.NoError(t, err)
	require.Equal(t, stack.categoryID, need.CategoryID)
}

func TestCreateNeedUnknownCategory(t *testing.T) {
	stack := newNeedTestStack(t)

	_, err := stack.needs.Create(stack.ctx(), domain.CreateNeedRequest{
		Form: domain.NeedForm{
			CategoryID: "furniture",
			ItemName:   "Desk",
			Quantity:   "5",
		},
	})
	require.ErrorIs(t, err, domain.ErrUnknownCategory)
}

func TestCreateNeedValidation(t *testing.T) {
	stack := newNeedTestStack(t)

	_, err := stack.needs.Create(stack.ctx(), domain.CreateNeedRequest{
		Form: domain.NeedForm{CategoryID: "", ItemName: "Rice", Quantity: "10"},
	})

	var vErr *domain.ValidationFailedError
	require.ErrorAs(t, err, &vErr)
	require.Len(t, vErr.Fields, 1)
	require.Contains(t, vErr.Fields, "categoryId")
}

func TestFulfilledNeedStaysTerminal(t *testing.T) {
	stack := newNeedTestStack(t)
	need := stack.createNeed(t, "10")

	fulfilled, err := stack.needs.MarkFulfilled(stack.ctx(), need.ID.String())
	require.NoError(t, err)
	require.Equal(t, domain.NeedFulfilled, fulfilled.Status)
	require.NotNil(t, fulfilled.FulfilledAt)

	// Marking again is a no-op.
	again, err := stack.needs.MarkFulfilled(stack.ctx(), need.ID.String())
	require.NoError(t, err)
	require.Equal(t, domain.NeedFulfilled, again.Status)

	// An update to quantity must not resurrect the need.
	quantity := 20
	updated, err := stack.needs.Update(stack.ctx(), need.ID.String(), domain.UpdateNeedRequest{
		Quantity: &quantity,
	})
	require.NoError(t, err)
	require.Equal(t, 20, updated.Quantity)
	require.Equal(t, domain.NeedFulfilled, updated.Status)

	// And it cannot move to cancelled.
	_, err = stack.needs.Cancel(stack.ctx(), need.ID.String())
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestCancelledNeedRejectsFulfillment(t *testing.T) {
	stack := newNeedTestStack(t)
	need := stack.createNeed(t, "10")

	cancelled, err := stack.needs.Cancel(stack.ctx(), need.ID.String())
	require.NoError(t, err)
	require.Equal(t, domain.NeedCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancelledAt)

	_, err = stack.needs.MarkFulfilled(stack.ctx(), need.ID.String())
	require.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestUpdateNeedPartial(t *testing.T) {
	stack := newNeedTestStack(t)
	need := stack.createNeed(t, "10")

	description := "for the rainy season"
	updated, err := stack.needs.Update(stack.ctx(), need.ID.String(), domain.UpdateNeedRequest{
		Description: &description,
	})
	require.NoError(t, err)
	require.Equal(t, "for the rainy season", updated.Description)
	// Untouched fields keep their values.
	require.Equal(t, "Rice", updated.ItemName)
	require.Equal(t, 10, updated.Quantity)
	require.Equal(t, domain.NeedActive, updated.Status)

	blank := " "
	_, err = stack.needs.Update(stack.ctx(), need.ID.String(), domain.UpdateNeedRequest{
		ItemName: &blank,
	})
	var vErr *domain.ValidationFailedError
	require.ErrorAs(t, err, &vErr)
	require.Contains(t, vErr.Fields, "itemName")
}

func TestDeleteNeedUnconditional(t *testing.T) {
	stack := newNeedTestStack(t)
	need := stack.createNeed(t, "10")

	_, err := stack.needs.MarkFulfilled(stack.ctx(), need.ID.String())
	require.NoError(t, err)

	// Unlike donations, deletion has no status guard.
	require.NoError(t, stack.needs.Delete(stack.ctx(), need.ID.String()))

	_, err = stack.needs.GetByID(context.Background(), need.ID.String())
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNeedAuthorization(t *testing.T) {
	stack := newNeedTestStack(t)
	need := stack.createNeed(t, "10")

	otherCtx := donorctx.WithOrphanageID(context.Background(), stack.genID.Generate())
	_, err := stack.needs.MarkFulfilled(otherCtx, need.ID.String())
	require.ErrorIs(t, err, domain.ErrForbidden)

	err = stack.needs.Delete(otherCtx, need.ID.String())
	require.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRecordFulfillmentClampsAndCompletes(t *testing.T) {
	stack := newNeedTestStack(t)
	need := stack.createNeed(t, "10")

	require.NoError(t, stack.needs.RecordFulfillment(context.Background(), stack.db, need.ID, 4))

	current, err := stack.needs.GetByID(context.Background(), need.ID.String())
	require.NoError(t, err)
	require.Equal(t, 4, current.QuantityFulfilled)
	require.Equal(t, domain.NeedActive, current.Status)

	// Over-delivery clamps at the requested quantity and fulfills.
	require.NoError(t, stack.needs.RecordFulfillment(context.Background(), stack.db, need.ID, 100))

	done, err := stack.needs.GetByID(context.Background(), need.ID.String())
	require.NoError(t, err)
	require.Equal(t, 10, done.QuantityFulfilled)
	require.Equal(t, domain.NeedFulfilled, done.Status)

	// Further credits on a terminal need are absorbed.
	require.NoError(t, stack.needs.RecordFulfillment(context.Background(), stack.db, need.ID, 5))
	after, err := stack.needs.GetByID(context.Background(), need.ID.String())
	require.NoError(t, err)
	require.Equal(t, 10, after.QuantityFulfilled)
}

func TestNeedStatistics(t *testing.T) {
	stack := newNeedTestStack(t)

	first := stack.createNeed(t, "10")
	stack.createNeed(t, "5")
	third := stack.createNeed(t, "3")

	_, err := stack.needs.MarkFulfilled(stack.ctx(), first.ID.String())
	require.NoError(t, err)
	_, err = stack.needs.Cancel(stack.ctx(), third.ID.String())
	require.NoError(t, err)

	stats, err := stack.needs.Statistics(context.Background(), stack.orphanageID.String())
	require.NoError(t, err)
	require.Equal(t, 3, stats.TotalNeeds)
	require.Equal(t, 1, stats.ActiveNeeds)
	require.Equal(t, 1, stats.FulfilledNeeds)
	require.Equal(t, 1, stats.CancelledNeeds)
	require.Equal(t, 1, stats.HighPriorityNeeds)
}

func TestUpdateNeedQuantityBelowFulfilled(t *testing.T) {
	stack := newNeedTestStack(t)
	need := stack.createNeed(t, "60")

	require.NoError(t, stack.needs.RecordFulfillment(context.Background(), stack.db, need.ID, 50))

	// Shrinking below what donors already delivered is rejected.
	quantity := 10
	_, err := stack.needs.Update(stack.ctx(), need.ID.String(), domain.UpdateNeedRequest{
		Quantity: &quantity,
	})
	var vErr *domain.ValidationFailedError
	require.ErrorAs(t, err, &vErr)
	require.Contains(t, vErr.Fields, "quantity")

	current, err := stack.needs.GetByID(context.Background(), need.ID.String())
	require.NoError(t, err)
	require.Equal(t, 60, current.Quantity)
	require.Equal(t, 50, current.QuantityFulfilled)

	// Lowering exactly to the fulfilled amount completes the need.
	quantity = 50
	updated, err := stack.needs.Update(stack.ctx(), need.ID.String(), domain.UpdateNeedRequest{
		Quantity: &quantity,
	})
	require.NoError(t, err)
	require.Equal(t, 50, updated.Quantity)
	require.Equal(t, domain.NeedFulfilled, updated.Status)
	require.NotNil(t, updated.FulfilledAt)
}

func TestRecordFulfillmentMissingNeedIsAbsorbed(t *testing.T) {
	stack := newNeedTestStack(t)
	need := stack.createNeed(t, "10")

	require.NoError(t, stack.needs.Delete(stack.ctx(), need.ID.String()))

	// The need is gone but the crediting transaction must still succeed.
	require.NoError(t, stack.needs.RecordFulfillment(context.Background(), stack.db, need.ID, 3))
}

func TestListNeedsFilters(t *testing.T) {
	stack := newNeedTestStack(t)

	first := stack.createNeed(t, "10")
	stack.createNeed(t, "5")

	_, err := stack.needs.MarkFulfilled(stack.ctx(), first.ID.String())
	require.NoError(t, err)

	active, err := stack.needs.ListByOrphanage(context.Background(), stack.orphanageID.String(), domain.ListNeedRequest{
		Status: "active",
	})
	require.NoError(t, err)
	require.Len(t, active, 1)

	all, err := stack.needs.ListByOrphanage(context.Background(), stack.orphanageID.String(), domain.ListNeedRequest{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	_, err = stack.needs.ListByOrphanage(context.Background(), stack.orphanageID.String(), domain.ListNeedRequest{
		Status: "archived",
	})
	require.ErrorIs(t, err, domain.ErrInvalidFilter)

	_, err = stack.needs.ListByOrphanage(context.Background(), stack.orphanageID.String(), domain.ListNeedRequest{
		Priority: "EXTREME",
	})
	require.ErrorIs(t, err, domain.ErrInvalidFilter)
}
