package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/heartlink/heartlink/internal/clock"
	"github.com/heartlink/heartlink/internal/orphanage/domain"
	"github.com/heartlink/heartlink/internal/orphanage/repository"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var orphanageTestDBSeq int

func newOrphanageService(t *testing.T) (domain.Service, *clock.FakeClock) {
	t.Helper()

	orphanageTestDBSeq++
	dsn := fmt.Sprintf("file:orphanagesvc%d?mode=memory&cache=shared", orphanageTestDBSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Orphanage{}))

	genID, err := snowflake.NewNode(4)
	require.NoError(t, err)

	fakeClock := clock.NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: genID,
		Clock: fakeClock,
		Repo:  repository.Provide(),
	})
	return svc, fakeClock
}

func TestCreateOrphanageSlugged(t *testing.T) {
	svc, _ := newOrphanageService(t)

	created, err := svc.Create(context.Background(), domain.CreateOrphanageRequest{
		Name: "Sunrise Children Home",
		City: "Jakarta",
	})
	require.NoError(t, err)
	require.Equal(t, "sunrise-children-home", created.Slug)
	require.False(t, created.IsVerified)

	got, err := svc.GetBySlug(context.Background(), "sunrise-children-home")
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
}

func TestCreateOrphanageRequiresName(t *testing.T) {
	svc, _ := newOrphanageService(t)

	_, err := svc.Create(context.Background(), domain.CreateOrphanageRequest{Name: "  "})
	require.ErrorIs(t, err, domain.ErrInvalidName)
}

func TestCreateOrphanageDuplicateSlug(t *testing.T) {
	svc, _ := newOrphanageService(t)

	_, err := svc.Create(context.Background(), domain.CreateOrphanageRequest{Name: "Sunrise Home"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), domain.CreateOrphanageRequest{Name: "Sunrise Home"})
	require.ErrorIs(t, err, domain.ErrSlugExists)
}

func TestListOrphanagesSearchAndVerified(t *testing.T) {
	svc, fakeClock := newOrphanageService(t)

	for _, name := range []string{"Sunrise Home", "Harapan Kita", "Sunny Hill"} {
		_, err := svc.Create(context.Background(), domain.CreateOrphanageRequest{
			Name: name,
			City: "Jakarta",
		})
		require.NoError(t, err)
		fakeClock.Advance(time.Minute)
	}

	resp, err := svc.List(context.Background(), domain.ListOrphanageRequest{Search: "sun"})
	require.NoError(t, err)
	require.Len(t, resp.Orphanages, 2)

	verified := true
	resp, err = svc.List(context.Background(), domain.ListOrphanageRequest{Verified: &verified})
	require.NoError(t, err)
	require.Empty(t, resp.Orphanages)
}

func TestListOrphanagesPagination(t *testing.T) {
	svc, fakeClock := newOrphanageService(t)

	for i := 0; i < 5; i++ {
		_, err := svc.Create(context.Background(), domain.CreateOrphanageRequest{
			Name: fmt.Sprintf("Home %d", i),
		})
		require.NoError(t, err)
		fakeClock.Advance(time.Minute)
	}

	page, err := svc.List(context.Background(), domain.ListOrphanageRequest{PageSize: 3})
	require.NoError(t, err)
	require.Len(t, page.Orphanages, 3)
	require.True(t, page.HasMore)

	rest, err := svc.List(context.Background(), domain.ListOrphanageRequest{
		PageSize:  3,
		PageToken: page.NextPageToken,
	})
	require.NoError(t, err)
	require.Len(t, rest.Orphanages, 2)
	require.False(t, rest.HasMore)
}
