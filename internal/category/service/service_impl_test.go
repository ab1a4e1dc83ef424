package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/heartlink/heartlink/internal/category/domain"
	"github.com/heartlink/heartlink/internal/category/repository"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var categoryTestDBSeq int

func newCategoryService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	categoryTestDBSeq++
	dsn := fmt.Sprintf("file:categorysvc%d?mode=memory&cache=shared", categoryTestDBSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Category{}))

	genID, err := snowflake.NewNode(3)
	require.NoError(t, err)

	svc := New(Params{
		DB:   db,
		Log:  zap.NewNop(),
		Repo: repository.Provide(),
	})
	return svc, db, genID
}

func seedCategory(t *testing.T, db *gorm.DB, genID *snowflake.Node, name string) domain.Category {
	t.Helper()
	category := domain.Category{
		ID:        genID.Generate(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, db.Create(&category).Error)
	return category
}

func TestResolveIDByNameCaseInsensitive(t *testing.T) {
	svc, db, genID := newCategoryService(t)
	category := seedCategory(t, db, genID, "Education")

	for _, name := range []string{"Education", "education", "EDUCATION", " education "} {
		id, err := svc.ResolveIDByName(context.Background(), name)
		require.NoError(t, err, name)
		require.NotNil(t, id, name)
		require.Equal(t, category.ID, *id, name)
	}
}

func TestResolveIDByNameUnknownIsNil(t *testing.T) {
	svc, _, _ := newCategoryService(t)

	id, err := svc.ResolveIDByName(context.Background(), "furniture")
	require.NoError(t, err)
	require.Nil(t, id)

	id, err = svc.ResolveIDByName(context.Background(), "")
	require.NoError(t, err)
	require.Nil(t, id)
}

func TestCategoryGetByID(t *testing.T) {
	svc, db, genID := newCategoryService(t)
	category := seedCategory(t, db, genID, "Food")

	got, err := svc.GetByID(context.Background(), category.ID.String())
	require.NoError(t, err)
	require.Equal(t, "Food", got.Name)

	_, err = svc.GetByID(context.Background(), genID.Generate().String())
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.GetByID(context.Background(), "not-an-id")
	require.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestCategoryListOrdered(t *testing.T) {
	svc, db, genID := newCategoryService(t)
	seedCategory(t, db, genID, "Food")
	seedCategory(t, db, genID, "Clothing")
	seedCategory(t, db, genID, "Education")

	categories, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 3)
	require.Equal(t, "Clothing", categories[0].Name)
	require.Equal(t, "Education", categories[1].Name)
	require.Equal(t, "Food", categories[2].Name)
}
