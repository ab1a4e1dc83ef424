package seed

import (
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	categorydomain "github.com/heartlink/heartlink/internal/category/domain"
	orphanagedomain "github.com/heartlink/heartlink/internal/orphanage/domain"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var seedTestDBSeq int

func newSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	seedTestDBSeq++
	dsn := fmt.Sprintf("file:seedtest%d?mode=memory&cache=shared", seedTestDBSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&categorydomain.Category{},
		&orphanagedomain.Orphanage{},
	))
	return db
}

func TestEnsureCategoriesIdempotent(t *testing.T) {
	db := newSeedTestDB(t)
	node, err := snowflake.NewNode(7)
	require.NoError(t, err)

	require.NoError(t, EnsureCategories(db, node))
	require.NoError(t, EnsureCategories(db, node))

	var categories []categorydomain.Category
	require.NoError(t, db.Find(&categories).Error)
	require.Len(t, categories, len(defaultCategories))

	// IDs carry the injected node, not a private one.
	for _, category := range categories {
		require.Equal(t, int64(7), category.ID.Node())
	}
}

func TestEnsureCategoriesRequiresNode(t *testing.T) {
	db := newSeedTestDB(t)
	require.Error(t, EnsureCategories(db, nil))
	require.Error(t, EnsureDemoOrphanages(db, nil))
}

func TestEnsureDemoOrphanagesIdempotent(t *testing.T) {
	db := newSeedTestDB(t)
	node, err := snowflake.NewNode(7)
	require.NoError(t, err)

	require.NoError(t, EnsureDemoOrphanages(db, node))
	require.NoError(t, EnsureDemoOrphanages(db, node))

	var orphanages []orphanagedomain.Orphanage
	require.NoError(t, db.Find(&orphanages).Error)
	require.Len(t, orphanages, len(demoOrphanages))
	for _, orphanage := range orphanages {
		require.True(t, orphanage.IsVerified)
		require.NotEmpty(t, orphanage.Slug)
	}
}
