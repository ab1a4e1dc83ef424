// Package seed bootstraps reference data so a fresh install is browsable
// without manual setup.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	categorydomain "github.com/heartlink/heartlink/internal/category/domain"
	orphanagedomain "github.com/heartlink/heartlink/internal/orphanage/domain"
	"gorm.io/gorm"
)

var defaultCategories = []struct {
	Name        string
	Description string
}{
	{"Food", "Staple food, groceries and ready meals"},
	{"Clothing", "Clothes, shoes and bedding"},
	{"Education", "School supplies, books and tuition support"},
	{"Health", "Medicine, hygiene kits and medical care"},
	{"Shelter", "Building materials and facility repairs"},
	{"Other", "Anything that does not fit the categories above"},
}

var demoOrphanages = []orphanagedomain.CreateOrphanageRequest{
	{
		Name:        "Sunrise Children Home",
		Description: "Caring for up to 40 children on the east side of the city.",
		City:        "Jakarta",
		Email:       "hello@sunrise.example.org",
	},
	{
		Name:        "Harapan Kita Shelter",
		Description: "Community shelter focused on school-age children.",
		City:        "Bandung",
		Email:       "contact@harapankita.example.org",
	},
}

// EnsureCategories inserts the default category set, skipping names that
// already exist. IDs come from the application's shared node so seeded
// rows cannot collide with request-created ones.
func EnsureCategories(db *gorm.DB, node *snowflake.Node) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}
	if node == nil {
		return errors.New("seed id node is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, def := range defaultCategories {
			var existing categorydomain.Category
			err := tx.WithContext(ctx).
				Where("lower(name) = lower(?)", def.Name).
				First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			now := time.Now().UTC()
			category := categorydomain.Category{
				ID:          node.Generate(),
				Name:        def.Name,
				Description: def.Description,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := tx.WithContext(ctx).Create(&category).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// EnsureDemoOrphanages inserts a couple of demo orphanage profiles for
// non-production environments.
func EnsureDemoOrphanages(db *gorm.DB, node *snowflake.Node) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}
	if node == nil {
		return errors.New("seed id node is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, def := range demoOrphanages {
			orgSlug := slug.Make(def.Name)

			var existing orphanagedomain.Orphanage
			err := tx.WithContext(ctx).
				Where("slug = ?", orgSlug).
				First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			now := time.Now().UTC()
			orphanage := orphanagedomain.Orphanage{
				ID:          node.Generate(),
				Name:        def.Name,
				Slug:        orgSlug,
				Description: def.Description,
				City:        def.City,
				Email:       def.Email,
				IsVerified:  true,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := tx.WithContext(ctx).Create(&orphanage).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
