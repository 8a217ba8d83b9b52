package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/threadline-store/backend/internal/database"
	"github.com/threadline-store/backend/internal/models"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()

	uid := uuid.NewString()
	user := models.User{
		FirebaseUID: &uid,
		Email:       uid + "@example.com",
		Name:        "Test User",
		Role:        role,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

// createTestProduct seeds a product with one variant at the given price
// and stock and returns both.
func createTestProduct(t *testing.T, db *gorm.DB, name string, mrp, sellingPrice float64, stock int) (*models.Product, *models.ProductVariant) {
	t.Helper()

	product := models.Product{
		Name:         name,
		Slug:         Slugify(name),
		MRP:          mrp,
		SellingPrice: sellingPrice,
		IsActive:     true,
	}
	require.NoError(t, db.Create(&product).Error)

	variant := models.ProductVariant{
		ProductID:     product.ID,
		SKUCode:       "SKU-" + uuid.NewString()[:8],
		Color:         "black",
		Size:          "M",
		StockQuantity: stock,
		IsActive:      true,
	}
	require.NoError(t, db.Create(&variant).Error)
	return &product, &variant
}
