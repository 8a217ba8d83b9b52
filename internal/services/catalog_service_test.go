package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/threadline-store/backend/internal/dto"
)

func TestCreateProductGeneratesSlug(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)

	product, err := svc.CreateProduct(&dto.CreateProductRequest{
		Name:         "Supima T-Shirt",
		MRP:          500,
		SellingPrice: 400,
		Variants: []dto.VariantInput{
			{SKUCode: "SUP-TS-M", Size: "M", StockQuantity: 5},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "supima-t-shirt", product.Slug)
	require.Len(t, product.Variants, 1)
	assert.Equal(t, 5, product.Variants[0].StockQuantity)
}

func TestCreateProductDuplicateSlug(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)

	_, err := svc.CreateProduct(&dto.CreateProductRequest{Name: "Supima T-Shirt", MRP: 500, SellingPrice: 400})
	require.NoError(t, err)

	_, err = svc.CreateProduct(&dto.CreateProductRequest{Name: "Supima T-Shirt", MRP: 600, SellingPrice: 450})
	assert.ErrorIs(t, err, ErrSlugTaken)
}

func TestCreateProductValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)

	_, err := svc.CreateProduct(&dto.CreateProductRequest{Name: "", MRP: 500, SellingPrice: 400})
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = svc.CreateProduct(&dto.CreateProductRequest{Name: "No Price"})
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestUpdateProductRenameRegeneratesSlug(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)

	created, err := svc.CreateProduct(&dto.CreateProductRequest{Name: "Supima T-Shirt", MRP: 500, SellingPrice: 400})
	require.NoError(t, err)

	newName := "Premium Cotton Shirt"
	updated, err := svc.UpdateProduct(created.ID, &dto.UpdateProductRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "premium-cotton-shirt", updated.Slug)

	// Old slug no longer resolves.
	_, err = svc.GetProductBySlug("supima-t-shirt")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestDeleteProductHidesFromListings(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)

	created, err := svc.CreateProduct(&dto.CreateProductRequest{Name: "Retired Tee", MRP: 500, SellingPrice: 400})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(created.ID))

	_, err = svc.GetProductBySlug(created.Slug)
	assert.ErrorIs(t, err, ErrProductNotFound)

	list, err := svc.ListProducts(&dto.ProductFilters{})
	require.NoError(t, err)
	assert.Empty(t, list.Products)
}

func TestListProductsSearchAndPriceFilters(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)

	createTestProduct(t, db, "Supima T-Shirt", 500, 400, 10)
	createTestProduct(t, db, "Linen Trousers", 2000, 1500, 10)

	list, err := svc.ListProducts(&dto.ProductFilters{Search: "supima"})
	require.NoError(t, err)
	require.Len(t, list.Products, 1)
	assert.Equal(t, "supima-t-shirt", list.Products[0].Slug)

	list, err = svc.ListProducts(&dto.ProductFilters{MinPrice: 1000})
	require.NoError(t, err)
	require.Len(t, list.Products, 1)
	assert.Equal(t, "linen-trousers", list.Products[0].Slug)

	list, err = svc.ListProducts(&dto.ProductFilters{Sort: "price_asc"})
	require.NoError(t, err)
	require.Len(t, list.Products, 2)
	assert.Equal(t, "supima-t-shirt", list.Products[0].Slug)
}

func TestUpdateInventorySetsAbsoluteStock(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)

	_, variant := createTestProduct(t, db, "Stock Tee", 500, 400, 10)

	stock := 3
	updated, err := svc.UpdateInventory(&dto.UpdateInventoryRequest{VariantID: variant.ID, Stock: &stock})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.StockQuantity)

	_, err = svc.UpdateInventory(&dto.UpdateInventoryRequest{VariantID: variant.ID})
	assert.ErrorIs(t, err, ErrStockValueMissing)
}
