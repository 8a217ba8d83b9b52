package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/threadline-store/backend/internal/models"
)

func TestAddToCartMergesQuantities(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)

	user := createTestUser(t, db, models.RoleCustomer)
	_, variant := createTestProduct(t, db, "Cart Tee", 500, 400, 10)

	_, err := svc.AddToCart(user.ID, variant.ID, 2)
	require.NoError(t, err)

	cart, err := svc.AddToCart(user.ID, variant.ID, 3)
	require.NoError(t, err)

	// One row, quantity 5, never two rows.
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, 400.0, cart.Items[0].Price)
	assert.Equal(t, 2000.0, cart.Summary.Subtotal)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAddToCartRespectsStock(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)

	user := createTestUser(t, db, models.RoleCustomer)
	_, variant := createTestProduct(t, db, "Scarce Tee", 500, 400, 4)

	_, err := svc.AddToCart(user.ID, variant.ID, 5)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	_, err = svc.AddToCart(user.ID, variant.ID, 3)
	require.NoError(t, err)

	// Cumulative quantity is checked too.
	_, err = svc.AddToCart(user.ID, variant.ID, 2)
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestAddToCartInactiveProduct(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)

	user := createTestUser(t, db, models.RoleCustomer)
	product, variant := createTestProduct(t, db, "Hidden Tee", 500, 400, 10)
	require.NoError(t, db.Model(product).Update("is_active", false).Error)

	_, err := svc.AddToCart(user.ID, variant.ID, 1)
	assert.ErrorIs(t, err, ErrProductUnavailable)
}

func TestUpdateCartItemOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)

	owner := createTestUser(t, db, models.RoleCustomer)
	other := createTestUser(t, db, models.RoleCustomer)
	_, variant := createTestProduct(t, db, "Owned Tee", 500, 400, 10)

	cart, err := svc.AddToCart(owner.ID, variant.ID, 1)
	require.NoError(t, err)
	itemID := cart.Items[0].CartItemID

	_, err = svc.UpdateCartItem(other.ID, itemID, 2)
	assert.ErrorIs(t, err, ErrNotCartOwner)

	cart, err = svc.UpdateCartItem(owner.ID, itemID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, cart.Items[0].Quantity)

	_, err = svc.UpdateCartItem(owner.ID, itemID, 0)
	assert.ErrorIs(t, err, ErrQuantityTooLow)
}

func TestRemoveAndClearCart(t *testing.T) {
	db := newTestDB(t)
	svc := NewCartService(db)

	user := createTestUser(t, db, models.RoleCustomer)
	_, v1 := createTestProduct(t, db, "Tee One", 500, 400, 10)
	_, v2 := createTestProduct(t, db, "Tee Two", 600, 450, 10)

	cart, err := svc.AddToCart(user.ID, v1.ID, 1)
	require.NoError(t, err)
	_, err = svc.AddToCart(user.ID, v2.ID, 1)
	require.NoError(t, err)

	cart, err = svc.RemoveFromCart(user.ID, cart.Items[0].CartItemID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)

	require.NoError(t, svc.ClearCart(user.ID))

	cart, err = svc.GetCart(user.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Equal(t, 0.0, cart.Summary.Total)
}
