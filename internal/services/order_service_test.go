package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/threadline-store/backend/internal/dto"
	"github.com/threadline-store/backend/internal/models"
)

func testAddress() json.RawMessage {
	return json.RawMessage(`{"line1":"42 MG Road","city":"Bengaluru","pincode":"560001"}`)
}

func TestCheckoutFromCart(t *testing.T) {
	db := newTestDB(t)
	carts := NewCartService(db)
	orders := NewOrderService(db, NewCouponService(db))

	user := createTestUser(t, db, models.RoleCustomer)
	_, variant := createTestProduct(t, db, "Test Shirt", 500, 400, 10)

	_, err := carts.AddToCart(user.ID, variant.ID, 3)
	require.NoError(t, err)

	order, err := orders.Create(user.ID, &dto.CreateOrderRequest{
		FromCart:        true,
		ShippingAddress: testAddress(),
		PaymentMethod:   "cod",
	})
	require.NoError(t, err)

	assert.Equal(t, 1200.0, order.TotalAmount)
	assert.Equal(t, 1200.0, order.FinalAmount)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Test Shirt", order.Items[0].ProductName)
	assert.Equal(t, 400.0, order.Items[0].Price)
	assert.Equal(t, 3, order.Items[0].Quantity)

	// Cart is emptied and stock decremented.
	cart, err := carts.GetCart(user.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	var v models.ProductVariant
	require.NoError(t, db.First(&v, "id = ?", variant.ID).Error)
	assert.Equal(t, 7, v.StockQuantity)
}

func TestCheckoutEmptyCart(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db, NewCouponService(db))
	user := createTestUser(t, db, models.RoleCustomer)

	_, err := orders.Create(user.ID, &dto.CreateOrderRequest{
		FromCart:        true,
		ShippingAddress: testAddress(),
	})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestOrderInsufficientStockRollsBackEverything(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db, NewCouponService(db))
	user := createTestUser(t, db, models.RoleCustomer)

	_, v1 := createTestProduct(t, db, "Plenty Tee", 500, 400, 10)
	_, v2 := createTestProduct(t, db, "Scarce Tee", 500, 400, 1)

	_, err := orders.Create(user.ID, &dto.CreateOrderRequest{
		Items: []dto.OrderItemInput{
			{VariantID: v1.ID, Quantity: 2},
			{VariantID: v2.ID, Quantity: 5},
		},
		ShippingAddress: testAddress(),
	})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// No partial mutation: stock untouched, no orders written.
	var v models.ProductVariant
	require.NoError(t, db.First(&v, "id = ?", v1.ID).Error)
	assert.Equal(t, 10, v.StockQuantity)

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestOrderSnapshotFrozenAgainstPriceChanges(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db, NewCouponService(db))
	user := createTestUser(t, db, models.RoleCustomer)

	product, variant := createTestProduct(t, db, "Frozen Tee", 500, 400, 10)

	order, err := orders.Create(user.ID, &dto.CreateOrderRequest{
		Items:           []dto.OrderItemInput{{VariantID: variant.ID, Quantity: 1}},
		ShippingAddress: testAddress(),
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(product).Update("selling_price", 999).Error)

	fetched, err := orders.Get(order.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 400.0, fetched.Items[0].Price)
}

func TestOrderUsesVariantPriceOverride(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db, NewCouponService(db))
	user := createTestUser(t, db, models.RoleCustomer)

	_, variant := createTestProduct(t, db, "Override Tee", 500, 400, 10)
	override := 350.0
	require.NoError(t, db.Model(variant).Update("price_override", override).Error)

	order, err := orders.Create(user.ID, &dto.CreateOrderRequest{
		Items:           []dto.OrderItemInput{{VariantID: variant.ID, Quantity: 2}},
		ShippingAddress: testAddress(),
	})
	require.NoError(t, err)
	assert.Equal(t, 700.0, order.TotalAmount)
}

func TestOrderOwnershipAndAdminAccess(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db, NewCouponService(db))

	owner := createTestUser(t, db, models.RoleCustomer)
	other := createTestUser(t, db, models.RoleCustomer)
	_, variant := createTestProduct(t, db, "Private Tee", 500, 400, 10)

	order, err := orders.Create(owner.ID, &dto.CreateOrderRequest{
		Items:           []dto.OrderItemInput{{VariantID: variant.ID, Quantity: 1}},
		ShippingAddress: testAddress(),
	})
	require.NoError(t, err)

	_, err = orders.Get(order.ID, other.ID)
	assert.ErrorIs(t, err, ErrNotOrderOwner)

	// Admin path skips the ownership check.
	fetched, err := orders.Get(order.ID, uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, fetched.UserID)
}

func TestUpdateStatusValidatesEnum(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db, NewCouponService(db))
	user := createTestUser(t, db, models.RoleCustomer)
	_, variant := createTestProduct(t, db, "Status Tee", 500, 400, 10)

	order, err := orders.Create(user.ID, &dto.CreateOrderRequest{
		Items:           []dto.OrderItemInput{{VariantID: variant.ID, Quantity: 1}},
		ShippingAddress: testAddress(),
	})
	require.NoError(t, err)

	_, err = orders.UpdateStatus(order.ID, "teleported")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	// "placed" is reserved for payment verification.
	_, err = orders.UpdateStatus(order.ID, models.OrderStatusPlaced)
	assert.ErrorIs(t, err, ErrInvalidStatus)

	updated, err := orders.UpdateStatus(order.ID, models.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, updated.Status)
}

func TestOrderWithCouponIncrementsUsage(t *testing.T) {
	db := newTestDB(t)
	coupons := NewCouponService(db)
	orders := NewOrderService(db, coupons)
	user := createTestUser(t, db, models.RoleCustomer)
	_, variant := createTestProduct(t, db, "Coupon Tee", 500, 400, 10)

	limit := 1
	coupon := models.Coupon{
		Code:       "SAVE50",
		Type:       models.CouponTypeFixed,
		Value:      50,
		StartDate:  time.Now().Add(-time.Hour),
		UsageLimit: &limit,
		IsActive:   true,
	}
	require.NoError(t, db.Create(&coupon).Error)

	order, err := orders.Create(user.ID, &dto.CreateOrderRequest{
		Items:           []dto.OrderItemInput{{VariantID: variant.ID, Quantity: 1}},
		ShippingAddress: testAddress(),
		CouponCode:      "SAVE50",
	})
	require.NoError(t, err)
	assert.Equal(t, 50.0, order.DiscountAmount)
	assert.Equal(t, 350.0, order.FinalAmount)

	var reloaded models.Coupon
	require.NoError(t, db.First(&reloaded, "id = ?", coupon.ID).Error)
	assert.Equal(t, 1, reloaded.TimesUsed)

	// Usage limit exhausted: the next order fails wholesale.
	_, err = orders.Create(user.ID, &dto.CreateOrderRequest{
		Items:           []dto.OrderItemInput{{VariantID: variant.ID, Quantity: 1}},
		ShippingAddress: testAddress(),
		CouponCode:      "SAVE50",
	})
	assert.ErrorIs(t, err, ErrCouponExhausted)
}

func TestDeleteAndRestock(t *testing.T) {
	db := newTestDB(t)
	orders := NewOrderService(db, NewCouponService(db))
	user := createTestUser(t, db, models.RoleCustomer)
	_, variant := createTestProduct(t, db, "Unwind Tee", 500, 400, 10)

	order, err := orders.Create(user.ID, &dto.CreateOrderRequest{
		Items:           []dto.OrderItemInput{{VariantID: variant.ID, Quantity: 4}},
		ShippingAddress: testAddress(),
	})
	require.NoError(t, err)

	require.NoError(t, orders.DeleteAndRestock(order.ID))

	var v models.ProductVariant
	require.NoError(t, db.First(&v, "id = ?", variant.ID).Error)
	assert.Equal(t, 10, v.StockQuantity)

	_, err = orders.Get(order.ID, user.ID)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
