package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/threadline-store/backend/internal/dto"
	"github.com/threadline-store/backend/internal/models"
)

func TestAddReviewValidationAndDuplicates(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db)

	user := createTestUser(t, db, models.RoleCustomer)
	product, _ := createTestProduct(t, db, "Reviewed Tee", 500, 400, 10)

	_, err := svc.Add(user.ID, &dto.AddReviewRequest{ProductID: product.ID, Rating: 6})
	assert.ErrorIs(t, err, ErrInvalidRating)

	review, err := svc.Add(user.ID, &dto.AddReviewRequest{ProductID: product.ID, Rating: 4, Comment: "Fits well"})
	require.NoError(t, err)
	assert.Equal(t, "Test User", review.UserName)
	assert.False(t, review.IsVerifiedPurchase)

	_, err = svc.Add(user.ID, &dto.AddReviewRequest{ProductID: product.ID, Rating: 5})
	assert.ErrorIs(t, err, ErrAlreadyReviewed)
}

func TestAddReviewVerifiedPurchase(t *testing.T) {
	db := newTestDB(t)
	reviews := NewReviewService(db)
	orders := NewOrderService(db, NewCouponService(db))

	user := createTestUser(t, db, models.RoleCustomer)
	product, variant := createTestProduct(t, db, "Bought Tee", 500, 400, 10)

	_, err := orders.Create(user.ID, &dto.CreateOrderRequest{
		Items:           []dto.OrderItemInput{{VariantID: variant.ID, Quantity: 1}},
		ShippingAddress: testAddress(),
	})
	require.NoError(t, err)

	review, err := reviews.Add(user.ID, &dto.AddReviewRequest{ProductID: product.ID, Rating: 5})
	require.NoError(t, err)
	assert.True(t, review.IsVerifiedPurchase)
}

func TestListReviewsNewestFirstAndDeleteOwn(t *testing.T) {
	db := newTestDB(t)
	svc := NewReviewService(db)

	alice := createTestUser(t, db, models.RoleCustomer)
	bob := createTestUser(t, db, models.RoleCustomer)
	product, _ := createTestProduct(t, db, "Popular Tee", 500, 400, 10)

	first, err := svc.Add(alice.ID, &dto.AddReviewRequest{ProductID: product.ID, Rating: 3})
	require.NoError(t, err)
	_, err = svc.Add(bob.ID, &dto.AddReviewRequest{ProductID: product.ID, Rating: 5})
	require.NoError(t, err)

	list, err := svc.ListByProduct(product.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)

	err = svc.Delete(bob.ID, first.ID)
	assert.ErrorIs(t, err, ErrNotReviewOwner)

	require.NoError(t, svc.Delete(alice.ID, first.ID))

	list, err = svc.ListByProduct(product.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestWishlistAddIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewWishlistService(db)

	user := createTestUser(t, db, models.RoleCustomer)
	product, _ := createTestProduct(t, db, "Wish Tee", 500, 400, 10)

	already, err := svc.Add(user.ID, product.ID)
	require.NoError(t, err)
	assert.False(t, already)

	already, err = svc.Add(user.ID, product.ID)
	require.NoError(t, err)
	assert.True(t, already)

	products, err := svc.List(user.ID)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "wish-tee", products[0].Slug)

	require.NoError(t, svc.Remove(user.ID, product.ID))
	assert.ErrorIs(t, svc.Remove(user.ID, product.ID), ErrWishlistItemNotFound)
}
