package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/threadline-store/backend/internal/dto"
	"github.com/threadline-store/backend/internal/models"
)

func TestCouponDiscountClamping(t *testing.T) {
	t.Parallel()

	maxDiscount := 100.0
	percent := &models.Coupon{Type: models.CouponTypePercentage, Value: 10, MaxDiscount: &maxDiscount}
	assert.Equal(t, 50.0, Discount(percent, 500))
	assert.Equal(t, 100.0, Discount(percent, 5000))

	fixed := &models.Coupon{Type: models.CouponTypeFixed, Value: 500}
	// A fixed 500 coupon on a 300 cart discounts exactly 300.
	assert.Equal(t, 300.0, Discount(fixed, 300))
	assert.Equal(t, 500.0, Discount(fixed, 1200))
}

func TestValidateCouponWindowAndMinCart(t *testing.T) {
	db := newTestDB(t)
	svc := NewCouponService(db)

	end := time.Now().Add(-time.Hour)
	expired := models.Coupon{
		Code: "EXPIRED", Type: models.CouponTypeFixed, Value: 50,
		StartDate: time.Now().Add(-48 * time.Hour), EndDate: &end, IsActive: true,
	}
	require.NoError(t, db.Create(&expired).Error)

	future := models.Coupon{
		Code: "SOON", Type: models.CouponTypeFixed, Value: 50,
		StartDate: time.Now().Add(time.Hour), IsActive: true,
	}
	require.NoError(t, db.Create(&future).Error)

	minCart := models.Coupon{
		Code: "BIGCART", Type: models.CouponTypeFixed, Value: 50,
		MinCartValue: 1000, StartDate: time.Now().Add(-time.Hour), IsActive: true,
	}
	require.NoError(t, db.Create(&minCart).Error)

	_, err := svc.Validate("EXPIRED", 500)
	assert.ErrorIs(t, err, ErrCouponExpired)

	_, err = svc.Validate("SOON", 500)
	assert.ErrorIs(t, err, ErrCouponNotStarted)

	_, err = svc.Validate("BIGCART", 500)
	assert.ErrorIs(t, err, ErrCouponMinCart)

	resp, err := svc.Validate("BIGCART", 1500)
	require.NoError(t, err)
	assert.Equal(t, 50.0, resp.DiscountAmount)

	_, err = svc.Validate("NOSUCH", 500)
	assert.ErrorIs(t, err, ErrCouponNotFound)
}

func TestValidateCouponInactiveAndExhausted(t *testing.T) {
	db := newTestDB(t)
	svc := NewCouponService(db)

	inactive := models.Coupon{
		Code: "OFF", Type: models.CouponTypeFixed, Value: 50,
		StartDate: time.Now().Add(-time.Hour), IsActive: false,
	}
	require.NoError(t, db.Create(&inactive).Error)

	limit := 2
	used := models.Coupon{
		Code: "USEDUP", Type: models.CouponTypeFixed, Value: 50,
		StartDate: time.Now().Add(-time.Hour), UsageLimit: &limit, TimesUsed: 2, IsActive: true,
	}
	require.NoError(t, db.Create(&used).Error)

	_, err := svc.Validate("OFF", 500)
	assert.ErrorIs(t, err, ErrCouponInactive)

	_, err = svc.Validate("USEDUP", 500)
	assert.ErrorIs(t, err, ErrCouponExhausted)
}

func TestValidateDoesNotConsumeUse(t *testing.T) {
	db := newTestDB(t)
	svc := NewCouponService(db)

	coupon := models.Coupon{
		Code: "FREE50", Type: models.CouponTypeFixed, Value: 50,
		StartDate: time.Now().Add(-time.Hour), IsActive: true,
	}
	require.NoError(t, db.Create(&coupon).Error)

	_, err := svc.Validate("FREE50", 500)
	require.NoError(t, err)
	_, err = svc.Validate("free50", 500)
	require.NoError(t, err)

	var reloaded models.Coupon
	require.NoError(t, db.First(&reloaded, "id = ?", coupon.ID).Error)
	assert.Equal(t, 0, reloaded.TimesUsed)
}

func TestCreateCouponValidationAndDuplicates(t *testing.T) {
	db := newTestDB(t)
	svc := NewCouponService(db)

	created, err := svc.Create(&dto.CreateCouponRequest{Code: "welcome10", Type: models.CouponTypePercentage, Value: 10})
	require.NoError(t, err)
	assert.Equal(t, "WELCOME10", created.Code)
	assert.True(t, created.IsActive)

	_, err = svc.Create(&dto.CreateCouponRequest{Code: "WELCOME10", Type: models.CouponTypeFixed, Value: 50})
	assert.ErrorIs(t, err, ErrCouponTaken)

	_, err = svc.Create(&dto.CreateCouponRequest{Code: "BADTYPE", Type: "bogo", Value: 10})
	assert.ErrorIs(t, err, ErrInvalidCouponType)

	_, err = svc.Create(&dto.CreateCouponRequest{Code: "", Type: models.CouponTypeFixed, Value: 10})
	assert.ErrorIs(t, err, ErrMissingFields)
}
