package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/threadline-store/backend/internal/dto"
	"github.com/threadline-store/backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrCouponNotFound    = errors.New("coupon not found")
	ErrCouponTaken       = errors.New("coupon code already exists")
	ErrCouponInactive    = errors.New("coupon is not active")
	ErrCouponNotStarted  = errors.New("coupon is not valid yet")
	ErrCouponExpired     = errors.New("coupon has expired")
	ErrCouponExhausted   = errors.New("coupon usage limit reached")
	ErrCouponMinCart     = errors.New("cart total below coupon minimum")
	ErrInvalidCouponType = errors.New("coupon type must be percentage or fixed")
)

type CouponService struct {
	db *gorm.DB
}

func NewCouponService(db *gorm.DB) *CouponService {
	return &CouponService{db: db}
}

// Discount computes the discount a coupon grants on cartTotal. Percentage
// coupons are capped at max_discount when set; the result never exceeds
// the cart total.
func Discount(c *models.Coupon, cartTotal float64) float64 {
	var discount float64
	switch c.Type {
	case models.CouponTypePercentage:
		discount = cartTotal * c.Value / 100
		if c.MaxDiscount != nil && discount > *c.MaxDiscount {
			discount = *c.MaxDiscount
		}
	case models.CouponTypeFixed:
		discount = c.Value
	}
	if discount > cartTotal {
		discount = cartTotal
	}
	return discount
}

// Validate checks a coupon against the current time and cartTotal and
// returns the applicable discount. It does not consume a use.
func (s *CouponService) Validate(code string, cartTotal float64) (*dto.ValidateCouponResponse, error) {
	coupon, err := s.lookup(s.db, code)
	if err != nil {
		return nil, err
	}
	if err := checkCouponUsable(coupon, cartTotal, time.Now()); err != nil {
		return nil, err
	}
	return &dto.ValidateCouponResponse{
		CouponID:       coupon.ID,
		Code:           coupon.Code,
		DiscountAmount: Discount(coupon, cartTotal),
	}, nil
}

// Apply validates the coupon inside tx and atomically consumes one use.
// Called from order placement so the increment joins the order transaction.
func (s *CouponService) Apply(tx *gorm.DB, code string, cartTotal float64) (*models.Coupon, float64, error) {
	coupon, err := s.lookup(tx, code)
	if err != nil {
		return nil, 0, err
	}
	if err := checkCouponUsable(coupon, cartTotal, time.Now()); err != nil {
		return nil, 0, err
	}

	query := tx.Model(&models.Coupon{}).Where("id = ?", coupon.ID)
	if coupon.UsageLimit != nil {
		query = query.Where("times_used < ?", *coupon.UsageLimit)
	}
	res := query.UpdateColumn("times_used", gorm.Expr("times_used + 1"))
	if res.Error != nil {
		return nil, 0, fmt.Errorf("failed to apply coupon: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, 0, ErrCouponExhausted
	}
	return coupon, Discount(coupon, cartTotal), nil
}

func (s *CouponService) List(page, limit int) ([]models.Coupon, *dto.Pagination, error) {
	var total int64
	if err := s.db.Model(&models.Coupon{}).Count(&total).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to count coupons: %w", err)
	}

	var coupons []models.Coupon
	pg := paginate(page, limit, total)
	err := s.db.Order("created_at DESC").
		Offset((pg.Page - 1) * pg.Limit).Limit(pg.Limit).
		Find(&coupons).Error
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch coupons: %w", err)
	}
	return coupons, pg, nil
}

func (s *CouponService) Create(req *dto.CreateCouponRequest) (*models.Coupon, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" || req.Value <= 0 {
		return nil, ErrMissingFields
	}
	if req.Type != models.CouponTypePercentage && req.Type != models.CouponTypeFixed {
		return nil, ErrInvalidCouponType
	}

	coupon := models.Coupon{
		Code:         code,
		Type:         req.Type,
		Value:        req.Value,
		MinCartValue: req.MinCartValue,
		MaxDiscount:  req.MaxDiscount,
		StartDate:    time.Now(),
		EndDate:      req.EndDate,
		UsageLimit:   req.UsageLimit,
		IsActive:     true,
	}
	if req.StartDate != nil {
		coupon.StartDate = *req.StartDate
	}

	if err := s.db.Create(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCouponTaken
		}
		return nil, fmt.Errorf("failed to create coupon: %w", err)
	}
	return &coupon, nil
}

func (s *CouponService) Update(id uuid.UUID, req *dto.UpdateCouponRequest) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := s.db.First(&coupon, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, fmt.Errorf("failed to fetch coupon: %w", err)
	}

	if req.IsActive != nil {
		if err := s.db.Model(&coupon).Update("is_active", *req.IsActive).Error; err != nil {
			return nil, fmt.Errorf("failed to update coupon: %w", err)
		}
	}
	return &coupon, nil
}

func (s *CouponService) Delete(id uuid.UUID) error {
	res := s.db.Delete(&models.Coupon{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete coupon: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrCouponNotFound
	}
	return nil
}

func (s *CouponService) lookup(tx *gorm.DB, code string) (*models.Coupon, error) {
	var coupon models.Coupon
	err := tx.Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).First(&coupon).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, fmt.Errorf("failed to fetch coupon: %w", err)
	}
	return &coupon, nil
}

func checkCouponUsable(c *models.Coupon, cartTotal float64, now time.Time) error {
	if !c.IsActive {
		return ErrCouponInactive
	}
	if now.Before(c.StartDate) {
		return ErrCouponNotStarted
	}
	if c.EndDate != nil && now.After(*c.EndDate) {
		return ErrCouponExpired
	}
	if c.UsageLimit != nil && c.TimesUsed >= *c.UsageLimit {
		return ErrCouponExhausted
	}
	if cartTotal < c.MinCartValue {
		return fmt.Errorf("%w: minimum cart value is %.2f", ErrCouponMinCart, c.MinCartValue)
	}
	return nil
}
