package dto

import (
	"time"

	"github.com/google/uuid"
)

type ValidateCouponRequest struct {
	Code      string  `json:"code"`
	CartTotal float64 `json:"cartTotal"`
}

type ValidateCouponResponse struct {
	CouponID       uuid.UUID `json:"coupon_id"`
	Code           string    `json:"code"`
	DiscountAmount float64   `json:"discount_amount"`
}

type CreateCouponRequest struct {
	Code         string     `json:"code"`
	Type         string     `json:"type"`
	Value        float64    `json:"value"`
	MinCartValue float64    `json:"min_cart_value"`
	MaxDiscount  *float64   `json:"max_discount"`
	StartDate    *time.Time `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	UsageLimit   *int       `json:"usage_limit"`
}

type UpdateCouponRequest struct {
	IsActive *bool `json:"is_active"`
}
