package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CouponTypePercentage = "percentage"
	CouponTypeFixed      = "fixed"
)

type Coupon struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Code         string     `gorm:"not null;size:50;uniqueIndex" json:"code"`
	Type         string     `gorm:"size:20;not null" json:"type"`
	Value        float64    `gorm:"not null" json:"value"`
	MinCartValue float64    `gorm:"not null;default:0" json:"min_cart_value"`
	MaxDiscount  *float64   `json:"max_discount,omitempty"`
	StartDate    time.Time  `gorm:"not null" json:"start_date"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	UsageLimit   *int       `json:"usage_limit,omitempty"`
	TimesUsed    int        `gorm:"not null;default:0" json:"times_used"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (c *Coupon) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
