package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	OrderStatusPending    = "pending"
	OrderStatusPlaced     = "placed"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
	OrderStatusFailed     = "failed"
)

const (
	PaymentStatusPending  = "pending"
	PaymentStatusSuccess  = "success"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// orderStatuses are the values accepted by the admin status-update
// endpoint. "placed" is excluded: it is only set by payment verification.
var orderStatuses = map[string]bool{
	OrderStatusPending:    true,
	OrderStatusConfirmed:  true,
	OrderStatusProcessing: true,
	OrderStatusShipped:    true,
	OrderStatusDelivered:  true,
	OrderStatusCancelled:  true,
	OrderStatusFailed:     true,
}

func ValidOrderStatus(s string) bool {
	return orderStatuses[s]
}

type Order struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	TotalAmount     float64        `gorm:"not null" json:"total_amount"`
	DiscountAmount  float64        `gorm:"not null;default:0" json:"discount_amount"`
	FinalAmount     float64        `gorm:"not null" json:"final_amount"`
	CouponID        *uuid.UUID     `gorm:"type:uuid" json:"coupon_id,omitempty"`
	Status          string         `gorm:"size:20;not null;default:'pending';index" json:"status"`
	PaymentStatus   string         `gorm:"size:20;not null;default:'pending'" json:"payment_status"`
	PaymentMethod   string         `gorm:"size:20" json:"payment_method,omitempty"`
	TransactionID   string         `gorm:"size:100" json:"transaction_id,omitempty"`
	ShippingAddress datatypes.JSON `gorm:"not null" json:"shipping_address"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	User  User        `gorm:"foreignKey:UserID" json:"-"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// OrderItem is a frozen snapshot of what was bought: product name,
// variant attributes and unit price are captured at order time and
// never recomputed from the catalog.
type OrderItem struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"order_id"`
	VariantID      uuid.UUID      `gorm:"type:uuid;not null" json:"variant_id"`
	ProductName    string         `gorm:"not null;size:255" json:"product_name"`
	VariantDetails datatypes.JSON `json:"variant_details"`
	Price          float64        `gorm:"not null" json:"price"`
	Quantity       int            `gorm:"not null" json:"quantity"`
	CreatedAt      time.Time      `json:"created_at"`
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == uuid.Nil {
		oi.ID = uuid.New()
	}
	return nil
}
