package dto

import (
	"encoding/json"

	"github.com/google/uuid"
)

type OrderItemInput struct {
	VariantID uuid.UUID `json:"variant_id"`
	Quantity  int       `json:"quantity"`
}

type CreateOrderRequest struct {
	Items           []OrderItemInput `json:"items"`
	FromCart        bool             `json:"from_cart"`
	ShippingAddress json.RawMessage  `json:"shipping_address"`
	PaymentMethod   string           `json:"payment_method"`
	CouponCode      string           `json:"coupon_code"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}
