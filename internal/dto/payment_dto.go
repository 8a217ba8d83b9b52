package dto

import (
	"encoding/json"

	"github.com/google/uuid"
)

type CreatePaymentOrderRequest struct {
	Items           []OrderItemInput `json:"items"`
	ShippingAddress json.RawMessage  `json:"shipping_address"`
	CouponCode      string           `json:"coupon_code"`
}

type VerifyPaymentRequest struct {
	RazorpayOrderID   string     `json:"razorpay_order_id"`
	RazorpayPaymentID string     `json:"razorpay_payment_id"`
	RazorpaySignature string     `json:"razorpay_signature"`
	DBOrderID         *uuid.UUID `json:"db_order_id"`
}

type PaymentUserDetails struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}
