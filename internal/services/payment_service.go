package services

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"
	"github.com/threadline-store/backend/internal/config"
	"github.com/threadline-store/backend/internal/dto"
	"github.com/threadline-store/backend/internal/models"
	"github.com/threadline-store/backend/internal/payment"
)

var (
	ErrInvalidSignature = errors.New("payment signature verification failed")
	ErrOrderUnresolved  = errors.New("could not resolve order for payment")
)

type PaymentService struct {
	cfg     *config.Config
	gateway payment.Gateway
	orders  *OrderService
}

func NewPaymentService(cfg *config.Config, gateway payment.Gateway, orders *OrderService) *PaymentService {
	return &PaymentService{cfg: cfg, gateway: gateway, orders: orders}
}

// PaymentOrderResult carries both sides of a created payment order: the
// gateway order the client hands to Razorpay checkout, and our own
// order id for later verification.
type PaymentOrderResult struct {
	GatewayOrder *payment.Order `json:"razorpay_order"`
	DBOrderID    uuid.UUID      `json:"db_order_id"`
	Amount       float64        `json:"amount"`
	Currency     string         `json:"currency"`
	KeyID        string         `json:"key_id"`
}

// CreatePaymentOrder persists a pending order (stock decremented in the
// same transaction as the order write) and then creates the matching
// gateway order. The gateway call cannot join the database transaction,
// so a gateway failure is unwound by deleting the order and restocking.
func (s *PaymentService) CreatePaymentOrder(user *models.User, req *dto.CreatePaymentOrderRequest) (*PaymentOrderResult, error) {
	order, err := s.orders.Create(user.ID, &dto.CreateOrderRequest{
		Items:           req.Items,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   "razorpay",
		CouponCode:      req.CouponCode,
	})
	if err != nil {
		return nil, err
	}

	gatewayOrder, err := s.gateway.CreateOrder(&payment.OrderRequest{
		Amount:   int64(math.Round(order.FinalAmount * 100)),
		Currency: "INR",
		Receipt:  fmt.Sprintf("order_%s", order.ID),
		Notes: map[string]string{
			"db_order_id": order.ID.String(),
			"user_id":     user.ID.String(),
		},
	})
	if err != nil {
		if cleanupErr := s.orders.DeleteAndRestock(order.ID); cleanupErr != nil {
			slog.Error("failed to unwind order after gateway failure",
				"order_id", order.ID, "error", cleanupErr)
		}
		return nil, fmt.Errorf("failed to create payment order: %w", err)
	}

	return &PaymentOrderResult{
		GatewayOrder: gatewayOrder,
		DBOrderID:    order.ID,
		Amount:       order.FinalAmount,
		Currency:     "INR",
		KeyID:        s.cfg.RazorpayKeyID,
	}, nil
}

// VerifyPayment checks the checkout callback signature and marks the
// order paid. A bad signature leaves the order pending.
func (s *PaymentService) VerifyPayment(req *dto.VerifyPaymentRequest) (*models.Order, error) {
	ok := payment.VerifyPaymentSignature(
		req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature,
		s.cfg.RazorpayKeySecret,
	)
	if !ok {
		return nil, ErrInvalidSignature
	}

	orderID, err := s.resolveOrderID(req)
	if err != nil {
		return nil, err
	}
	return s.orders.MarkPaid(orderID, req.RazorpayPaymentID)
}

// resolveOrderID prefers the db_order_id in the request body and falls
// back to the notes we attached to the gateway order at creation.
func (s *PaymentService) resolveOrderID(req *dto.VerifyPaymentRequest) (uuid.UUID, error) {
	if req.DBOrderID != nil {
		return *req.DBOrderID, nil
	}

	gatewayOrder, err := s.gateway.FetchOrder(req.RazorpayOrderID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrOrderUnresolved, err)
	}
	raw, ok := gatewayOrder.Notes["db_order_id"]
	if !ok {
		return uuid.Nil, ErrOrderUnresolved
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: bad db_order_id note", ErrOrderUnresolved)
	}
	return id, nil
}

// VerifyWebhook checks the X-Razorpay-Signature header against the raw
// request body.
func (s *PaymentService) VerifyWebhook(body []byte, signature string) bool {
	return payment.VerifyWebhookSignature(body, signature, s.cfg.RazorpayWebhookSecret)
}
