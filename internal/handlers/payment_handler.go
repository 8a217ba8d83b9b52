package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/threadline-store/backend/internal/dto"
	"github.com/threadline-store/backend/internal/middleware"
	"github.com/threadline-store/backend/internal/services"
)

type PaymentHandler struct {
	payments *services.PaymentService
}

func NewPaymentHandler(payments *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// CreateOrder persists a pending order and returns the matching gateway
// order for the client checkout widget.
func (h *PaymentHandler) CreateOrder(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req dto.CreatePaymentOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "Invalid request body",
		})
	}

	result, err := h.payments.CreatePaymentOrder(user, &req)
	if err != nil {
		return orderError(c, err, "Failed to create payment order")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":        true,
		"razorpay_order": result.GatewayOrder,
		"db_order_id":    result.DBOrderID,
		"amount":         result.Amount,
		"currency":       result.Currency,
		"key_id":         result.KeyID,
	})
}

// Verify checks the checkout callback signature and marks the order
// paid. A bad signature is a 400; the order stays pending.
func (h *PaymentHandler) Verify(c *fiber.Ctx) error {
	var req dto.VerifyPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "Invalid request body",
		})
	}

	order, err := h.payments.VerifyPayment(&req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidSignature):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Success: false, Message: err.Error(),
			})
		case errors.Is(err, services.ErrOrderUnresolved),
			errors.Is(err, services.ErrOrderNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Success: false, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Success: false, Message: "Failed to verify payment",
		})
	}

	return c.JSON(fiber.Map{"success": true, "order": order})
}

// Webhook authenticates gateway notifications against the raw body and
// acknowledges them. Processing is driven by the verify endpoint; the
// webhook is an audit trail.
func (h *PaymentHandler) Webhook(c *fiber.Ctx) error {
	signature := c.Get("X-Razorpay-Signature")
	if !h.payments.VerifyWebhook(c.Body(), signature) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "Invalid webhook signature",
		})
	}

	slog.Info("payment webhook received", "bytes", len(c.Body()))
	return c.JSON(fiber.Map{"received": true})
}
