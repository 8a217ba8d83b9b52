package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/threadline-store/backend/internal/dto"
	"github.com/threadline-store/backend/internal/middleware"
	"github.com/threadline-store/backend/internal/services"
)

type OrderHandler struct {
	orders *services.OrderService
}

func NewOrderHandler(orders *services.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

func (h *OrderHandler) Create(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req dto.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "Invalid request body",
		})
	}

	order, err := h.orders.Create(user.ID, &req)
	if err != nil {
		return orderError(c, err, "Failed to create order")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "order": order})
}

func (h *OrderHandler) ListMine(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	orders, pagination, err := h.orders.ListUserOrders(user.ID, c.QueryInt("page", 1), c.QueryInt("limit", 20))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Success: false, Message: "Failed to fetch orders",
		})
	}
	return c.JSON(fiber.Map{"success": true, "orders": orders, "pagination": pagination})
}

func (h *OrderHandler) Get(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "Invalid order id",
		})
	}

	order, err := h.orders.Get(orderID, user.ID)
	if err != nil {
		return orderError(c, err, "Failed to fetch order")
	}
	return c.JSON(fiber.Map{"success": true, "order": order})
}

func (h *OrderHandler) AdminList(c *fiber.Ctx) error {
	orders, pagination, err := h.orders.ListAll(c.Query("status"), c.QueryInt("page", 1), c.QueryInt("limit", 20))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Success: false, Message: "Failed to fetch orders",
		})
	}
	return c.JSON(fiber.Map{"success": true, "orders": orders, "pagination": pagination})
}

func (h *OrderHandler) AdminGet(c *fiber.Ctx) error {
	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "Invalid order id",
		})
	}

	order, err := h.orders.Get(orderID, uuid.Nil)
	if err != nil {
		return orderError(c, err, "Failed to fetch order")
	}
	return c.JSON(fiber.Map{"success": true, "order": order})
}

func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "Invalid order id",
		})
	}

	var req dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "Invalid request body",
		})
	}

	order, err := h.orders.UpdateStatus(orderID, req.Status)
	if err != nil {
		return orderError(c, err, "Failed to update order status")
	}
	return c.JSON(fiber.Map{"success": true, "order": order})
}

func orderError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrCouponNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Success: false, Message: err.Error(),
		})
	case errors.Is(err, services.ErrNotOrderOwner):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Success: false, Message: err.Error(),
		})
	case errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrNoOrderItems),
		errors.Is(err, services.ErrMissingAddress),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrQuantityTooLow),
		errors.Is(err, services.ErrVariantNotFound),
		errors.Is(err, services.ErrProductUnavailable),
		errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrCouponInactive),
		errors.Is(err, services.ErrCouponNotStarted),
		errors.Is(err, services.ErrCouponExpired),
		errors.Is(err, services.ErrCouponExhausted),
		errors.Is(err, services.ErrCouponMinCart):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Success: false, Message: fallback,
	})
}
