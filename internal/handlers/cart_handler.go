package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/threadline-store/backend/internal/dto"
	"github.com/threadline-store/backend/internal/middleware"
	"github.com/threadline-store/backend/internal/services"
)

type CartHandler struct {
	cart *services.CartService
}

func NewCartHandler(cart *services.CartService) *CartHandler {
	return &CartHandler{cart: cart}
}

func (h *CartHandler) Get(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	cart, err := h.cart.GetCart(user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Success: false, Message: "Failed to fetch cart",
		})
	}
	return c.JSON(fiber.Map{"success": true, "cart": cart})
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req dto.AddToCartRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "Invalid request body",
		})
	}

	cart, err := h.cart.AddToCart(user.ID, req.VariantID, req.Quantity)
	if err != nil {
		return cartError(c, err, "Failed to add to cart")
	}
	return c.JSON(fiber.Map{"success": true, "cart": cart})
}

func (h *CartHandler) Update(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	itemID, err := uuid.Parse(c.Params("itemId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "Invalid cart item id",
		})
	}

	var req dto.UpdateCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "Invalid request body",
		})
	}

	cart, err := h.cart.UpdateCartItem(user.ID, itemID, req.Quantity)
	if err != nil {
		return cartError(c, err, "Failed to update cart")
	}
	return c.JSON(fiber.Map{"success": true, "cart": cart})
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	itemID, err := uuid.Parse(c.Params("itemId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "Invalid cart item id",
		})
	}

	cart, err := h.cart.RemoveFromCart(user.ID, itemID)
	if err != nil {
		return cartError(c, err, "Failed to remove from cart")
	}
	return c.JSON(fiber.Map{"success": true, "cart": cart})
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if err := h.cart.ClearCart(user.ID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Success: false, Message: "Failed to clear cart",
		})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Cart cleared"})
}

func cartError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrVariantNotFound),
		errors.Is(err, services.ErrCartItemNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Success: false, Message: err.Error(),
		})
	case errors.Is(err, services.ErrNotCartOwner):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Success: false, Message: err.Error(),
		})
	case errors.Is(err, services.ErrProductUnavailable),
		errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrQuantityTooLow):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: err.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Success: false, Message: fallback,
	})
}
