package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/threadline-store/backend/internal/dto"
	"github.com/threadline-store/backend/internal/middleware"
	"github.com/threadline-store/backend/internal/services"
)

type WishlistHandler struct {
	wishlist *services.WishlistService
}

func NewWishlistHandler(wishlist *services.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlist: wishlist}
}

func (h *WishlistHandler) List(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	products, err := h.wishlist.List(user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Success: false, Message: "Failed to fetch wishlist",
		})
	}
	return c.JSON(fiber.Map{"success": true, "products": products})
}

func (h *WishlistHandler) Add(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var req struct {
		ProductID uuid.UUID `json:"product_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "Invalid request body",
		})
	}

	alreadyThere, err := h.wishlist.Add(user.ID, req.ProductID)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Success: false, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Success: false, Message: "Failed to add to wishlist",
		})
	}

	message := "Added to wishlist"
	if alreadyThere {
		message = "Already in wishlist"
	}
	return c.JSON(fiber.Map{"success": true, "message": message})
}

func (h *WishlistHandler) Remove(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	productID, err := uuid.Parse(c.Params("productId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "Invalid product id",
		})
	}

	if err := h.wishlist.Remove(user.ID, productID); err != nil {
		if errors.Is(err, services.ErrWishlistItemNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Success: false, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Success: false, Message: "Failed to remove from wishlist",
		})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Removed from wishlist"})
}
