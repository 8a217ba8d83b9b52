package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/threadline-store/backend/internal/dto"
	"github.com/threadline-store/backend/internal/services"
)

type BannerHandler struct {
	banners *services.BannerService
}

func NewBannerHandler(banners *services.BannerService) *BannerHandler {
	return &BannerHandler{banners: banners}
}

func (h *BannerHandler) List(c *fiber.Ctx) error {
	banners, err := h.banners.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Success: false, Message: "Failed to fetch banners",
		})
	}
	return c.JSON(fiber.Map{"success": true, "banners": banners})
}

func (h *BannerHandler) Create(c *fiber.Ctx) error {
	var req dto.BannerInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "Invalid request body",
		})
	}

	banner, err := h.banners.Create(&req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Success: false, Message: "Failed to create banner",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "banner": banner})
}

func (h *BannerHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "Invalid banner id",
		})
	}

	var req dto.BannerInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "Invalid request body",
		})
	}

	banner, err := h.banners.Update(id, &req)
	if err != nil {
		if errors.Is(err, services.ErrBannerNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Success: false, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Success: false, Message: "Failed to update banner",
		})
	}
	return c.JSON(fiber.Map{"success": true, "banner": banner})
}

func (h *BannerHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "Invalid banner id",
		})
	}

	if err := h.banners.Delete(id); err != nil {
		if errors.Is(err, services.ErrBannerNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Success: false, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Success: false, Message: "Failed to delete banner",
		})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Banner deleted"})
}
