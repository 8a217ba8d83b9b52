package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/threadline-store/backend/internal/dto"
	"github.com/threadline-store/backend/internal/middleware"
	"github.com/threadline-store/backend/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "Invalid request body",
		})
	}

	resp, err := h.authService.AdminLogin(&req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Success: false, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Success: false, Message: "Internal server error",
		})
	}

	return c.JSON(fiber.Map{"success": true, "token": resp.Token, "user": resp.User})
}

// SyncUser upserts the authenticated identity into the users table.
func (h *AuthHandler) SyncUser(c *fiber.Ctx) error {
	claims := middleware.Identity(c)
	if claims == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Success: false, Message: "Unauthorized",
		})
	}

	var req dto.SyncUserRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Success: false, Message: "Invalid request body",
			})
		}
	}

	user, err := h.authService.SyncUser(claims, &req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: err.Error(),
		})
	}

	return c.JSON(fiber.Map{"success": true, "user": user})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Success: false, Message: "Unauthorized",
		})
	}
	return c.JSON(fiber.Map{"success": true, "user": user})
}
