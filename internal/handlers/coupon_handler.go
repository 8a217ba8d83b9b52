package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/threadline-store/backend/internal/dto"
	"github.com/threadline-store/backend/internal/services"
)

type CouponHandler struct {
	coupons *services.CouponService
}

func NewCouponHandler(coupons *services.CouponService) *CouponHandler {
	return &CouponHandler{coupons: coupons}
}

func (h *CouponHandler) Validate(c *fiber.Ctx) error {
	var req dto.ValidateCouponRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "Invalid request body",
		})
	}

	resp, err := h.coupons.Validate(req.Code, req.CartTotal)
	if err != nil {
		return couponError(c, err, "Failed to validate coupon")
	}
	return c.JSON(fiber.Map{"success": true, "coupon": resp})
}

func (h *CouponHandler) List(c *fiber.Ctx) error {
	coupons, pagination, err := h.coupons.List(c.QueryInt("page", 1), c.QueryInt("limit", 20))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Success: false, Message: "Failed to fetch coupons",
		})
	}
	return c.JSON(fiber.Map{"success": true, "coupons": coupons, "pagination": pagination})
}

func (h *CouponHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateCouponRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "Invalid request body",
		})
	}

	coupon, err := h.coupons.Create(&req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCouponTaken):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Success: false, Message: err.Error(),
			})
		case errors.Is(err, services.ErrMissingFields),
			errors.Is(err, services.ErrInvalidCouponType):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Success: false, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Success: false, Message: "Failed to create coupon",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "coupon": coupon})
}

func (h *CouponHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "Invalid coupon id",
		})
	}

	var req dto.UpdateCouponRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "Invalid request body",
		})
	}

	coupon, err := h.coupons.Update(id, &req)
	if err != nil {
		if errors.Is(err, services.ErrCouponNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Success: false, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Success: false, Message: "Failed to update coupon",
		})
	}
	return c.JSON(fiber.Map{"success": true, "coupon": coupon})
}

func (h *CouponHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "Invalid coupon id",
		})
	}

	if err := h.coupons.Delete(id); err != nil {
		if errors.Is(err, services.ErrCouponNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Success: false, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Success: false, Message: "Failed to delete coupon",
		})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Coupon deleted"})
}

func couponError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrCouponNotFound),
		errors.Is(err, services.ErrCouponInactive):
		// Inactive coupons are indistinguishable from unknown ones.
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Success: false, Message: err.Error(),
		})
	case errors.Is(err, services.ErrCouponNotStarted),
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
