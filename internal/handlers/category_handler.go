package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/threadline-store/backend/internal/dto"
	"github.com/threadline-store/backend/internal/services"
)

type CategoryHandler struct {
	categories *services.CategoryService
	tags       *services.TagService
}

func NewCategoryHandler(categories *services.CategoryService, tags *services.TagService) *CategoryHandler {
	return &CategoryHandler{categories: categories, tags: tags}
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	categories, err := h.categories.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Success: false, Message: "Failed to fetch categories",
		})
	}
	return c.JSON(fiber.Map{"success": true, "categories": categories})
}

func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "Invalid request body",
		})
	}

	category, err := h.categories.Create(&req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCategoryTaken):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Success: false, Message: err.Error(),
			})
		case errors.Is(err, services.ErrNameRequired):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Success: false, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Success: false, Message: "Failed to create category",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "category": category})
}

func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "Invalid category id",
		})
	}

	var req dto.UpdateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "Invalid request body",
		})
	}

	category, err := h.categories.Update(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCategoryNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Success: false, Message: err.Error(),
			})
		case errors.Is(err, services.ErrCategoryTaken):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Success: false, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Success: false, Message: "Failed to update category",
		})
	}
	return c.JSON(fiber.Map{"success": true, "category": category})
}

func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "Invalid category id",
		})
	}

	if err := h.categories.Delete(id); err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Success: false, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Success: false, Message: "Failed to delete category",
		})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Category deleted"})
}

func (h *CategoryHandler) ListTags(c *fiber.Ctx) error {
	tags, err := h.tags.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Success: false, Message: "Failed to fetch tags",
		})
	}
	return c.JSON(fiber.Map{"success": true, "tags": tags})
}

func (h *CategoryHandler) CreateTag(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "Invalid request body",
		})
	}

	tag, err := h.tags.Create(req.Name)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTagTaken):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Success: false, Message: err.Error(),
			})
		case errors.Is(err, services.ErrNameRequired):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Success: false, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Success: false, Message: "Failed to create tag",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "tag": tag})
}

func (h *CategoryHandler) DeleteTag(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "Invalid tag id",
		})
	}

	if err := h.tags.Delete(id); err != nil {
		if errors.Is(err, services.ErrTagNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Success: false, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Success: false, Message: "Failed to delete tag",
		})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Tag deleted"})
}
