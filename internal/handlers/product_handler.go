package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/threadline-store/backend/internal/dto"
	"github.com/threadline-store/backend/internal/services"
)

type ProductHandler struct {
	catalog *services.CatalogService
}

func NewProductHandler(catalog *services.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	filters := dto.ProductFilters{
		Page:     c.QueryInt("page", 1),
		Limit:    c.QueryInt("limit", 20),
		Category: c.Query("category"),
		Tag:      c.Query("tag"),
		MinPrice: c.QueryFloat("minPrice"),
		MaxPrice: c.QueryFloat("maxPrice"),
		Sort:     c.Query("sort"),
		Order:    c.Query("order"),
		Search:   c.Query("search"),
	}
	if c.Query("featured") != "" {
		featured := c.QueryBool("featured")
		filters.Featured = &featured
	}

	resp, err := h.catalog.ListProducts(&filters)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Success: false, Message: "Failed to fetch products",
		})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"products":   resp.Products,
		"pagination": resp.Pagination,
	})
}

func (h *ProductHandler) GetBySlug(c *fiber.Ctx) error {
	product, err := h.catalog.GetProductBySlug(c.Params("slug"))
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Success: false, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Success: false, Message: "Failed to fetch product",
		})
	}
	return c.JSON(fiber.Map{"success": true, "product": product})
}

func (h *ProductHandler) GetVariants(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "Invalid product id",
		})
	}

	variants, err := h.catalog.GetProductVariants(productID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Success: false, Message: "Failed to fetch variants",
		})
	}
	return c.JSON(fiber.Map{"success": true, "variants": variants})
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "Invalid request body",
		})
	}

	product, err := h.catalog.CreateProduct(&req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSlugTaken), errors.Is(err, services.ErrSKUTaken):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Success: false, Message: err.Error(),
			})
		case errors.Is(err, services.ErrMissingFields):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Success: false, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Success: false, Message: "Failed to create product",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "product": product})
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "Invalid product id",
		})
	}

	var req dto.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "Invalid request body",
		})
	}

	product, err := h.catalog.UpdateProduct(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProductNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Success: false, Message: err.Error(),
			})
		case errors.Is(err, services.ErrSlugTaken):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Success: false, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Success: false, Message: "Failed to update product",
		})
	}
	return c.JSON(fiber.Map{"success": true, "product": product})
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "Invalid product id",
		})
	}

	if err := h.catalog.DeleteProduct(id); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Success: false, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Success: false, Message: "Failed to delete product",
		})
	}
	return c.JSON(fiber.Map{"success": true, "message": "Product deleted"})
}

// UpdateInventory sets a variant's absolute stock level.
func (h *ProductHandler) UpdateInventory(c *fiber.Ctx) error {
	var req dto.UpdateInventoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false, Message: "Invalid request body",
		})
	}

	variant, err := h.catalog.UpdateInventory(&req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrVariantNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Success: false, Message: err.Error(),
			})
		case errors.Is(err, services.ErrStockValueMissing), errors.Is(err, services.ErrVariantMismatch):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Success: false, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Success: false, Message: "Failed to update inventory",
		})
	}
	return c.JSON(fiber.Map{"success": true, "variant": variant})
}
