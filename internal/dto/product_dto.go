package dto

import (
	"time"

	"github.com/google/uuid"
)

type ProductFilters struct {
	Page     int
	Limit    int
	Category string
	Tag      string
	Featured *bool
	MinPrice float64
	MaxPrice float64
	Sort     string
	Order    string
	Search   string
}

type CategoryRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// ProductSummary is the list-view shape: primary image resolved,
// categories flattened.
type ProductSummary struct {
	ID           uuid.UUID     `json:"id"`
	Name         string        `json:"name"`
	Slug         string        `json:"slug"`
	Description  string        `json:"description"`
	Brand        string        `json:"brand,omitempty"`
	MRP          float64       `json:"mrp"`
	SellingPrice float64       `json:"selling_price"`
	IsFeatured   bool          `json:"is_featured"`
	PrimaryImage string        `json:"primary_image,omitempty"`
	Categories   []CategoryRef `json:"categories"`
	CreatedAt    time.Time     `json:"created_at"`
}

type ProductListResponse struct {
	Products   []ProductSummary `json:"products"`
	Pagination Pagination       `json:"pagination"`
}

type ImageInput struct {
	ImageURL     string `json:"image_url"`
	IsPrimary    bool   `json:"is_primary"`
	DisplayOrder int    `json:"display_order"`
}

type VariantInput struct {
	SKUCode       string   `json:"sku_code"`
	Color         string   `json:"color"`
	Size          string   `json:"size"`
	StockQuantity int      `json:"stock_quantity"`
	PriceOverride *float64 `json:"price_override"`
	ImageURL      string   `json:"image_url"`
	IsActive      *bool    `json:"is_active"`
}

type CreateProductRequest struct {
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Brand        string         `json:"brand"`
	MRP          float64        `json:"mrp"`
	SellingPrice float64        `json:"selling_price"`
	IsFeatured   bool           `json:"is_featured"`
	Categories   []uuid.UUID    `json:"categories"`
	Tags         []uuid.UUID    `json:"tags"`
	Images       []ImageInput   `json:"images"`
	Variants     []VariantInput `json:"variants"`
}

type UpdateProductRequest struct {
	Name         *string      `json:"name"`
	Description  *string      `json:"description"`
	Brand        *string      `json:"brand"`
	MRP          *float64     `json:"mrp"`
	SellingPrice *float64     `json:"selling_price"`
	IsFeatured   *bool        `json:"is_featured"`
	IsActive     *bool        `json:"is_active"`
	Categories   *[]uuid.UUID `json:"categories"`
	Tags         *[]uuid.UUID `json:"tags"`
}

type CreateCategoryRequest struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	ImageURL    string     `json:"image"`
	ParentID    *uuid.UUID `json:"parent_id"`
}

type UpdateCategoryRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	ImageURL    *string    `json:"image"`
	ParentID    *uuid.UUID `json:"parent_id"`
	IsActive    *bool      `json:"is_active"`
}

type UpdateInventoryRequest struct {
	ProductID *uuid.UUID `json:"productId"`
	VariantID uuid.UUID  `json:"variantId"`
	Stock     *int       `json:"stock"`
}
