package dto

import "github.com/google/uuid"

type AddToCartRequest struct {
	VariantID uuid.UUID `json:"variant_id"`
	Quantity  int       `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type CartLine struct {
	CartItemID     uuid.UUID `json:"cart_item_id"`
	VariantID      uuid.UUID `json:"variant_id"`
	ProductID      uuid.UUID `json:"product_id"`
	ProductName    string    `json:"product_name"`
	ProductSlug    string    `json:"product_slug"`
	ProductImage   string    `json:"product_image,omitempty"`
	SKUCode        string    `json:"sku_code"`
	Color          string    `json:"color,omitempty"`
	Size           string    `json:"size,omitempty"`
	Price          float64   `json:"price"`
	MRP            float64   `json:"mrp"`
	Quantity       int       `json:"quantity"`
	StockAvailable int       `json:"stock_available"`
	InStock        bool      `json:"in_stock"`
	ItemTotal      float64   `json:"item_total"`
	IsActive       bool      `json:"is_active"`
}

type CartSummary struct {
	ItemsCount    int     `json:"items_count"`
	TotalQuantity int     `json:"total_quantity"`
	Subtotal      float64 `json:"subtotal"`
	Total         float64 `json:"total"`
}

type CartResponse struct {
	Items   []CartLine  `json:"items"`
	Summary CartSummary `json:"summary"`
}
