package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/threadline-store/backend/internal/dto"
	"github.com/threadline-store/backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrCartItemNotFound   = errors.New("cart item not found")
	ErrNotCartOwner       = errors.New("cart item belongs to another user")
	ErrProductUnavailable = errors.New("product is not available")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrQuantityTooLow     = errors.New("quantity must be at least 1")
)

type CartService struct {
	db *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// GetCart returns the user's cart with per-line pricing and stock flags.
// Totals are computed on read, never persisted.
func (s *CartService) GetCart(userID uuid.UUID) (*dto.CartResponse, error) {
	var items []models.CartItem
	err := s.db.Where("user_id = ?", userID).
		Preload("Variant").
		Preload("Variant.Product").
		Preload("Variant.Product.Images").
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cart: %w", err)
	}

	resp := &dto.CartResponse{Items: make([]dto.CartLine, 0, len(items))}
	for _, item := range items {
		variant := item.Variant
		product := variant.Product
		price := variant.UnitPrice()
		lineTotal := price * float64(item.Quantity)

		resp.Items = append(resp.Items, dto.CartLine{
			CartItemID:     item.ID,
			VariantID:      variant.ID,
			ProductID:      product.ID,
			ProductName:    product.Name,
			ProductSlug:    product.Slug,
			ProductImage:   primaryImageURL(product.Images),
			SKUCode:        variant.SKUCode,
			Color:          variant.Color,
			Size:           variant.Size,
			Price:          price,
			MRP:            product.MRP,
			Quantity:       item.Quantity,
			StockAvailable: variant.StockQuantity,
			InStock:        variant.StockQuantity >= item.Quantity,
			ItemTotal:      lineTotal,
			IsActive:       product.IsActive && variant.IsActive,
		})

		resp.Summary.Subtotal += lineTotal
		resp.Summary.TotalQuantity += item.Quantity
	}
	resp.Summary.ItemsCount = len(resp.Items)
	resp.Summary.Total = resp.Summary.Subtotal
	return resp, nil
}

// AddToCart adds quantity of a variant; an existing (user, variant) row
// is incremented rather than duplicated, re-checking cumulative stock.
func (s *CartService) AddToCart(userID, variantID uuid.UUID, quantity int) (*dto.CartResponse, error) {
	if quantity < 1 {
		quantity = 1
	}

	var variant models.ProductVariant
	if err := s.db.Preload("Product").First(&variant, "id = ?", variantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVariantNotFound
		}
		return nil, fmt.Errorf("failed to fetch variant: %w", err)
	}

	if !variant.IsActive || !variant.Product.IsActive {
		return nil, ErrProductUnavailable
	}
	if variant.StockQuantity < quantity {
		return nil, fmt.Errorf("%w: only %d items available", ErrInsufficientStock, variant.StockQuantity)
	}

	var existing models.CartItem
	err := s.db.Where("user_id = ? AND variant_id = ?", userID, variantID).First(&existing).Error
	switch {
	case err == nil:
		newQuantity := existing.Quantity + quantity
		if variant.StockQuantity < newQuantity {
			return nil, fmt.Errorf("%w: only %d items available", ErrInsufficientStock, variant.StockQuantity)
		}
		if err := s.db.Model(&existing).Update("quantity", newQuantity).Error; err != nil {
			return nil, fmt.Errorf("failed to update cart: %w", err)
		}

	case errors.Is(err, gorm.ErrRecordNotFound):
		item := models.CartItem{UserID: userID, VariantID: variantID, Quantity: quantity}
		if err := s.db.Create(&item).Error; err != nil {
			return nil, fmt.Errorf("failed to add to cart: %w", err)
		}

	default:
		return nil, fmt.Errorf("failed to check cart: %w", err)
	}

	return s.GetCart(userID)
}

func (s *CartService) UpdateCartItem(userID, cartItemID uuid.UUID, quantity int) (*dto.CartResponse, error) {
	if quantity < 1 {
		return nil, ErrQuantityTooLow
	}

	var item models.CartItem
	err := s.db.Preload("Variant").Preload("Variant.Product").First(&item, "id = ?", cartItemID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, fmt.Errorf("failed to fetch cart item: %w", err)
	}

	if item.UserID != userID {
		return nil, ErrNotCartOwner
	}
	if !item.Variant.IsActive || !item.Variant.Product.IsActive {
		return nil, ErrProductUnavailable
	}
	if item.Variant.StockQuantity < quantity {
		return nil, fmt.Errorf("%w: only %d items available", ErrInsufficientStock, item.Variant.StockQuantity)
	}

	if err := s.db.Model(&item).Update("quantity", quantity).Error; err != nil {
		return nil, fmt.Errorf("failed to update cart: %w", err)
	}
	return s.GetCart(userID)
}

func (s *CartService) RemoveFromCart(userID, cartItemID uuid.UUID) (*dto.CartResponse, error) {
	var item models.CartItem
	if err := s.db.First(&item, "id = ?", cartItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, fmt.Errorf("failed to fetch cart item: %w", err)
	}
	if item.UserID != userID {
		return nil, ErrNotCartOwner
	}

	if err := s.db.Delete(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to remove from cart: %w", err)
	}
	return s.GetCart(userID)
}

func (s *CartService) ClearCart(userID uuid.UUID) error {
	if err := s.db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
