package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/threadline-store/backend/internal/dto"
	"github.com/threadline-store/backend/internal/models"
	"gorm.io/gorm"
)

var ErrWishlistItemNotFound = errors.New("wishlist item not found")

type WishlistService struct {
	db *gorm.DB
}

func NewWishlistService(db *gorm.DB) *WishlistService {
	return &WishlistService{db: db}
}

// List returns the wishlist as flattened product summaries.
func (s *WishlistService) List(userID uuid.UUID) ([]dto.ProductSummary, error) {
	var items []models.WishlistItem
	err := s.db.Where("user_id = ?", userID).
		Preload("Product").
		Preload("Product.Images").
		Preload("Product.Categories").
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch wishlist: %w", err)
	}

	out := make([]dto.ProductSummary, 0, len(items))
	for i := range items {
		out = append(out, mapProductToSummary(&items[i].Product))
	}
	return out, nil
}

// Add puts a product on the wishlist. Adding a product that is already
// there is an idempotent success; the bool reports whether it was
// already present.
func (s *WishlistService) Add(userID, productID uuid.UUID) (bool, error) {
	var product models.Product
	err := s.db.Where("is_active = ?", true).First(&product, "id = ?", productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrProductNotFound
		}
		return false, fmt.Errorf("failed to fetch product: %w", err)
	}

	item := models.WishlistItem{UserID: userID, ProductID: productID}
	if err := s.db.Create(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return true, nil
		}
		return false, fmt.Errorf("failed to add to wishlist: %w", err)
	}
	return false, nil
}

func (s *WishlistService) Remove(userID, productID uuid.UUID) error {
	res := s.db.Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.WishlistItem{})
	if res.Error != nil {
		return fmt.Errorf("failed to remove from wishlist: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrWishlistItemNotFound
	}
	return nil
}
