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
	ErrReviewNotFound  = errors.New("review not found")
	ErrNotReviewOwner  = errors.New("review belongs to another user")
	ErrAlreadyReviewed = errors.New("product already reviewed")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
)

type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

func (s *ReviewService) Add(userID uuid.UUID, req *dto.AddReviewRequest) (*dto.ReviewResponse, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	var product models.Product
	err := s.db.Where("is_active = ?", true).First(&product, "id = ?", req.ProductID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}

	verified, err := s.hasPurchased(userID, req.ProductID)
	if err != nil {
		return nil, err
	}

	review := models.Review{
		UserID:             userID,
		ProductID:          req.ProductID,
		Rating:             req.Rating,
		Comment:            req.Comment,
		IsVerifiedPurchase: verified,
	}
	if err := s.db.Create(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyReviewed
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch reviewer: %w", err)
	}
	resp := mapReview(&review, user.Name)
	return &resp, nil
}

// hasPurchased reports whether any of the user's order items resolve to
// a variant of the given product.
func (s *ReviewService) hasPurchased(userID, productID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN product_variants ON product_variants.id = order_items.variant_id").
		Where("orders.user_id = ? AND product_variants.product_id = ?", userID, productID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check purchase history: %w", err)
	}
	return count > 0, nil
}

func (s *ReviewService) ListByProduct(productID uuid.UUID) ([]dto.ReviewResponse, error) {
	var reviews []models.Review
	err := s.db.Where("product_id = ?", productID).
		Preload("User").
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reviews: %w", err)
	}

	out := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		out = append(out, mapReview(&reviews[i], reviews[i].User.Name))
	}
	return out, nil
}

func (s *ReviewService) Delete(userID, reviewID uuid.UUID) error {
	var review models.Review
	if err := s.db.First(&review, "id = ?", reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return fmt.Errorf("failed to fetch review: %w", err)
	}
	if review.UserID != userID {
		return ErrNotReviewOwner
	}

	if err := s.db.Delete(&review).Error; err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	return nil
}

func mapReview(r *models.Review, userName string) dto.ReviewResponse {
	return dto.ReviewResponse{
		ID:                 r.ID,
		UserID:             r.UserID,
		UserName:           userName,
		ProductID:          r.ProductID,
		Rating:             r.Rating,
		Comment:            r.Comment,
		IsVerifiedPurchase: r.IsVerifiedPurchase,
		CreatedAt:          r.CreatedAt,
	}
}
