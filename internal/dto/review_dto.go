package dto

import (
	"time"

	"github.com/google/uuid"
)

type AddReviewRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
}

type ReviewResponse struct {
	ID                 uuid.UUID `json:"id"`
	UserID             uuid.UUID `json:"user_id"`
	UserName           string    `json:"user_name"`
	ProductID          uuid.UUID `json:"product_id"`
	Rating             int       `json:"rating"`
	Comment            string    `json:"comment,omitempty"`
	IsVerifiedPurchase bool      `json:"is_verified_purchase"`
	CreatedAt          time.Time `json:"created_at"`
}

type BannerInput struct {
	Title    string                 `json:"title"`
	Subtitle string                 `json:"subtitle"`
	ImageURL string                 `json:"image"`
	LinkURL  string                 `json:"link"`
	Extra    map[string]interface{} `json:"extra"`
}
