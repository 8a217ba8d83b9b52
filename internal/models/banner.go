package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Banner is a promotional record; Extra carries whatever additional
// fields the storefront admin supplies.
type Banner struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string         `gorm:"size:255" json:"title,omitempty"`
	Subtitle  string         `gorm:"size:500" json:"subtitle,omitempty"`
	ImageURL  string         `gorm:"size:500" json:"image_url,omitempty"`
	LinkURL   string         `gorm:"size:500" json:"link_url,omitempty"`
	Extra     datatypes.JSON `json:"extra,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (b *Banner) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
