package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string     `gorm:"not null;size:255" json:"name"`
	Slug         string     `gorm:"not null;size:255;uniqueIndex" json:"slug"`
	Description  string     `gorm:"type:text" json:"description"`
	Brand        string     `gorm:"size:100" json:"brand,omitempty"`
	MRP          float64    `gorm:"not null" json:"mrp"`
	SellingPrice float64    `gorm:"not null" json:"selling_price"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	IsFeatured   bool       `gorm:"not null;default:false" json:"is_featured"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	Images     []ProductImage   `gorm:"foreignKey:ProductID" json:"images,omitempty"`
	Variants   []ProductVariant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`
	Categories []Category       `gorm:"many2many:product_categories" json:"categories,omitempty"`
	Tags       []Tag            `gorm:"many2many:product_tags" json:"tags,omitempty"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type ProductImage struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID    uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	ImageURL     string    `gorm:"not null;size:500" json:"image_url"`
	IsPrimary    bool      `gorm:"not null;default:false" json:"is_primary"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

func (i *ProductImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// ProductVariant is a sellable configuration of a product with its own
// stock count and optional price override.
type ProductVariant struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID     uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	SKUCode       string    `gorm:"not null;size:100;uniqueIndex" json:"sku_code"`
	Color         string    `gorm:"size:50" json:"color,omitempty"`
	Size          string    `gorm:"size:20" json:"size,omitempty"`
	StockQuantity int       `gorm:"not null;default:0;check:stock_quantity >= 0" json:"stock_quantity"`
	PriceOverride *float64  `json:"price_override,omitempty"`
	ImageURL      string    `gorm:"size:500" json:"image_url,omitempty"`
	IsActive      bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

func (v *ProductVariant) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// UnitPrice is the price a variant actually sells for.
func (v *ProductVariant) UnitPrice() float64 {
	if v.PriceOverride != nil {
		return *v.PriceOverride
	}
	return v.Product.SellingPrice
}

// ProductCategory mirrors the many2many join table so links can be
// written explicitly inside transactions.
type ProductCategory struct {
	ProductID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"product_id"`
	CategoryID uuid.UUID `gorm:"type:uuid;primaryKey" json:"category_id"`
}

type ProductTag struct {
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey" json:"product_id"`
	TagID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"tag_id"`
}
