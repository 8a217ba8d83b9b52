package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/threadline-store/backend/internal/dto"
	"github.com/threadline-store/backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrVariantNotFound   = errors.New("product variant not found")
	ErrSlugTaken         = errors.New("product with this slug already exists")
	ErrSKUTaken          = errors.New("variant with this SKU already exists")
	ErrMissingFields     = errors.New("missing required fields: name, mrp, selling_price")
	ErrVariantMismatch   = errors.New("variant does not belong to the specified product")
	ErrStockValueMissing = errors.New("variant id and stock quantity are required")
)

// productSortKeys maps API sort keys to explicit ORDER BY clauses.
// Unrecognized keys fall back to creation time.
// Columns are qualified so category/tag joins cannot make them ambiguous.
var productSortKeys = map[string]string{
	"price_asc":  "products.selling_price ASC",
	"price_desc": "products.selling_price DESC",
	"name":       "products.name ASC",
	"newest":     "products.created_at DESC",
	"oldest":     "products.created_at ASC",
}

type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

func (s *CatalogService) ListProducts(f *dto.ProductFilters) (*dto.ProductListResponse, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}

	q := s.db.Model(&models.Product{}).Where("products.is_active = ?", true)

	if f.Featured != nil {
		q = q.Where("products.is_featured = ?", *f.Featured)
	}
	if f.MinPrice > 0 {
		q = q.Where("products.selling_price >= ?", f.MinPrice)
	}
	if f.MaxPrice > 0 {
		q = q.Where("products.selling_price <= ?", f.MaxPrice)
	}
	if f.Search != "" {
		pattern := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(products.name) LIKE ? OR LOWER(products.description) LIKE ?", pattern, pattern)
	}
	if f.Category != "" {
		q = q.Joins("JOIN product_categories pc ON pc.product_id = products.id").
			Joins("JOIN categories ON categories.id = pc.category_id").
			Where("categories.slug = ?", f.Category)
	}
	if f.Tag != "" {
		q = q.Joins("JOIN product_tags pt ON pt.product_id = products.id").
			Joins("JOIN tags ON tags.id = pt.tag_id").
			Where("tags.name = ?", f.Tag)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Distinct("products.id").Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	orderBy, ok := productSortKeys[f.Sort]
	if !ok {
		orderBy = "products.created_at DESC"
		if f.Order == "asc" {
			orderBy = "products.created_at ASC"
		}
	}

	// Category/tag joins can fan out; grouping by the PK dedupes the page.
	var products []models.Product
	if err := q.Group("products.id").
		Preload("Images").
		Preload("Categories").
		Order(orderBy).
		Offset((f.Page - 1) * f.Limit).
		Limit(f.Limit).
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	summaries := make([]dto.ProductSummary, 0, len(products))
	for i := range products {
		summaries = append(summaries, mapProductToSummary(&products[i]))
	}

	return &dto.ProductListResponse{
		Products:   summaries,
		Pagination: *paginate(f.Page, f.Limit, total),
	}, nil
}

func (s *CatalogService) GetProductBySlug(slug string) (*models.Product, error) {
	var product models.Product
	err := s.db.Where("slug = ? AND is_active = ?", slug, true).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC")
		}).
		Preload("Variants", "is_active = ?", true).
		Preload("Categories").
		Preload("Tags").
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	return &product, nil
}

// CreateProduct inserts the product and all dependent rows in a single
// transaction, so a partially constructed product is never observable.
func (s *CatalogService) CreateProduct(req *dto.CreateProductRequest) (*models.Product, error) {
	if req.Name == "" || req.MRP <= 0 || req.SellingPrice <= 0 {
		return nil, ErrMissingFields
	}

	product := models.Product{
		Name:         req.Name,
		Slug:         Slugify(req.Name),
		Description:  req.Description,
		Brand:        req.Brand,
		MRP:          req.MRP,
		SellingPrice: req.SellingPrice,
		IsActive:     true,
		IsFeatured:   req.IsFeatured,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrSlugTaken
			}
			return fmt.Errorf("failed to create product: %w", err)
		}

		for i, img := range req.Images {
			image := models.ProductImage{
				ProductID:    product.ID,
				ImageURL:     img.ImageURL,
				IsPrimary:    img.IsPrimary || i == 0,
				DisplayOrder: img.DisplayOrder,
			}
			if image.DisplayOrder == 0 {
				image.DisplayOrder = i
			}
			if err := tx.Create(&image).Error; err != nil {
				return fmt.Errorf("failed to add images: %w", err)
			}
		}

		for _, v := range req.Variants {
			variant := models.ProductVariant{
				ProductID:     product.ID,
				SKUCode:       v.SKUCode,
				Color:         v.Color,
				Size:          v.Size,
				StockQuantity: v.StockQuantity,
				PriceOverride: v.PriceOverride,
				ImageURL:      v.ImageURL,
				IsActive:      v.IsActive == nil || *v.IsActive,
			}
			if err := tx.Create(&variant).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return fmt.Errorf("%w: %s", ErrSKUTaken, v.SKUCode)
				}
				return fmt.Errorf("failed to add variants: %w", err)
			}
		}

		if err := replaceCategoryLinks(tx, product.ID, req.Categories); err != nil {
			return err
		}
		return replaceTagLinks(tx, product.ID, req.Tags)
	})
	if err != nil {
		return nil, err
	}

	return s.GetProductBySlug(product.Slug)
}

// UpdateProduct applies a partial update; the slug is regenerated only
// when the name changes, and category/tag links are replaced wholesale
// when provided.
func (s *CatalogService) UpdateProduct(id uuid.UUID, req *dto.UpdateProductRequest) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
		updates["slug"] = Slugify(*req.Name)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Brand != nil {
		updates["brand"] = *req.Brand
	}
	if req.MRP != nil {
		updates["mrp"] = *req.MRP
	}
	if req.SellingPrice != nil {
		updates["selling_price"] = *req.SellingPrice
	}
	if req.IsFeatured != nil {
		updates["is_featured"] = *req.IsFeatured
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&product).Updates(updates).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return ErrSlugTaken
				}
				return fmt.Errorf("failed to update product: %w", err)
			}
		}
		if req.Categories != nil {
			if err := tx.Where("product_id = ?", id).Delete(&models.ProductCategory{}).Error; err != nil {
				return fmt.Errorf("failed to clear category links: %w", err)
			}
			if err := replaceCategoryLinks(tx, id, *req.Categories); err != nil {
				return err
			}
		}
		if req.Tags != nil {
			if err := tx.Where("product_id = ?", id).Delete(&models.ProductTag{}).Error; err != nil {
				return fmt.Errorf("failed to clear tag links: %w", err)
			}
			if err := replaceTagLinks(tx, id, *req.Tags); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var updated models.Product
	if err := s.db.Preload("Images").Preload("Variants").Preload("Categories").Preload("Tags").
		First(&updated, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	return &updated, nil
}

// DeleteProduct soft-deletes by flipping is_active, preserving
// order-item history.
func (s *CatalogService) DeleteProduct(id uuid.UUID) error {
	result := s.db.Model(&models.Product{}).Where("id = ?", id).Update("is_active", false)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (s *CatalogService) GetProductVariants(productID uuid.UUID) ([]models.ProductVariant, error) {
	var variants []models.ProductVariant
	if err := s.db.Where("product_id = ? AND is_active = ?", productID, true).Find(&variants).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch variants: %w", err)
	}
	return variants, nil
}

// UpdateInventory is an admin-only absolute stock set. When a product
// id is supplied it must match the variant's owning product.
func (s *CatalogService) UpdateInventory(req *dto.UpdateInventoryRequest) (*models.ProductVariant, error) {
	if req.VariantID == uuid.Nil || req.Stock == nil {
		return nil, ErrStockValueMissing
	}

	var variant models.ProductVariant
	if err := s.db.First(&variant, "id = ?", req.VariantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVariantNotFound
		}
		return nil, fmt.Errorf("failed to fetch variant: %w", err)
	}

	if req.ProductID != nil && variant.ProductID != *req.ProductID {
		return nil, ErrVariantMismatch
	}

	if err := s.db.Model(&variant).Update("stock_quantity", *req.Stock).Error; err != nil {
		return nil, fmt.Errorf("failed to update inventory: %w", err)
	}
	return &variant, nil
}

func replaceCategoryLinks(tx *gorm.DB, productID uuid.UUID, categoryIDs []uuid.UUID) error {
	for _, catID := range categoryIDs {
		link := models.ProductCategory{ProductID: productID, CategoryID: catID}
		if err := tx.Create(&link).Error; err != nil {
			return fmt.Errorf("failed to add category link: %w", err)
		}
	}
	return nil
}

func replaceTagLinks(tx *gorm.DB, productID uuid.UUID, tagIDs []uuid.UUID) error {
	for _, tagID := range tagIDs {
		link := models.ProductTag{ProductID: productID, TagID: tagID}
		if err := tx.Create(&link).Error; err != nil {
			return fmt.Errorf("failed to add tag link: %w", err)
		}
	}
	return nil
}

func mapProductToSummary(p *models.Product) dto.ProductSummary {
	summary := dto.ProductSummary{
		ID:           p.ID,
		Name:         p.Name,
		Slug:         p.Slug,
		Description:  p.Description,
		Brand:        p.Brand,
		MRP:          p.MRP,
		SellingPrice: p.SellingPrice,
		IsFeatured:   p.IsFeatured,
		PrimaryImage: primaryImageURL(p.Images),
		Categories:   make([]dto.CategoryRef, 0, len(p.Categories)),
		CreatedAt:    p.CreatedAt,
	}
	for _, c := range p.Categories {
		summary.Categories = append(summary.Categories, dto.CategoryRef{ID: c.ID, Name: c.Name, Slug: c.Slug})
	}
	return summary
}

func primaryImageURL(images []models.ProductImage) string {
	for _, img := range images {
		if img.IsPrimary {
			return img.ImageURL
		}
	}
	if len(images) > 0 {
		return images[0].ImageURL
	}
	return ""
}
