package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/threadline-store/backend/internal/dto"
	"github.com/threadline-store/backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrNotOrderOwner  = errors.New("order belongs to another user")
	ErrEmptyCart      = errors.New("cart is empty")
	ErrNoOrderItems   = errors.New("order must contain at least one item")
	ErrMissingAddress = errors.New("shipping address is required")
	ErrInvalidStatus  = errors.New("invalid order status")
)

type OrderService struct {
	db      *gorm.DB
	coupons *CouponService
}

func NewOrderService(db *gorm.DB, coupons *CouponService) *OrderService {
	return &OrderService{db: db, coupons: coupons}
}

// orderLine pairs a requested quantity with the variant it resolves to.
type orderLine struct {
	variant  models.ProductVariant
	quantity int
}

// Create places an order from explicit items or the user's cart. The
// order row, its items, the per-line stock decrements, the optional
// coupon application and the cart clear all commit or roll back as one
// transaction. Stock decrements are conditional so two concurrent
// orders can never oversell a variant.
func (s *OrderService) Create(userID uuid.UUID, req *dto.CreateOrderRequest) (*models.Order, error) {
	if len(req.ShippingAddress) == 0 {
		return nil, ErrMissingAddress
	}

	var order *models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		lines, err := s.resolveLines(tx, userID, req)
		if err != nil {
			return err
		}

		var total float64
		items := make([]models.OrderItem, 0, len(lines))
		for _, line := range lines {
			price := line.variant.UnitPrice()
			total += price * float64(line.quantity)

			details, _ := json.Marshal(map[string]string{
				"color":    line.variant.Color,
				"size":     line.variant.Size,
				"sku_code": line.variant.SKUCode,
			})
			items = append(items, models.OrderItem{
				VariantID:      line.variant.ID,
				ProductName:    line.variant.Product.Name,
				VariantDetails: datatypes.JSON(details),
				Price:          price,
				Quantity:       line.quantity,
			})
		}

		discount := 0.0
		var couponID *uuid.UUID
		if req.CouponCode != "" {
			coupon, d, err := s.coupons.Apply(tx, req.CouponCode, total)
			if err != nil {
				return err
			}
			discount = d
			couponID = &coupon.ID
		}

		order = &models.Order{
			UserID:          userID,
			TotalAmount:     total,
			DiscountAmount:  discount,
			FinalAmount:     total - discount,
			CouponID:        couponID,
			Status:          models.OrderStatusPending,
			PaymentStatus:   models.PaymentStatusPending,
			PaymentMethod:   req.PaymentMethod,
			ShippingAddress: datatypes.JSON(req.ShippingAddress),
			Items:           items,
		}
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for _, line := range lines {
			res := tx.Model(&models.ProductVariant{}).
				Where("id = ? AND stock_quantity >= ?", line.variant.ID, line.quantity).
				UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", line.quantity))
			if res.Error != nil {
				return fmt.Errorf("failed to decrement stock: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w for %s", ErrInsufficientStock, line.variant.SKUCode)
			}
		}

		if req.FromCart {
			if err := tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
				return fmt.Errorf("failed to clear cart: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// resolveLines turns the request into variant+quantity pairs, from the
// cart when from_cart is set, otherwise from the explicit item list.
func (s *OrderService) resolveLines(tx *gorm.DB, userID uuid.UUID, req *dto.CreateOrderRequest) ([]orderLine, error) {
	inputs := req.Items
	if req.FromCart {
		var cartItems []models.CartItem
		if err := tx.Where("user_id = ?", userID).Order("created_at ASC").Find(&cartItems).Error; err != nil {
			return nil, fmt.Errorf("failed to fetch cart: %w", err)
		}
		if len(cartItems) == 0 {
			return nil, ErrEmptyCart
		}
		inputs = make([]dto.OrderItemInput, 0, len(cartItems))
		for _, ci := range cartItems {
			inputs = append(inputs, dto.OrderItemInput{VariantID: ci.VariantID, Quantity: ci.Quantity})
		}
	}
	if len(inputs) == 0 {
		return nil, ErrNoOrderItems
	}

	ids := make([]uuid.UUID, 0, len(inputs))
	for _, in := range inputs {
		if in.Quantity < 1 {
			return nil, ErrQuantityTooLow
		}
		ids = append(ids, in.VariantID)
	}

	var variants []models.ProductVariant
	if err := tx.Preload("Product").Where("id IN ?", ids).Find(&variants).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch variants: %w", err)
	}
	byID := make(map[uuid.UUID]models.ProductVariant, len(variants))
	for _, v := range variants {
		byID[v.ID] = v
	}

	lines := make([]orderLine, 0, len(inputs))
	for _, in := range inputs {
		variant, ok := byID[in.VariantID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrVariantNotFound, in.VariantID)
		}
		if !variant.IsActive || !variant.Product.IsActive {
			return nil, fmt.Errorf("%w: %s", ErrProductUnavailable, variant.SKUCode)
		}
		if variant.StockQuantity < in.Quantity {
			return nil, fmt.Errorf("%w for %s: only %d available", ErrInsufficientStock, variant.SKUCode, variant.StockQuantity)
		}
		lines = append(lines, orderLine{variant: variant, quantity: in.Quantity})
	}
	return lines, nil
}

func (s *OrderService) ListUserOrders(userID uuid.UUID, page, limit int) ([]models.Order, *dto.Pagination, error) {
	var total int64
	if err := s.db.Model(&models.Order{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to count orders: %w", err)
	}

	var orders []models.Order
	pg := paginate(page, limit, total)
	err := s.db.Where("user_id = ?", userID).
		Preload("Items").
		Order("created_at DESC").
		Offset((pg.Page - 1) * pg.Limit).Limit(pg.Limit).
		Find(&orders).Error
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	return orders, pg, nil
}

// Get fetches an order and enforces ownership. Admin callers pass
// uuid.Nil as userID to skip the check.
func (s *OrderService) Get(orderID, userID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("Items").Preload("User").First(&order, "id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}
	if userID != uuid.Nil && order.UserID != userID {
		return nil, ErrNotOrderOwner
	}
	return &order, nil
}

func (s *OrderService) ListAll(status string, page, limit int) ([]models.Order, *dto.Pagination, error) {
	query := s.db.Model(&models.Order{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to count orders: %w", err)
	}

	var orders []models.Order
	pg := paginate(page, limit, total)
	err := query.Preload("Items").Preload("User").
		Order("created_at DESC").
		Offset((pg.Page - 1) * pg.Limit).Limit(pg.Limit).
		Find(&orders).Error
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	return orders, pg, nil
}

func (s *OrderService) UpdateStatus(orderID uuid.UUID, status string) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, ErrInvalidStatus
	}

	var order models.Order
	if err := s.db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}

	if err := s.db.Model(&order).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	return &order, nil
}

// MarkPaid records a successful payment capture.
func (s *OrderService) MarkPaid(orderID uuid.UUID, transactionID string) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}

	updates := map[string]any{
		"status":         models.OrderStatusPlaced,
		"payment_status": models.PaymentStatusSuccess,
		"transaction_id": transactionID,
	}
	if err := s.db.Model(&order).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to mark order paid: %w", err)
	}
	return &order, nil
}

// DeleteAndRestock removes an order and returns its stock. Only used to
// unwind a pending order whose payment gateway call failed; the gateway
// call itself cannot join the placing transaction.
func (s *OrderService) DeleteAndRestock(orderID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var items []models.OrderItem
		if err := tx.Where("order_id = ?", orderID).Find(&items).Error; err != nil {
			return fmt.Errorf("failed to fetch order items: %w", err)
		}
		for _, item := range items {
			err := tx.Model(&models.ProductVariant{}).
				Where("id = ?", item.VariantID).
				UpdateColumn("stock_quantity", gorm.Expr("stock_quantity + ?", item.Quantity)).Error
			if err != nil {
				return fmt.Errorf("failed to restock variant: %w", err)
			}
		}
		if err := tx.Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete order items: %w", err)
		}
		if err := tx.Delete(&models.Order{}, "id = ?", orderID).Error; err != nil {
			return fmt.Errorf("failed to delete order: %w", err)
		}
		return nil
	})
}
