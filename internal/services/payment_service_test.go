package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/threadline-store/backend/internal/config"
	"github.com/threadline-store/backend/internal/dto"
	"github.com/threadline-store/backend/internal/models"
	"github.com/threadline-store/backend/internal/payment"
	"gorm.io/gorm"
)

type stubGateway struct {
	createReq  *payment.OrderRequest
	createResp *payment.Order
	createErr  error
	fetchResp  *payment.Order
}

func (g *stubGateway) CreateOrder(req *payment.OrderRequest) (*payment.Order, error) {
	g.createReq = req
	if g.createErr != nil {
		return nil, g.createErr
	}
	return g.createResp, nil
}

func (g *stubGateway) FetchOrder(id string) (*payment.Order, error) {
	if g.fetchResp == nil {
		return nil, errors.New("not found")
	}
	return g.fetchResp, nil
}

func webhookSign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func paymentTestConfig() *config.Config {
	return &config.Config{
		RazorpayKeyID:         "rzp_test_key",
		RazorpayKeySecret:     "rzp_test_secret",
		RazorpayWebhookSecret: "rzp_webhook_secret",
	}
}

func newPaymentFixture(t *testing.T) (*gorm.DB, *stubGateway, *PaymentService, *models.User, *models.ProductVariant) {
	t.Helper()

	db := newTestDB(t)
	orders := NewOrderService(db, NewCouponService(db))
	gateway := &stubGateway{}
	svc := NewPaymentService(paymentTestConfig(), gateway, orders)

	user := createTestUser(t, db, models.RoleCustomer)
	_, variant := createTestProduct(t, db, "Paid Tee", 500, 400, 10)
	return db, gateway, svc, user, variant
}

func TestCreatePaymentOrderConvertsToPaise(t *testing.T) {
	db, gateway, svc, user, variant := newPaymentFixture(t)
	gateway.createResp = &payment.Order{ID: "order_RZP1", Status: "created"}

	result, err := svc.CreatePaymentOrder(user, &dto.CreatePaymentOrderRequest{
		Items:           []dto.OrderItemInput{{VariantID: variant.ID, Quantity: 2}},
		ShippingAddress: testAddress(),
	})
	require.NoError(t, err)

	require.NotNil(t, gateway.createReq)
	assert.Equal(t, int64(80000), gateway.createReq.Amount)
	assert.Equal(t, "INR", gateway.createReq.Currency)
	assert.Equal(t, "order_"+result.DBOrderID.String(), gateway.createReq.Receipt)
	assert.Equal(t, result.DBOrderID.String(), gateway.createReq.Notes["db_order_id"])
	assert.Equal(t, user.ID.String(), gateway.createReq.Notes["user_id"])
	assert.Equal(t, "rzp_test_key", result.KeyID)

	var order models.Order
	require.NoError(t, db.First(&order, "id = ?", result.DBOrderID).Error)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, "razorpay", order.PaymentMethod)
}

func TestCreatePaymentOrderGatewayFailureUnwinds(t *testing.T) {
	db, gateway, svc, user, variant := newPaymentFixture(t)
	gateway.createErr = errors.New("gateway down")

	_, err := svc.CreatePaymentOrder(user, &dto.CreatePaymentOrderRequest{
		Items:           []dto.OrderItemInput{{VariantID: variant.ID, Quantity: 3}},
		ShippingAddress: testAddress(),
	})
	require.Error(t, err)

	// The speculative order is gone and stock is back.
	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	var v models.ProductVariant
	require.NoError(t, db.First(&v, "id = ?", variant.ID).Error)
	assert.Equal(t, 10, v.StockQuantity)
}

func TestVerifyPaymentMarksOrderPlaced(t *testing.T) {
	db, gateway, svc, user, variant := newPaymentFixture(t)
	gateway.createResp = &payment.Order{ID: "order_RZP1", Status: "created"}

	result, err := svc.CreatePaymentOrder(user, &dto.CreatePaymentOrderRequest{
		Items:           []dto.OrderItemInput{{VariantID: variant.ID, Quantity: 1}},
		ShippingAddress: testAddress(),
	})
	require.NoError(t, err)

	sig := payment.SignPayment("order_RZP1", "pay_OK1", "rzp_test_secret")
	dbOrderID := result.DBOrderID
	order, err := svc.VerifyPayment(&dto.VerifyPaymentRequest{
		RazorpayOrderID:   "order_RZP1",
		RazorpayPaymentID: "pay_OK1",
		RazorpaySignature: sig,
		DBOrderID:         &dbOrderID,
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPlaced, order.Status)
	assert.Equal(t, models.PaymentStatusSuccess, order.PaymentStatus)
	assert.Equal(t, "pay_OK1", order.TransactionID)

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, "id = ?", dbOrderID).Error)
	assert.Equal(t, models.OrderStatusPlaced, reloaded.Status)
}

func TestVerifyPaymentResolvesOrderFromGatewayNotes(t *testing.T) {
	_, gateway, svc, user, variant := newPaymentFixture(t)
	gateway.createResp = &payment.Order{ID: "order_RZP1", Status: "created"}

	result, err := svc.CreatePaymentOrder(user, &dto.CreatePaymentOrderRequest{
		Items:           []dto.OrderItemInput{{VariantID: variant.ID, Quantity: 1}},
		ShippingAddress: testAddress(),
	})
	require.NoError(t, err)

	gateway.fetchResp = &payment.Order{
		ID:    "order_RZP1",
		Notes: map[string]string{"db_order_id": result.DBOrderID.String()},
	}

	sig := payment.SignPayment("order_RZP1", "pay_OK2", "rzp_test_secret")
	order, err := svc.VerifyPayment(&dto.VerifyPaymentRequest{
		RazorpayOrderID:   "order_RZP1",
		RazorpayPaymentID: "pay_OK2",
		RazorpaySignature: sig,
	})
	require.NoError(t, err)
	assert.Equal(t, result.DBOrderID, order.ID)
}

func TestVerifyPaymentBadSignatureLeavesOrderPending(t *testing.T) {
	db, gateway, svc, user, variant := newPaymentFixture(t)
	gateway.createResp = &payment.Order{ID: "order_RZP1", Status: "created"}

	result, err := svc.CreatePaymentOrder(user, &dto.CreatePaymentOrderRequest{
		Items:           []dto.OrderItemInput{{VariantID: variant.ID, Quantity: 1}},
		ShippingAddress: testAddress(),
	})
	require.NoError(t, err)

	dbOrderID := result.DBOrderID
	_, err = svc.VerifyPayment(&dto.VerifyPaymentRequest{
		RazorpayOrderID:   "order_RZP1",
		RazorpayPaymentID: "pay_BAD",
		RazorpaySignature: "forged",
		DBOrderID:         &dbOrderID,
	})
	assert.ErrorIs(t, err, ErrInvalidSignature)

	var order models.Order
	require.NoError(t, db.First(&order, "id = ?", dbOrderID).Error)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
}

func TestVerifyWebhook(t *testing.T) {
	_, _, svc, _, _ := newPaymentFixture(t)

	body := []byte(`{"event":"payment.captured"}`)
	sig := payment.SignPayment("", "", "rzp_webhook_secret")
	assert.False(t, svc.VerifyWebhook(body, sig))

	valid := webhookSign(body, "rzp_webhook_secret")
	assert.True(t, svc.VerifyWebhook(body, valid))
}
