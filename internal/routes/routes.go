package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/threadline-store/backend/internal/config"
	"github.com/threadline-store/backend/internal/handlers"
	"github.com/threadline-store/backend/internal/middleware"
	"github.com/threadline-store/backend/internal/services"
	"gorm.io/gorm"
)

type Handlers struct {
	Auth     *handlers.AuthHandler
	User     *handlers.UserHandler
	Product  *handlers.ProductHandler
	Category *handlers.CategoryHandler
	Cart     *handlers.CartHandler
	Order    *handlers.OrderHandler
	Payment  *handlers.PaymentHandler
	Coupon   *handlers.CouponHandler
	Review   *handlers.ReviewHandler
	Wishlist *handlers.WishlistHandler
	Banner   *handlers.BannerHandler
	Health   *handlers.HealthHandler
}

// Setup mounts the API twice: versioned under /api/v1 and unversioned
// under /api, both serving the same route table.
func Setup(app *fiber.App, cfg *config.Config, db *gorm.DB, verifier services.TokenVerifier, h *Handlers) {
	api := app.Group("/api")
	api.Use(limiter.New(limiter.Config{
		Max:               cfg.RateLimitMax,
		Expiration:        cfg.RateLimitWindow,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	register(api.Group("/v1"), cfg, db, verifier, h)
	register(api, cfg, db, verifier, h)
}

func register(r fiber.Router, cfg *config.Config, db *gorm.DB, verifier services.TokenVerifier, h *Handlers) {
	identity := middleware.IdentityRequired(verifier, db)
	adminJWT := middleware.JWTProtected(cfg)
	admin := middleware.AdminRequired(db)

	r.Get("/health", h.Health.Check)

	// Auth. Login gets a stricter rate limit than the rest of the API.
	auth := r.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/login", h.Auth.AdminLogin)
	auth.Post("/sync", middleware.IdentityToken(verifier), h.Auth.SyncUser)
	auth.Get("/me", identity, h.Auth.Me)

	// Catalog, public reads.
	r.Get("/products", h.Product.List)
	r.Get("/products/:slug", h.Product.GetBySlug)
	r.Get("/products/:id/variants", h.Product.GetVariants)
	r.Get("/categories", h.Category.List)
	r.Get("/tags", h.Category.ListTags)
	r.Get("/banners", h.Banner.List)
	r.Get("/reviews/product/:productId", h.Review.ListByProduct)

	// Catalog, admin writes.
	r.Post("/products", adminJWT, admin, h.Product.Create)
	r.Patch("/products/:id", adminJWT, admin, h.Product.Update)
	r.Delete("/products/:id", adminJWT, admin, h.Product.Delete)
	r.Post("/inventory", adminJWT, admin, h.Product.UpdateInventory)
	r.Post("/categories", adminJWT, admin, h.Category.Create)
	r.Patch("/categories/:id", adminJWT, admin, h.Category.Update)
	r.Delete("/categories/:id", adminJWT, admin, h.Category.Delete)
	r.Post("/tags", adminJWT, admin, h.Category.CreateTag)
	r.Delete("/tags/:id", adminJWT, admin, h.Category.DeleteTag)
	r.Post("/banners", adminJWT, admin, h.Banner.Create)
	r.Patch("/banners/:id", adminJWT, admin, h.Banner.Update)
	r.Delete("/banners/:id", adminJWT, admin, h.Banner.Delete)

	// Cart, owner only.
	r.Get("/cart", identity, h.Cart.Get)
	r.Post("/cart", identity, h.Cart.Add)
	r.Patch("/cart/:itemId", identity, h.Cart.Update)
	r.Delete("/cart/:itemId", identity, h.Cart.Remove)
	r.Delete("/cart", identity, h.Cart.Clear)

	// Orders. Admin routes are registered before /orders/:id so the
	// literal "admin" segment is not captured as an order id.
	r.Get("/orders/admin", adminJWT, admin, h.Order.AdminList)
	r.Get("/orders/admin/:id", adminJWT, admin, h.Order.AdminGet)
	r.Patch("/orders/:id/status", adminJWT, admin, h.Order.UpdateStatus)
	r.Post("/orders", identity, h.Order.Create)
	r.Get("/orders", identity, h.Order.ListMine)
	r.Get("/orders/:id", identity, h.Order.Get)

	// Payments.
	r.Post("/payments/create-order", identity, h.Payment.CreateOrder)
	r.Post("/payments/verify", identity, h.Payment.Verify)
	r.Post("/payments/webhook", h.Payment.Webhook)

	// Coupons.
	r.Post("/coupons/validate", h.Coupon.Validate)
	r.Get("/coupons", adminJWT, admin, h.Coupon.List)
	r.Post("/coupons", adminJWT, admin, h.Coupon.Create)
	r.Patch("/coupons/:id", adminJWT, admin, h.Coupon.Update)
	r.Delete("/coupons/:id", adminJWT, admin, h.Coupon.Delete)

	// Reviews and wishlist, owner flows.
	r.Post("/reviews", identity, h.Review.Add)
	r.Delete("/reviews/:id", identity, h.Review.Delete)
	r.Get("/wishlist", identity, h.Wishlist.List)
	r.Post("/wishlist", identity, h.Wishlist.Add)
	r.Delete("/wishlist/:productId", identity, h.Wishlist.Remove)

	// Users.
	r.Get("/users/verify", identity, h.User.Verify)
	r.Get("/users", adminJWT, admin, h.User.List)
	r.Get("/users/:id", adminJWT, admin, h.User.Get)
	r.Patch("/users/:id", adminJWT, admin, h.User.Update)
	r.Delete("/users/:id", adminJWT, admin, h.User.Delete)
}
