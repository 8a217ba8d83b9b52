package middleware

import (
	"errors"
	"strings"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/threadline-store/backend/internal/config"
	"github.com/threadline-store/backend/internal/dto"
	"github.com/threadline-store/backend/internal/models"
	"github.com/threadline-store/backend/internal/services"
	"gorm.io/gorm"
)

// JWTProtected guards admin routes with the backend-issued HS256 token.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Success: false,
				Message: "Unauthorized: invalid or expired token",
			})
		},
	})
}

// IdentityToken verifies the bearer identity token and stores the claims
// in locals without requiring a matching user row. Used by the sync
// endpoint, which may be the user's first contact with the backend.
func IdentityToken(verifier services.TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := verifyBearer(c, verifier)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Success: false,
				Message: "Unauthorized: invalid identity token",
			})
		}
		c.Locals("identity", claims)
		return c.Next()
	}
}

// IdentityRequired verifies the bearer identity token and loads the
// matching user row into locals. Requests from identities that have not
// synced yet are rejected.
func IdentityRequired(verifier services.TokenVerifier, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := verifyBearer(c, verifier)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Success: false,
				Message: "Unauthorized: invalid identity token",
			})
		}

		var user models.User
		err = db.Where("firebase_uid = ?", claims.Sub).First(&user).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
					Success: false,
					Message: "Unauthorized: account not registered",
				})
			}
			return fiber.ErrInternalServerError
		}

		c.Locals("identity", claims)
		c.Locals("currentUser", &user)
		return c.Next()
	}
}

func verifyBearer(c *fiber.Ctx, verifier services.TokenVerifier) (*services.IdentityClaims, error) {
	header := c.Get(fiber.HeaderAuthorization)
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return nil, errors.New("missing bearer token")
	}
	return verifier.Verify(token)
}

// CurrentUser pulls the user loaded by IdentityRequired out of locals.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("currentUser").(*models.User)
	return user
}

// Identity pulls the verified claims out of locals.
func Identity(c *fiber.Ctx) *services.IdentityClaims {
	claims, _ := c.Locals("identity").(*services.IdentityClaims)
	return claims
}
