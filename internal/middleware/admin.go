package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/threadline-store/backend/internal/dto"
	"github.com/threadline-store/backend/internal/models"
	"gorm.io/gorm"
)

// AdminRequired checks the role claim of the token JWTProtected parsed
// and re-checks the role in the database, so a demoted admin loses
// access without waiting for token expiry.
func AdminRequired(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok || token == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Success: false, Message: "Unauthorized",
			})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Success: false, Message: "Invalid claims",
			})
		}

		role, _ := claims["role"].(string)
		sub, _ := claims["sub"].(string)
		if role != models.RoleAdmin || sub == "" {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Success: false, Message: "Admin access required",
			})
		}

		userID, err := uuid.Parse(sub)
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Success: false, Message: "Admin access required",
			})
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil || user.Role != models.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Success: false, Message: "Admin access required",
			})
		}

		c.Locals("adminUser", &user)
		return c.Next()
	}
}
