package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/xperttutor/user-service/internal/services"
)

// BearerAuth verifies the Authorization header, resolves the claims to a user
// record and stores it in Locals("user") for the handler.
func BearerAuth(tokens *services.TokenService, users *services.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := c.Get("Authorization")
		if auth == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "missing authorization header", "success": false})
		}

		claims, err := tokens.Verify(auth)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": err.Error(), "success": false})
		}

		u, err := users.GetByID(c.Context(), claims.ID)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "invalid token", "success": false})
		}

		c.Locals("user", u)
		return c.Next()
	}
}
