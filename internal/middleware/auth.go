package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/PiyushPb/vichar-backend/internal/utils"
)

// Locals keys populated by RequireAuth.
const (
	LocalUserID   = "user_id"
	LocalUsername = "username"
)

// RequireAuth validates the Authorization bearer token and injects the
// caller's identity into the request context.
func RequireAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Unauthorized access",
			})
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		claims, err := utils.ParseSessionToken(token, secret)
		if err != nil {
			if errors.Is(err, utils.ErrTokenExpired) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"success": false,
					"message": "Session Expired",
				})
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": err.Error(),
			})
		}

		c.Locals(LocalUserID, claims.ID)
		c.Locals(LocalUsername, claims.Username)
		return c.Next()
	}
}
