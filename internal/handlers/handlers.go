package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/PiyushPb/vichar-backend/internal/middleware"
)

// callerID pulls the authenticated user's id out of the request context.
func callerID(c *fiber.Ctx) (primitive.ObjectID, bool) {
	raw, ok := c.Locals(middleware.LocalUserID).(string)
	if !ok || raw == "" {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

func unauthorized(c *fiber.Ctx) error {
	return fail(c, fiber.StatusUnauthorized, "Unauthorized")
}

func internalError(c *fiber.Ctx) error {
	return fail(c, fiber.StatusInternalServerError, "Internal server error. Please try again.")
}
