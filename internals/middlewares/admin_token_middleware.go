package middlewares

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"

	"biblioteka_backend/internals/configs"
	"biblioteka_backend/internals/constants"
)

// AdminToken gates write routes behind the X-Admin-Token header.
// When ADMIN_TOKEN is not configured the gate stays open.
func AdminToken() fiber.Handler {
	return func(c *fiber.Ctx) error {
		expected := configs.AdminToken
		if expected == "" {
			return c.Next()
		}
		got := c.Get(constants.AdminTokenHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(expected)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid admin token",
			})
		}
		return c.Next()
	}
}
