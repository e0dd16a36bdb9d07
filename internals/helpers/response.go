package helper

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ✅ simple success response: {"success": true, "message": ...}
func Success(c *fiber.Ctx, message string) error {
	return SuccessWithData(c, fiber.StatusOK, message, "", nil)
}

// ✅ success with an attached payload under its own key, e.g. "book" or "user".
// The front end reads these keys directly, so they stay stable.
func SuccessWithData(c *fiber.Ctx, code int, message string, key string, data interface{}) error {
	body := fiber.Map{"success": true}
	if message != "" {
		body["message"] = message
	}
	if key != "" {
		body[key] = data
	}
	return c.Status(code).JSON(body)
}

// ❌ error response, always {"error": message} like the front end expects
func Error(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(fiber.Map{
		"error": message,
	})
}

// ❌ validation errors (validator.v10), 400 with a field → rule map
func ValidationError(c *fiber.Ctx, err error) error {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return Error(c, fiber.StatusBadRequest, "Invalid input")
	}

	details := make(map[string]string, len(ve))
	for _, fieldErr := range ve {
		details[fieldErr.Field()] = fieldErr.Tag()
	}

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   "validation failed",
		"details": details,
	})
}
