package controllers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var requestValidator = validator.New()

// parseAndValidate decodes a JSON request body into out and runs struct
// validation. Returns false after writing the 400 response.
func parseAndValidate(c *fiber.Ctx, out interface{}, missingMsg string) bool {
	if err := c.BodyParser(out); err != nil {
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": missingMsg})
		return false
	}
	if err := requestValidator.Struct(out); err != nil {
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": missingMsg})
		return false
	}
	return true
}
