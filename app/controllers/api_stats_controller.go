package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/validateai/ValidateAI/internal/pkg/statistics"
)

// HandleStats returns cached aggregate counters for operators.
func HandleStats(c *fiber.Ctx) error {
	if userRepo == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Database not configured",
		})
	}

	data, err := statistics.Collect()
	if err != nil {
		log.Printf("Error collecting statistics: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to collect statistics",
		})
	}
	return c.JSON(data)
}
