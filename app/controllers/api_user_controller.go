package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/validateai/ValidateAI/app/models"
	"github.com/validateai/ValidateAI/internal/pkg/cache"
	"github.com/validateai/ValidateAI/internal/pkg/entitlements"
)

const (
	userStatusCacheTTL    = 30 * time.Second
	validationHistorySize = 20
)

// UserStatusRequest is the POST /api/user/status body.
type UserStatusRequest struct {
	AnonymousID string `json:"anonymousId" validate:"required,max=100"`
}

// UserStatusResponse mirrors the entitlement state the client renders.
type UserStatusResponse struct {
	ValidationCount   int  `json:"validationCount"`
	ValidationCredits int  `json:"validationCredits"`
	IsPaid            bool `json:"isPaid"`
	CanValidate       bool `json:"canValidate"`
}

// HandleUserStatus returns the quota state for an anonymous identifier.
func HandleUserStatus(c *fiber.Ctx) error {
	var req UserStatusRequest
	if !parseAndValidate(c, &req, "Anonymous ID is required") {
		return nil
	}

	if userRepo == nil {
		return c.JSON(fiber.Map{
			"validationCount":   0,
			"validationCredits": 0,
			"isPaid":            false,
			"canValidate":       true,
			"demo":              true,
			"message":           "Configure the database for real user tracking",
		})
	}

	cacheKey := cache.UserStatusKey(req.AnonymousID)
	if cached, err := cache.Get(cacheKey); err == nil && cached != "" {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(cached)
	}

	user, err := userRepo.GetByAnonymousID(req.AnonymousID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// First contact happens lazily on the first validation; until
			// then the visitor has the full free allowance.
			return c.JSON(UserStatusResponse{CanValidate: true})
		}
		log.Printf("Error fetching user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	resp := UserStatusResponse{
		ValidationCount:   user.ValidationCount,
		ValidationCredits: user.ValidationCredits,
		IsPaid:            user.IsPaid,
		CanValidate:       entitlements.CanValidate(user),
	}

	if encoded, err := json.Marshal(resp); err == nil {
		_ = cache.Set(cacheKey, string(encoded), userStatusCacheTTL)
	}
	return c.JSON(resp)
}

// UserValidationsRequest is the POST /api/user/validations body.
type UserValidationsRequest struct {
	AnonymousID string `json:"anonymousId" validate:"required,max=100"`
}

// ValidationItem is one history entry with the stored JSON payloads
// re-inlined for the client.
type ValidationItem struct {
	ID              string          `json:"id"`
	IdeaDescription string          `json:"idea_description"`
	Analysis        json.RawMessage `json:"analysis"`
	SearchResults   json.RawMessage `json:"searchResults"`
	Degraded        bool            `json:"degraded"`
	CreatedAt       time.Time       `json:"created_at"`
}

// HandleUserValidations returns the most recent validations, newest first.
func HandleUserValidations(c *fiber.Ctx) error {
	var req UserValidationsRequest
	if !parseAndValidate(c, &req, "Anonymous ID is required") {
		return nil
	}

	if userRepo == nil || validationRepo == nil {
		return c.JSON(fiber.Map{
			"validations": []ValidationItem{},
			"demo":        true,
			"message":     "Configure the database to store and retrieve validation history",
		})
	}

	user, err := userRepo.GetByAnonymousID(req.AnonymousID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(fiber.Map{"validations": []ValidationItem{}})
		}
		log.Printf("Error fetching user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	records, err := validationRepo.ListByUserID(user.ID, validationHistorySize)
	if err != nil {
		log.Printf("Error fetching validations: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	return c.JSON(fiber.Map{"validations": toValidationItems(records)})
}

func toValidationItems(records []models.Validation) []ValidationItem {
	items := make([]ValidationItem, 0, len(records))
	for _, r := range records {
		items = append(items, ValidationItem{
			ID:              r.UUID,
			IdeaDescription: r.IdeaDescription,
			Analysis:        json.RawMessage(r.AnalysisJSON),
			SearchResults:   json.RawMessage(r.SearchResultsJSON),
			Degraded:        r.Degraded,
			CreatedAt:       r.CreatedAt,
		})
	}
	return items
}
