package controllers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/validateai/ValidateAI/app/repository"
	"github.com/validateai/ValidateAI/internal/pkg/analysis"
	"github.com/validateai/ValidateAI/internal/pkg/billing"
	"github.com/validateai/ValidateAI/internal/pkg/cache"
	"github.com/validateai/ValidateAI/internal/pkg/database"
	"github.com/validateai/ValidateAI/internal/pkg/env"
	"github.com/validateai/ValidateAI/internal/pkg/search"
	"github.com/validateai/ValidateAI/internal/pkg/validation"
)

var (
	validationService *validation.Service
	billingService    *billing.Service

	userRepo       repository.UserRepository
	validationRepo repository.ValidationRepository
)

// InitializeAPIControllers wires the process-lifetime services. Repos stay
// nil without a configured database; the services degrade accordingly.
func InitializeAPIControllers() {
	var users repository.UserRepository
	var validations repository.ValidationRepository
	var events repository.SubscriptionEventRepository

	if db := database.GetDB(); db != nil {
		repository.InitializeFactory(db)
		factory := repository.GetGlobalFactory()
		users = factory.GetUserRepository()
		validations = factory.GetValidationRepository()
		events = factory.GetSubscriptionEventRepository()
	}

	validationService = validation.NewService(
		users,
		validations,
		search.NewAdapterFromEnv(),
		analysis.NewPipelineFromEnv(),
	)
	billingService = billing.NewService(
		users,
		events,
		billing.NewRazorpayClientFromEnv(),
		env.GetEnv("WEBHOOK_SECRET", ""),
	)
	userRepo = users
	validationRepo = validations
}

// ValidateRequest is the POST /api/validate body.
type ValidateRequest struct {
	Idea        string `json:"idea" validate:"required,max=4000"`
	AnonymousID string `json:"anonymousId" validate:"required,max=100"`
}

// HandleValidate runs one idea through the validation pipeline.
func HandleValidate(c *fiber.Ctx) error {
	var req ValidateRequest
	if !parseAndValidate(c, &req, "Missing required fields") {
		return nil
	}

	outcome, err := validationService.Validate(c.UserContext(), req.Idea, req.AnonymousID)
	if errors.Is(err, validation.ErrLimitReached) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Validation limit reached. Please upgrade to continue.",
		})
	}
	if err != nil {
		log.Printf("Validation pipeline error: %v", err)
		// Carry the fallback payload so the client can still render.
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":         "Validation failed. Please check your configuration.",
			"success":       false,
			"analysis":      outcome.Analysis,
			"searchResults": outcome.SearchResults,
		})
	}

	if userRepo != nil {
		_ = cache.Delete(cache.UserStatusKey(req.AnonymousID))
	}

	return c.JSON(fiber.Map{
		"analysis":      outcome.Analysis,
		"searchResults": outcome.SearchResults,
		"success":       true,
	})
}
