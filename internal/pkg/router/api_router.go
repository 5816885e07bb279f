package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/validateai/ValidateAI/app/controllers"
	"github.com/validateai/ValidateAI/internal/pkg/constants"
	"github.com/validateai/ValidateAI/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	// Initialize services once; they live for the process lifetime.
	controllers.InitializeAPIControllers()

	api := app.Group(constants.APIRoute, limiter.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	api.Post(constants.ValidateRoute, controllers.HandleValidate)

	api.Post(constants.SubscriptionCreateRoute, controllers.HandleSubscriptionCreate)
	api.Post(constants.SubscriptionVerifyRoute, controllers.HandleSubscriptionVerify)
	api.Post(constants.SubscriptionWebhookRoute, controllers.HandleSubscriptionWebhook)

	api.Post(constants.UserStatusRoute, controllers.HandleUserStatus)
	api.Post(constants.UserValidationsRoute, controllers.HandleUserValidations)

	api.Get(constants.StatsRoute, middleware.AdminKeyMiddleware(), controllers.HandleStats)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
