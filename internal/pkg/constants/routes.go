package constants

// Static route constants
const (
	APIRoute                 = "/api"
	ValidateRoute            = "/validate"
	SubscriptionCreateRoute  = "/subscription/create"
	SubscriptionVerifyRoute  = "/subscription/verify"
	SubscriptionWebhookRoute = "/subscription/webhook"
	UserStatusRoute          = "/user/status"
	UserValidationsRoute     = "/user/validations"
	StatsRoute               = "/stats"
)
