package entitlements

import (
	"github.com/validateai/ValidateAI/app/models"
)

// CanValidate decides whether a user may run another validation. Paid
// users are gated by their credit balance; free users by the trial
// counter. This is a pure function over the row the caller already holds;
// the consuming mutation lives in the user repository.
func CanValidate(u *models.User) bool {
	if u == nil {
		return false
	}
	if u.IsPaid {
		return u.ValidationCredits > 0
	}
	return u.ValidationCount < models.FreeValidationLimit
}

// RemainingFree returns how many free-tier validations are left.
func RemainingFree(u *models.User) int {
	if u == nil {
		return models.FreeValidationLimit
	}
	remaining := models.FreeValidationLimit - u.ValidationCount
	if remaining < 0 {
		return 0
	}
	return remaining
}
