package entitlements

import (
	"testing"

	"github.com/validateai/ValidateAI/app/models"
)

func TestCanValidate(t *testing.T) {
	tests := []struct {
		name string
		user *models.User
		want bool
	}{
		{name: "nil user", user: nil, want: false},
		{name: "fresh free user", user: &models.User{}, want: true},
		{name: "free user below limit", user: &models.User{ValidationCount: 2}, want: true},
		{name: "free user at limit", user: &models.User{ValidationCount: 3}, want: false},
		{name: "free user past limit", user: &models.User{ValidationCount: 7}, want: false},
		{name: "paid user with credits", user: &models.User{IsPaid: true, ValidationCredits: 1}, want: true},
		{name: "paid user without credits", user: &models.User{IsPaid: true, ValidationCredits: 0}, want: false},
		{name: "paid user ignores free counter", user: &models.User{IsPaid: true, ValidationCredits: 5, ValidationCount: 99}, want: true},
		{name: "unpaid user ignores credits", user: &models.User{IsPaid: false, ValidationCredits: 50, ValidationCount: 3}, want: false},
	}

	for _, tt := range tests {
		if got := CanValidate(tt.user); got != tt.want {
			t.Fatalf("%s: CanValidate() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestCanValidateMonotonicallyFalse(t *testing.T) {
	// Once the free counter reaches the limit, no larger counter value may
	// re-open the gate.
	for count := models.FreeValidationLimit; count < models.FreeValidationLimit+10; count++ {
		u := &models.User{ValidationCount: count}
		if CanValidate(u) {
			t.Fatalf("expected gate closed at validation_count=%d", count)
		}
	}
}

func TestRemainingFree(t *testing.T) {
	if got := RemainingFree(&models.User{ValidationCount: 1}); got != 2 {
		t.Fatalf("RemainingFree = %d, want 2", got)
	}
	if got := RemainingFree(&models.User{ValidationCount: 10}); got != 0 {
		t.Fatalf("RemainingFree = %d, want 0", got)
	}
}
