package controllers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAndValidate(t *testing.T) {
	app := fiber.New()
	app.Post("/t", func(c *fiber.Ctx) error {
		var req ValidateRequest
		if !parseAndValidate(c, &req, "Missing required fields") {
			return nil
		}
		return c.JSON(fiber.Map{"success": true})
	})

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "valid body",
			body:       `{"idea":"an idea","anonymousId":"anon-1"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing idea",
			body:       `{"anonymousId":"anon-1"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing anonymous id",
			body:       `{"idea":"an idea"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "idea over length limit",
			body:       `{"idea":"` + strings.Repeat("a", 4001) + `","anonymousId":"anon-1"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "anonymous id over length limit",
			body:       `{"idea":"an idea","anonymousId":"` + strings.Repeat("a", 101) + `"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed json",
			body:       `{"idea":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/t", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}
