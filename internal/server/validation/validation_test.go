package validation

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type testRequest struct {
	Name string `json:"name" validate:"required,min=3"`
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	app := fiber.New()
	v := validator.New()

	app.Post("/", DecorateWithBodyEx(v, func(c *fiber.Ctx, req *testRequest) error {
		return c.JSON(req)
	}))

	return app
}

func TestDecorateWithBodyEx(t *testing.T) {
	cases := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{"valid body", `{"name":"widget"}`, fiber.StatusOK},
		{"malformed json", `{"name":`, fiber.StatusBadRequest},
		{"validation failure", `{"name":"ab"}`, fiber.StatusBadRequest},
		{"missing field", `{}`, fiber.StatusBadRequest},
	}

	app := newTestApp(t)

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodPost, "/", strings.NewReader(tc.body))
			req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

			resp, err := app.Test(req)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tc.expectedStatus {
				t.Fatalf("expected status %d, got %d", tc.expectedStatus, resp.StatusCode)
			}
		})
	}
}
