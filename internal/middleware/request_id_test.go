package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestRequestIDMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(RequestIDMiddleware())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	t.Run("valid caller id is echoed", func(t *testing.T) {
		id := uuid.New().String()
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("X-Request-ID", id)

		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, id, resp.Header.Get("X-Request-ID"))
	})

	t.Run("non-uuid header is replaced", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("X-Request-ID", "not-a-uuid")

		resp, err := app.Test(req)
		require.NoError(t, err)
		got := resp.Header.Get("X-Request-ID")
		require.NotEqual(t, "not-a-uuid", got)
		_, err = uuid.Parse(got)
		require.NoError(t, err)
	})

	t.Run("missing header gets a fresh id", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		_, err = uuid.Parse(resp.Header.Get("X-Request-ID"))
		require.NoError(t, err)
	})
}
