package middleware_test

import (
	"net/http/httptest"
	"testing"

	"addressable-resources/core/middleware/auth"
	"addressable-resources/core/middleware/rayid"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth(t *testing.T) {
	app := fiber.New()
	app.Use(auth.New(auth.Config{ApiKey: "secret"}))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	t.Run("Missing key", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Valid key", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(auth.HeaderName, "secret")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("Disabled", func(t *testing.T) {
		open := fiber.New()
		open.Use(auth.New(auth.Config{}))
		open.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
		resp, err := open.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}

func TestRayID(t *testing.T) {
	app := fiber.New()
	app.Use(rayid.New())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(rayid.LocalsKey).(string))
	})

	t.Run("Generated", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Header.Get(rayid.HeaderName))
	})

	t.Run("Propagated", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(rayid.HeaderName, "fixed-id")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, "fixed-id", resp.Header.Get(rayid.HeaderName))
	})
}
