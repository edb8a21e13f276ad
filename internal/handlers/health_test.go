package handlers_test

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/example/saluvia/internal/catalog"
	"github.com/example/saluvia/internal/handlers"
	"github.com/example/saluvia/internal/store/memstore"
)

func TestHealth(t *testing.T) {
	store := memstore.New()
	app := fiber.New()
	app.Get("/health", handlers.NewHealthHandler(catalog.NewService(store)).Check)

	var out map[string]any
	assert.Equal(t, fiber.StatusOK, get(t, app, "/health", &out))
	assert.Equal(t, map[string]any{"status": "ok"}, out)

	store.FailPing(errors.New("no primary"))
	out = nil
	assert.Equal(t, fiber.StatusServiceUnavailable, get(t, app, "/health", &out))
	assert.Equal(t, "unavailable", out["status"])
	assert.Contains(t, out["error"], "no primary")
}
