package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests registerSwagger
// ──────────────────────────────────────────────────────────────────────────────

// Sin docs/swagger.json el servidor debe arrancar igual: el middleware no se
// monta y las demás rutas siguen respondiendo.
func TestRegisterSwagger_SinArchivo(t *testing.T) {
	app := fiber.New()
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	registered := registerSwagger(app, filepath.Join(t.TempDir(), "no-existe.json"))
	assert.False(t, registered)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRegisterSwagger_ConArchivo(t *testing.T) {
	specPath := filepath.Join(t.TempDir(), "swagger.json")
	spec := `{"swagger":"2.0","info":{"title":"Stock Ledger API","version":"1.0"},"paths":{}}`
	require.NoError(t, os.WriteFile(specPath, []byte(spec), 0o600))

	app := fiber.New()
	assert.True(t, registerSwagger(app, specPath))
}
