package middleware

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"investor-service/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Use(NewAccessLogMiddleware(zap.NewNop()).Middleware())
	app.Use(NewErrorMiddleware(zap.NewNop()).Middleware())

	api := app.Group("/api", NewAuthMiddleware().Middleware())
	api.Get("/whoami", func(c fiber.Ctx) error {
		cred, _ := Credential(c)
		return response.Success(c, fiber.StatusOK, "", cred)
	})
	api.Get("/conflict", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusConflict, "already there", nil, errors.New("dup"))
	})
	api.Get("/boom", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusInternalServerError, "db password leaked", nil, errors.New("boom"))
	})
	api.Get("/panic", func(c fiber.Ctx) error {
		panic("unexpected")
	})
	return app
}

func decodeEnvelope(t *testing.T, app *fiber.App, path, auth string) (int, response.SemanticResponse) {
	t.Helper()

	req := httptest.NewRequest("GET", path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	var body response.SemanticResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestAuthMiddleware_Credential(t *testing.T) {
	app := newTestApp()

	status, body := decodeEnvelope(t, app, "/api/whoami", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, fiber.StatusUnauthorized, body.Status)

	status, _ = decodeEnvelope(t, app, "/api/whoami", "Basic abc")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, body = decodeEnvelope(t, app, "/api/whoami", "bearer  tok-123 ")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "tok-123", body.Data)
	assert.Equal(t, response.MessageOK, body.Message)
}

func TestErrorMiddleware_Envelope(t *testing.T) {
	app := newTestApp()

	status, body := decodeEnvelope(t, app, "/api/conflict", "Bearer t")
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "already there", body.Message)

	status, body = decodeEnvelope(t, app, "/api/boom", "Bearer t")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, response.MessageInternalServerError, body.Message)

	status, body = decodeEnvelope(t, app, "/api/panic", "Bearer t")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, response.MessageInternalServerError, body.Message)
}

func TestErrorHandler_UnknownRoute(t *testing.T) {
	app := newTestApp()

	status, body := decodeEnvelope(t, app, "/nowhere", "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, fiber.StatusNotFound, body.Status)
}
