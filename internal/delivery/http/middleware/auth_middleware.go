package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
)

const CtxCredentialKey = "credential"

// AuthMiddleware only requires a bearer credential to be present. Who the
// caller is gets resolved by the identity gateway inside each workflow.
type AuthMiddleware struct{}

func NewAuthMiddleware() *AuthMiddleware {
	return &AuthMiddleware{}
}

func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerTokenFromHeader(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Missing bearer credential", nil, nil)
		}

		c.Locals(CtxCredentialKey, token)
		return c.Next()
	}
}

// Credential returns the bearer credential stored by AuthMiddleware.
func Credential(c fiber.Ctx) (string, bool) {
	token, ok := c.Locals(CtxCredentialKey).(string)
	return token, ok && token != ""
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
