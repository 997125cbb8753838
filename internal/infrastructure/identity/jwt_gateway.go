package identity

import (
	"context"
	"strings"

	"investor-service/internal/domain/actor"
	"investor-service/internal/pkg/jwt"
)

// JWTGateway verifies tokens signed with the secret shared with the auth
// service, avoiding a network round trip per request.
type JWTGateway struct {
	jwt jwt.Service
}

func NewJWTGateway(svc jwt.Service) *JWTGateway {
	return &JWTGateway{jwt: svc}
}

func (g *JWTGateway) ResolveCurrentUser(_ context.Context, credential string) (actor.Identity, error) {
	if strings.TrimSpace(credential) == "" {
		return actor.Identity{}, ErrInvalidCredential
	}

	claims, err := g.jwt.ValidateToken(credential)
	if err != nil {
		return actor.Identity{}, ErrInvalidCredential
	}
	return actor.Identity{UserID: claims.UserID, Role: actor.NormalizeRole(claims.Role)}, nil
}
