// Package identity resolves a caller's user id and role from the bearer
// credential forwarded by the client.
package identity

import (
	"context"
	"errors"

	"investor-service/internal/domain/actor"
)

var (
	// ErrInvalidCredential means the credential is malformed, expired or
	// rejected by the identity service.
	ErrInvalidCredential = errors.New("invalid credential")
	// ErrUnavailable means the identity service could not answer.
	ErrUnavailable = errors.New("identity service unavailable")
)

type Gateway interface {
	ResolveCurrentUser(ctx context.Context, credential string) (actor.Identity, error)
}
