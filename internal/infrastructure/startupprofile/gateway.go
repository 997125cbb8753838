// Package startupprofile reads startup, team and milestone records from the
// startup service. Every call forwards the caller's credential.
package startupprofile

import (
	"context"
	"errors"

	"investor-service/internal/domain/startup"

	"github.com/google/uuid"
)

var (
	ErrNotFound    = errors.New("startup profile not found")
	ErrUnavailable = errors.New("startup service unavailable")
)

type Gateway interface {
	GetByID(ctx context.Context, credential string, id uuid.UUID) (startup.Startup, error)
	GetByOwningUser(ctx context.Context, credential string, userID uuid.UUID) (startup.Startup, error)
	GetAll(ctx context.Context, credential string) ([]startup.Startup, error)
	SearchBySector(ctx context.Context, credential string, sector string) ([]startup.Startup, error)
	GetTeam(ctx context.Context, credential string, startupID uuid.UUID) ([]startup.TeamMember, error)
	GetMilestones(ctx context.Context, credential string, startupID uuid.UUID) ([]startup.Milestone, error)
}
