package usecase

import (
	"context"
	"errors"

	"investor-service/internal/domain/actor"
	"investor-service/internal/infrastructure/identity"
	"investor-service/internal/infrastructure/startupprofile"
	"investor-service/internal/repository"
)

// ActorResolver turns a bearer credential into the caller's identity and,
// for role-gated operations, the caller's profile.
type ActorResolver struct {
	identity  identity.Gateway
	investors repository.InvestorRepository
	startups  startupprofile.Gateway
}

func NewActorResolver(id identity.Gateway, investors repository.InvestorRepository, startups startupprofile.Gateway) *ActorResolver {
	return &ActorResolver{identity: id, investors: investors, startups: startups}
}

// Identify resolves who the caller is without loading any profile.
func (r *ActorResolver) Identify(ctx context.Context, credential string) (actor.Identity, error) {
	id, err := r.identity.ResolveCurrentUser(ctx, credential)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredential) {
			return actor.Identity{}, ErrInvalidCredential
		}
		return actor.Identity{}, internal("resolve current user", err)
	}
	return id, nil
}

// Resolve loads the caller together with the profile matching their role.
// Callers whose role has no profile here resolve to actor.Other.
func (r *ActorResolver) Resolve(ctx context.Context, credential string) (actor.Actor, error) {
	id, err := r.Identify(ctx, credential)
	if err != nil {
		return nil, err
	}

	switch id.Role {
	case actor.RoleStartup:
		a, err := r.loadStartup(ctx, credential, id)
		if err != nil {
			return nil, err
		}
		return a, nil
	case actor.RoleInvestor:
		a, err := r.loadInvestor(ctx, id)
		if err != nil {
			return nil, err
		}
		return a, nil
	default:
		return actor.Other{ID: id}, nil
	}
}

// RequireStartup checks the role before looking up the profile, so a caller
// with another role gets ErrForbidden even when they have no profile.
func (r *ActorResolver) RequireStartup(ctx context.Context, credential string) (actor.Startup, error) {
	id, err := r.Identify(ctx, credential)
	if err != nil {
		return actor.Startup{}, err
	}
	if id.Role != actor.RoleStartup {
		return actor.Startup{}, ErrStartupRoleRequired
	}
	return r.loadStartup(ctx, credential, id)
}

func (r *ActorResolver) RequireInvestor(ctx context.Context, credential string) (actor.Investor, error) {
	id, err := r.Identify(ctx, credential)
	if err != nil {
		return actor.Investor{}, err
	}
	if id.Role != actor.RoleInvestor {
		return actor.Investor{}, ErrInvestorRoleRequired
	}
	return r.loadInvestor(ctx, id)
}

func (r *ActorResolver) loadStartup(ctx context.Context, credential string, id actor.Identity) (actor.Startup, error) {
	s, err := r.startups.GetByOwningUser(ctx, credential, id.UserID)
	if err != nil {
		if errors.Is(err, startupprofile.ErrNotFound) {
			return actor.Startup{}, ErrStartupProfileNotFound
		}
		return actor.Startup{}, internal("load startup profile", err)
	}
	return actor.Startup{ID: id, Profile: s}, nil
}

func (r *ActorResolver) loadInvestor(ctx context.Context, id actor.Identity) (actor.Investor, error) {
	inv, err := r.investors.FindByUserID(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return actor.Investor{}, ErrInvestorProfileNotFound
		}
		return actor.Investor{}, internal("load investor profile", err)
	}
	return actor.Investor{ID: id, Profile: inv}, nil
}
