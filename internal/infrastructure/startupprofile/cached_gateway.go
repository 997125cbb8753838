package startupprofile

import (
	"context"
	"time"

	"investor-service/internal/domain/startup"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Cache is the subset of the Redis cache the decorator needs.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// CachedGateway serves profile, team and milestone reads from the cache.
// Lookups that feed scoring (by owner, all, search) always hit the service.
type CachedGateway struct {
	next   Gateway
	cache  Cache
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedGateway(next Gateway, cache Cache, ttl time.Duration, logger *zap.Logger) *CachedGateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedGateway{next: next, cache: cache, ttl: ttl, logger: logger.Named("startupprofile.cache")}
}

func profileKey(id uuid.UUID) string    { return "startup:profile:" + id.String() }
func teamKey(id uuid.UUID) string       { return "startup:team:" + id.String() }
func milestonesKey(id uuid.UUID) string { return "startup:milestones:" + id.String() }

func (g *CachedGateway) GetByID(ctx context.Context, credential string, id uuid.UUID) (startup.Startup, error) {
	return readThrough(ctx, g, profileKey(id), func() (startup.Startup, error) {
		return g.next.GetByID(ctx, credential, id)
	})
}

func (g *CachedGateway) GetByOwningUser(ctx context.Context, credential string, userID uuid.UUID) (startup.Startup, error) {
	return g.next.GetByOwningUser(ctx, credential, userID)
}

func (g *CachedGateway) GetAll(ctx context.Context, credential string) ([]startup.Startup, error) {
	return g.next.GetAll(ctx, credential)
}

func (g *CachedGateway) SearchBySector(ctx context.Context, credential string, sector string) ([]startup.Startup, error) {
	return g.next.SearchBySector(ctx, credential, sector)
}

func (g *CachedGateway) GetTeam(ctx context.Context, credential string, startupID uuid.UUID) ([]startup.TeamMember, error) {
	return readThrough(ctx, g, teamKey(startupID), func() ([]startup.TeamMember, error) {
		return g.next.GetTeam(ctx, credential, startupID)
	})
}

func (g *CachedGateway) GetMilestones(ctx context.Context, credential string, startupID uuid.UUID) ([]startup.Milestone, error) {
	return readThrough(ctx, g, milestonesKey(startupID), func() ([]startup.Milestone, error) {
		return g.next.GetMilestones(ctx, credential, startupID)
	})
}

// Evict drops every cached entry for a startup.
func (g *CachedGateway) Evict(ctx context.Context, startupID uuid.UUID) error {
	return g.cache.Delete(ctx, profileKey(startupID), teamKey(startupID), milestonesKey(startupID))
}

func readThrough[T any](ctx context.Context, g *CachedGateway, key string, load func() (T, error)) (T, error) {
	var cached T
	hit, err := g.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		g.logger.Debug("cache read failed", zap.String("key", key), zap.Error(err))
	}
	if hit {
		return cached, nil
	}

	v, err := load()
	if err != nil {
		return v, err
	}
	if err := g.cache.SetJSON(ctx, key, v, g.ttl); err != nil {
		g.logger.Debug("cache write failed", zap.String("key", key), zap.Error(err))
	}
	return v, nil
}
