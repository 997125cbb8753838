package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"investor-service/internal/config"
	"investor-service/internal/database/migration"
	dbpostgres "investor-service/internal/database/postgres"
	"investor-service/internal/infrastructure/cache"
	"investor-service/internal/infrastructure/identity"
	"investor-service/internal/infrastructure/startupprofile"
	"investor-service/internal/pkg/jwt"
	"investor-service/internal/repository"
	"investor-service/internal/usecase"

	"go.uber.org/zap"
)

// Container owns the process-wide dependencies shared by the HTTP server
// and the background worker.
type Container struct {
	Config config.Config
	Logger *zap.Logger
	DB     *dbpostgres.Pool
	Cache  *cache.Redis

	Startups *startupprofile.CachedGateway

	Investors   repository.InvestorRepository
	Connections repository.ConnectionRepository
	Meetings    repository.MeetingRepository
	Results     repository.MatchingResultRepository

	Actors *usecase.ActorResolver
}

func NewContainer(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(connectCtx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	runner := migration.Runner{Dir: cfg.Database.MigrationsDir, Logger: logger.Named("migration")}
	if err := runner.Run(ctx, db.SQLDB()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	ids, err := newIdentityGateway(cfg.Identity, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	redis := cache.NewRedis(ctx, cfg.Redis, logger)
	startups := startupprofile.NewCachedGateway(
		startupprofile.NewHTTPGateway(cfg.StartupService.URL, cfg.StartupService.Timeout, logger),
		redis,
		cfg.Redis.ProfileTTL,
		logger,
	)

	investors := repository.NewPostgresInvestorRepository(db)

	return &Container{
		Config:      cfg,
		Logger:      logger,
		DB:          db,
		Cache:       redis,
		Startups:    startups,
		Investors:   investors,
		Connections: repository.NewPostgresConnectionRepository(db),
		Meetings:    repository.NewPostgresMeetingRepository(db),
		Results:     repository.NewPostgresMatchingResultRepository(db),
		Actors:      usecase.NewActorResolver(ids, investors, startups),
	}, nil
}

func newIdentityGateway(cfg config.IdentityConfig, logger *zap.Logger) (identity.Gateway, error) {
	switch cfg.Mode {
	case config.IdentityModeRemote:
		return identity.NewHTTPGateway(cfg.AuthURL, cfg.Timeout, logger), nil
	case config.IdentityModeJWT:
		return identity.NewJWTGateway(jwt.NewHMACService(cfg.JWTSecret, 0)), nil
	default:
		return nil, fmt.Errorf("unknown identity mode %q", cfg.Mode)
	}
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
