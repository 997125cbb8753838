package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"investor-service/internal/domain/investor"
	"investor-service/internal/domain/matching"
	"investor-service/internal/domain/startup"
	"investor-service/internal/infrastructure/startupprofile"
	"investor-service/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InvestorMatch is one investor scored against the caller's startup.
// MatchID is nil for ad-hoc scores that were not persisted.
type InvestorMatch struct {
	MatchID  *uuid.UUID
	Investor investor.Investor
	Result   matching.Result
	IsViewed bool
}

// StartupMatch is one startup scored against the caller's investor profile.
type StartupMatch struct {
	MatchID  *uuid.UUID
	Startup  startup.Startup
	Result   matching.Result
	IsViewed bool
}

type MatchingUsecase interface {
	MatchesForStartup(ctx context.Context, credential string) ([]InvestorMatch, error)
	MatchesForInvestor(ctx context.Context, credential string) ([]StartupMatch, error)
	Score(ctx context.Context, credential string, investorID uuid.UUID) (InvestorMatch, error)
	Recalculate(ctx context.Context, credential string) error
	SearchStartups(ctx context.Context, credential string, sector string) ([]StartupMatch, error)
}

type Matching struct {
	actors    *ActorResolver
	investors repository.InvestorRepository
	results   repository.MatchingResultRepository
	startups  startupprofile.Gateway
	logger    *zap.Logger
	now       func() time.Time
}

func NewMatchingUsecase(
	actors *ActorResolver,
	investors repository.InvestorRepository,
	results repository.MatchingResultRepository,
	startups startupprofile.Gateway,
	logger *zap.Logger,
) *Matching {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matching{
		actors:    actors,
		investors: investors,
		results:   results,
		startups:  startups,
		logger:    logger.Named("matching"),
		now:       time.Now,
	}
}

// MatchesForStartup scores every investor against the caller's startup,
// stores each score and returns the best TopN.
func (u *Matching) MatchesForStartup(ctx context.Context, credential string) ([]InvestorMatch, error) {
	caller, err := u.actors.RequireStartup(ctx, credential)
	if err != nil {
		return nil, err
	}

	all, err := u.investors.ListAll(ctx)
	if err != nil {
		return nil, internal("list investors", err)
	}

	at := u.now().UTC()
	facts := startupFacts(caller.Profile)
	out := make([]InvestorMatch, 0, len(all))
	for _, inv := range all {
		res := matching.Calculate(facts, investorFacts(inv))
		rec, err := u.results.Upsert(ctx, caller.StartupID(), inv.ID, res, at)
		if err != nil {
			return nil, internal("store matching result", err)
		}
		id := rec.ID
		out = append(out, InvestorMatch{MatchID: &id, Investor: inv, Result: res, IsViewed: rec.IsViewed})
	}

	u.logger.Info("startup matches computed",
		zap.String("startup_id", caller.StartupID().String()),
		zap.Int("investors", len(all)),
	)
	return matching.Rank(out, func(m InvestorMatch) int { return m.Result.Score }, matching.TopN), nil
}

// MatchesForInvestor scores every startup against the caller's profile and
// keeps only those reaching InvestorFloor.
func (u *Matching) MatchesForInvestor(ctx context.Context, credential string) ([]StartupMatch, error) {
	caller, err := u.actors.RequireInvestor(ctx, credential)
	if err != nil {
		return nil, err
	}

	all, err := u.startups.GetAll(ctx, credential)
	if err != nil {
		return nil, internal("list startups", err)
	}

	at := u.now().UTC()
	facts := investorFacts(caller.Profile)
	out := make([]StartupMatch, 0, len(all))
	for _, s := range all {
		res := matching.Calculate(startupFacts(s), facts)
		if res.Score < matching.InvestorFloor {
			continue
		}
		rec, err := u.results.Upsert(ctx, s.ID, caller.InvestorID(), res, at)
		if err != nil {
			return nil, internal("store matching result", err)
		}
		id := rec.ID
		out = append(out, StartupMatch{MatchID: &id, Startup: s, Result: res, IsViewed: rec.IsViewed})
	}

	u.logger.Info("investor matches computed",
		zap.String("investor_id", caller.InvestorID().String()),
		zap.Int("startups", len(all)),
		zap.Int("qualifying", len(out)),
	)
	return matching.Rank(out, func(m StartupMatch) int { return m.Result.Score }, matching.TopN), nil
}

// Score computes the caller's startup against one investor without storing it.
func (u *Matching) Score(ctx context.Context, credential string, investorID uuid.UUID) (InvestorMatch, error) {
	caller, err := u.actors.RequireStartup(ctx, credential)
	if err != nil {
		return InvestorMatch{}, err
	}

	inv, err := u.investors.FindByID(ctx, investorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return InvestorMatch{}, ErrInvestorNotFound
		}
		return InvestorMatch{}, internal("find investor", err)
	}

	return InvestorMatch{
		Investor: inv,
		Result:   matching.Calculate(startupFacts(caller.Profile), investorFacts(inv)),
	}, nil
}

func (u *Matching) Recalculate(ctx context.Context, credential string) error {
	_, err := u.MatchesForStartup(ctx, credential)
	return err
}

// SearchStartups scores the startups of a sector against the caller. Nothing
// is stored and no floor applies.
func (u *Matching) SearchStartups(ctx context.Context, credential string, sector string) ([]StartupMatch, error) {
	caller, err := u.actors.RequireInvestor(ctx, credential)
	if err != nil {
		return nil, err
	}
	sector = strings.TrimSpace(sector)
	if sector == "" {
		return nil, ErrSearchSectorRequired
	}

	found, err := u.startups.SearchBySector(ctx, credential, sector)
	if err != nil {
		return nil, internal("search startups", err)
	}

	facts := investorFacts(caller.Profile)
	out := make([]StartupMatch, 0, len(found))
	for _, s := range found {
		out = append(out, StartupMatch{Startup: s, Result: matching.Calculate(startupFacts(s), facts)})
	}
	return matching.Rank(out, func(m StartupMatch) int { return m.Result.Score }, 0), nil
}

func startupFacts(s startup.Startup) matching.StartupFacts {
	return matching.StartupFacts{Sector: s.Sector, Location: s.Location}
}

func investorFacts(i investor.Investor) matching.InvestorFacts {
	return matching.InvestorFacts{
		SectorsOfInterest: deref(i.SectorsOfInterest),
		Location:          deref(i.Location),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
