package usecase

import (
	"context"
	"errors"

	"investor-service/internal/domain/startup"
	"investor-service/internal/infrastructure/startupprofile"
	"investor-service/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StartupDetail is the investor-facing view of one startup. MatchingScore
// is nil until a score has been stored for the pair.
type StartupDetail struct {
	Startup             startup.Startup
	Team                []startup.TeamMember
	Milestones          []startup.Milestone
	MilestonesCompleted int
	MilestonesPending   int
	MatchingScore       *int
}

type StartupDetailUsecase interface {
	GetDetails(ctx context.Context, credential string, startupID uuid.UUID) (StartupDetail, error)
}

type StartupDetails struct {
	actors   *ActorResolver
	startups startupprofile.Gateway
	results  repository.MatchingResultRepository
	logger   *zap.Logger
}

func NewStartupDetailUsecase(actors *ActorResolver, startups startupprofile.Gateway, results repository.MatchingResultRepository, logger *zap.Logger) *StartupDetails {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StartupDetails{actors: actors, startups: startups, results: results, logger: logger.Named("startup_details")}
}

// GetDetails loads the startup itself, which must exist, then team,
// milestones and stored score, each of which degrades to empty.
func (u *StartupDetails) GetDetails(ctx context.Context, credential string, startupID uuid.UUID) (StartupDetail, error) {
	caller, err := u.actors.RequireInvestor(ctx, credential)
	if err != nil {
		return StartupDetail{}, err
	}

	s, err := u.startups.GetByID(ctx, credential, startupID)
	if err != nil {
		if errors.Is(err, startupprofile.ErrNotFound) {
			return StartupDetail{}, ErrStartupNotFound
		}
		return StartupDetail{}, internal("fetch startup", err)
	}

	log := u.logger.With(zap.String("startup_id", startupID.String()))

	team, err := u.startups.GetTeam(ctx, credential, startupID)
	if err != nil {
		log.Warn("team unavailable", zap.Error(err))
		team = nil
	}
	milestones, err := u.startups.GetMilestones(ctx, credential, startupID)
	if err != nil {
		log.Warn("milestones unavailable", zap.Error(err))
		milestones = nil
	}
	if team == nil {
		team = []startup.TeamMember{}
	}
	if milestones == nil {
		milestones = []startup.Milestone{}
	}

	var score *int
	rec, err := u.results.FindByPair(ctx, startupID, caller.InvestorID())
	switch {
	case err == nil:
		v := rec.Score
		score = &v
	case errors.Is(err, repository.ErrNotFound):
	default:
		log.Warn("matching score unavailable", zap.Error(err))
	}

	completed, pending := startup.CountMilestones(milestones)
	return StartupDetail{
		Startup:             s,
		Team:                team,
		Milestones:          milestones,
		MilestonesCompleted: completed,
		MilestonesPending:   pending,
		MatchingScore:       score,
	}, nil
}
