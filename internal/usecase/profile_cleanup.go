package usecase

import (
	"context"
	"time"

	"investor-service/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProfileEvictor drops cached data about one startup.
type ProfileEvictor interface {
	Evict(ctx context.Context, startupID uuid.UUID) error
}

// ProfileCleanup reacts to profile lifecycle events published by the
// services that own startups and investors.
type ProfileCleanup struct {
	results repository.MatchingResultRepository
	evictor ProfileEvictor
	logger  *zap.Logger
}

func NewProfileCleanup(results repository.MatchingResultRepository, evictor ProfileEvictor, logger *zap.Logger) *ProfileCleanup {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileCleanup{results: results, evictor: evictor, logger: logger.Named("profile_cleanup")}
}

func (c *ProfileCleanup) StartupDeleted(ctx context.Context, startupID uuid.UUID) error {
	n, err := c.results.DeleteByStartupID(ctx, startupID)
	if err != nil {
		return internal("delete startup matches", err)
	}
	c.evict(ctx, startupID)
	c.logger.Info("startup matches removed", zap.String("startup_id", startupID.String()), zap.Int64("rows", n))
	return nil
}

func (c *ProfileCleanup) StartupUpdated(ctx context.Context, startupID uuid.UUID) error {
	c.evict(ctx, startupID)
	return nil
}

func (c *ProfileCleanup) InvestorDeleted(ctx context.Context, investorID uuid.UUID) error {
	n, err := c.results.DeleteByInvestorID(ctx, investorID)
	if err != nil {
		return internal("delete investor matches", err)
	}
	c.logger.Info("investor matches removed", zap.String("investor_id", investorID.String()), zap.Int64("rows", n))
	return nil
}

func (c *ProfileCleanup) evict(ctx context.Context, startupID uuid.UUID) {
	if c.evictor == nil {
		return
	}
	if err := c.evictor.Evict(ctx, startupID); err != nil {
		c.logger.Warn("profile cache eviction failed", zap.String("startup_id", startupID.String()), zap.Error(err))
	}
}

// MeetingCompletion marks accepted meetings as COMPLETED once their date is
// further in the past than the grace period.
type MeetingCompletion struct {
	meetings repository.MeetingRepository
	grace    time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

func NewMeetingCompletion(meetings repository.MeetingRepository, grace time.Duration, logger *zap.Logger) *MeetingCompletion {
	if logger == nil {
		logger = zap.NewNop()
	}
	if grace < 0 {
		grace = 0
	}
	return &MeetingCompletion{meetings: meetings, grace: grace, logger: logger.Named("meeting_completion"), now: time.Now}
}

func (c *MeetingCompletion) Run(ctx context.Context) (int64, error) {
	now := c.now().UTC()
	n, err := c.meetings.CompleteElapsed(ctx, now.Add(-c.grace), now)
	if err != nil {
		return 0, internal("complete elapsed meetings", err)
	}
	if n > 0 {
		c.logger.Info("meetings completed", zap.Int64("count", n))
	}
	return n, nil
}
