package app

import (
	"context"
	"time"

	"investor-service/internal/usecase"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// cronLogger adapts zap to the cron.Logger interface.
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}

// Scheduler runs the periodic maintenance jobs.
type Scheduler struct {
	cron       *cron.Cron
	completion *usecase.MeetingCompletion
	schedule   string
	timeout    time.Duration
	logger     *zap.Logger
}

func NewScheduler(completion *usecase.MeetingCompletion, schedule string, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("scheduler")

	cl := cronLogger{s: logger.Sugar()}
	return &Scheduler{
		cron:       cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl))),
		completion: completion,
		schedule:   schedule,
		timeout:    time.Minute,
		logger:     logger,
	}
}

// Start registers the jobs and starts the cron loop. An invalid schedule is
// returned rather than logged so the worker refuses to start.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.completeMeetings); err != nil {
		return err
	}
	s.logger.Info("scheduled meeting completion job", zap.String("schedule", s.schedule))

	s.cron.Start()
	return nil
}

// Stop stops the cron loop. The returned context is done once running jobs
// have finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) completeMeetings() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	n, err := s.completion.Run(ctx)
	if err != nil {
		s.logger.Error("meeting completion failed", zap.Error(err))
		return
	}
	if n > 0 {
		s.logger.Info("meetings completed", zap.Int64("count", n))
	}
}
