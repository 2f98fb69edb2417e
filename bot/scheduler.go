package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job is a scheduled task. ctx is cancelled when the scheduler stops.
type Job func(ctx context.Context) error

// Scheduler runs background jobs outside the message path.
type Scheduler struct {
	cron    *cron.Cron
	ctx     context.Context
	cancel  context.CancelFunc
	logger  *zap.Logger
	alerter Alerter
}

// Alerter receives job failures.
type Alerter interface {
	Error(module, operation, details string)
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}

// NewScheduler builds a scheduler whose specs are evaluated in timezone.
func NewScheduler(timezone string, logger *zap.Logger, alerter Alerter) (*Scheduler, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid scheduler timezone %q: %w", timezone, err)
	}

	logger = logger.Named("scheduler")
	cl := cronLogger{s: logger.Sugar()}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl)),
		),
		ctx:     ctx,
		cancel:  cancel,
		logger:  logger,
		alerter: alerter,
	}, nil
}

// AddJob registers job under a cron spec such as "@hourly".
func (s *Scheduler) AddJob(name, spec string, job Job) error {
	if _, err := s.cron.AddFunc(spec, s.wrap(name, job)); err != nil {
		return fmt.Errorf("could not schedule job %s: %w", name, err)
	}
	s.logger.Info("job scheduled", zap.String("job", name), zap.String("spec", spec))
	return nil
}

func (s *Scheduler) wrap(name string, job Job) func() {
	return func() {
		start := time.Now()
		if err := job(s.ctx); err != nil {
			s.logger.Error("job failed", zap.String("job", name), zap.Error(err))
			if s.alerter != nil {
				s.alerter.Error("scheduler", name, err.Error())
			}
			return
		}
		s.logger.Debug("job finished", zap.String("job", name), zap.Duration("took", time.Since(start)))
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop cancels running jobs' context and waits for them to return.
func (s *Scheduler) Stop() {
	s.cancel()
	<-s.cron.Stop().Done()
	s.logger.Info("scheduler stopped")
}
