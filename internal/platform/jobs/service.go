package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

var ErrUnknownJob = errors.New("unknown job")

type RunFunc func(ctx context.Context) (any, error)

// Service runs named jobs on cron schedules and on demand.
type Service struct {
	mu   sync.Mutex
	cron *cron.Cron
	jobs map[string]RunFunc
	ctx  context.Context
	stop context.CancelFunc
}

func New() *Service {
	logger := slogCronLogger{}
	return &Service{
		cron: cron.New(cron.WithLogger(logger), cron.WithChain(
			cron.Recover(logger),
			cron.SkipIfStillRunning(logger),
		)),
		jobs: map[string]RunFunc{},
		ctx:  context.Background(),
	}
}

// Schedule registers run under name. schedule uses the standard five-field
// cron syntax or descriptors such as "@every 1m".
func (s *Service) Schedule(name, schedule string, run RunFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.cron.AddFunc(schedule, func() {
		if _, err := s.runJob(s.runContext(), name, run); err != nil {
			slog.Warn("job run failed", "jobType", name, "err", err)
		}
	}); err != nil {
		return fmt.Errorf("schedule %s: %w", name, err)
	}
	s.jobs[name] = run
	return nil
}

func (s *Service) Start(ctx context.Context) {
	s.mu.Lock()
	s.ctx, s.stop = context.WithCancel(ctx)
	s.mu.Unlock()
	s.cron.Start()
}

// Stop halts the scheduler and waits for running jobs to finish.
func (s *Service) Stop() {
	<-s.cron.Stop().Done()
	s.mu.Lock()
	if s.stop != nil {
		s.stop()
	}
	s.mu.Unlock()
}

func (s *Service) RunNow(ctx context.Context, name string) (any, error) {
	s.mu.Lock()
	run, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownJob, name)
	}
	return s.runJob(ctx, name, run)
}

func (s *Service) runContext() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx
}

func (s *Service) runJob(ctx context.Context, name string, run RunFunc) (any, error) {
	start := time.Now()
	details, err := run(ctx)
	status := "completed"
	if err != nil {
		status = "failed"
	}
	slog.Debug("job run", "jobType", name, "status", status, "durationMs", time.Since(start).Milliseconds())
	return details, err
}

type slogCronLogger struct{}

func (slogCronLogger) Info(msg string, keysAndValues ...interface{}) {
	slog.Debug("cron: "+msg, keysAndValues...)
}

func (slogCronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	slog.Error("cron: "+msg, append([]interface{}{"err", err}, keysAndValues...)...)
}
