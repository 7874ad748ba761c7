package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Job is one full report run. Each trigger gets a fresh, independent run.
type Job func(ctx context.Context) error

// Scheduler triggers report runs either immediately or on a daily schedule.
type Scheduler struct {
	job Job
}

func New(job Job) *Scheduler {
	return &Scheduler{job: job}
}

// RunNow performs a single run and returns its outcome.
func (s *Scheduler) RunNow(ctx context.Context) error {
	zerolog.Ctx(ctx).Info().Msg("running report immediately")
	return s.job(ctx)
}

// RunDaily triggers the job every day at the given HH:MM local time and
// blocks until the context is cancelled. A failed run is logged and the
// scheduler simply waits for the next trigger.
func (s *Scheduler) RunDaily(ctx context.Context, at string) error {
	hour, minute, err := parseClock(at)
	if err != nil {
		return err
	}
	logger := zerolog.Ctx(ctx)

	c := cron.New()
	_, err = c.AddFunc(fmt.Sprintf("%d %d * * *", minute, hour), func() {
		logger.Info().Msg("daily trigger fired")
		if err := s.job(ctx); err != nil {
			logger.Error().Err(err).Msg("scheduled run failed")
		}
	})
	if err != nil {
		return fmt.Errorf("register daily trigger: %w", err)
	}

	logger.Info().Str("at", at).Msg("daily report scheduled")
	c.Start()
	defer c.Stop()
	<-ctx.Done()
	return ctx.Err()
}

// parseClock splits an HH:MM time of day.
func parseClock(at string) (hour, minute int, err error) {
	parts := strings.Split(at, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid report time %q, want HH:MM", at)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid report time %q, want HH:MM", at)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid report time %q, want HH:MM", at)
	}
	return hour, minute, nil
}
