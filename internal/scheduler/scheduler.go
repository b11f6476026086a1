// Package scheduler runs the periodic maintenance jobs of the server.
package scheduler

import (
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"jobboard-backend/internal/config"
	"jobboard-backend/internal/metrics"
)

// DeadlineSweeper deactivates jobs whose deadline has passed
type DeadlineSweeper interface {
	SweepExpired(now time.Time) (int64, error)
}

// BlacklistCleaner drops revoked tokens that already expired
type BlacklistCleaner interface {
	CleanUpExpired() int
}

// Scheduler owns the cron instance and the jobs registered on it.
type Scheduler struct {
	cron      *cron.Cron
	jobs      DeadlineSweeper
	blacklist BlacklistCleaner
	now       func() time.Time
}

// New registers the deadline sweep and, when blacklist is not nil, the
// blacklist cleanup. Nothing runs until Start.
func New(cfg config.SchedulerConfig, jobs DeadlineSweeper, blacklist BlacklistCleaner) (*Scheduler, error) {
	if jobs == nil {
		return nil, errors.New("scheduler: deadline sweeper is required")
	}

	s := &Scheduler{
		cron:      cron.New(),
		jobs:      jobs,
		blacklist: blacklist,
		now:       func() time.Time { return time.Now().UTC() },
	}

	if _, err := s.cron.AddFunc(cfg.DeadlineSweep, s.sweepDeadlines); err != nil {
		return nil, errors.Wrapf(err, "invalid deadline sweep schedule %q", cfg.DeadlineSweep)
	}

	if blacklist != nil {
		if _, err := s.cron.AddFunc(cfg.BlacklistSweep, s.cleanBlacklist); err != nil {
			return nil, errors.Wrapf(err, "invalid blacklist sweep schedule %q", cfg.BlacklistSweep)
		}
	}
	return s, nil
}

// Start launches the cron loop in its own goroutine
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Infof("scheduler started with %d job(s)", len(s.cron.Entries()))
}

// Stop prevents new runs and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Info("scheduler stopped")
}

func (s *Scheduler) sweepDeadlines() {
	n, err := s.jobs.SweepExpired(s.now())
	if err != nil {
		log.WithField("error_type", "scheduler").Errorf("failed to deactivate expired jobs: %v", err)
		return
	}
	if n > 0 {
		metrics.DeadlineSweepDeactivated.Add(float64(n))
		log.Infof("deactivated %d expired job(s)", n)
	}
}

func (s *Scheduler) cleanBlacklist() {
	if n := s.blacklist.CleanUpExpired(); n > 0 {
		log.Debugf("removed %d expired token(s) from blacklist", n)
	}
}
