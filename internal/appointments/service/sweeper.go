package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"clinicbook/internal/appointments/repository"
	"clinicbook/pkg/config"
	"clinicbook/pkg/timeutil"
)

// Sweeper runs the periodic maintenance jobs for the appointment store:
// marking yesterday's still-active appointments completed and purging
// expired slot locks.
type Sweeper struct {
	repo  repository.AppointmentRepository
	locks repository.LockRepository
	cfg   *config.Config
	cron  *cron.Cron
}

func NewSweeper(repo repository.AppointmentRepository, locks repository.LockRepository, cfg *config.Config) *Sweeper {
	return &Sweeper{
		repo:  repo,
		locks: locks,
		cfg:   cfg,
		// Jobs are scheduled in the reference zone so the daily sweep
		// fires just after the clinic day rolls over, not server-local
		// midnight.
		cron: cron.New(cron.WithLocation(cfg.Location())),
	}
}

// Start registers the jobs and starts the scheduler. Completion runs once a
// day shortly after the clinic day rolls over; lock purging runs hourly.
func (s *Sweeper) Start() error {
	if _, err := s.cron.AddFunc("5 0 * * *", s.completePast); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("@hourly", s.purgeLocks); err != nil {
		return err
	}

	s.cron.Start()
	s.cfg.Log.Info("Appointment sweeper started")
	return nil
}

// Stop halts the scheduler and waits for any running job to finish.
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.cfg.Log.Info("Appointment sweeper stopped")
}

func (s *Sweeper) completePast() {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.WriteTimeout)
	defer cancel()

	today := timeutil.Today(time.Now(), s.cfg.Location())
	modified, err := s.repo.CompletePastAppointments(ctx, today)
	if err != nil {
		s.cfg.Log.Error("Failed to complete past appointments", "error", err)
		return
	}

	if modified > 0 {
		s.cfg.Log.Info("Past appointments marked completed", "count", modified)
	}
}

func (s *Sweeper) purgeLocks() {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.WriteTimeout)
	defer cancel()

	deleted, err := s.locks.DeleteExpired(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to purge expired slot locks", "error", err)
		return
	}

	if deleted > 0 {
		s.cfg.Log.Debug("Expired slot locks purged", "count", deleted)
	}
}
