package service

import (
	"testing"
)

func TestSweeperSchedulesInReferenceZone(t *testing.T) {
	cfg := testConfig(t)
	cfg.ReferenceTimeZone = "America/New_York"
	_ = cfg.Validate() // resolves cfg.Location()

	s := NewSweeper(&mockAppointmentRepository{}, &mockLockRepository{}, cfg)
	if got := s.cron.Location().String(); got != "America/New_York" {
		t.Fatalf("expected sweeper scheduled in America/New_York, got %s", got)
	}

	if err := s.Start(); err != nil {
		t.Fatalf("failed to start sweeper: %v", err)
	}
	defer s.Stop()

	if got := len(s.cron.Entries()); got != 2 {
		t.Fatalf("expected 2 scheduled jobs, got %d", got)
	}
}
