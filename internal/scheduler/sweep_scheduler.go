package scheduler

import (
	"github.com/emra/admin-console/pkg/logger"
	"github.com/robfig/cron/v3"
)

// Sweeper drops expired entries and reports how many it removed
type Sweeper interface {
	Sweep() int
}

// SweepScheduler periodically cleans expired sessions and idle banner editors
type SweepScheduler struct {
	cron     *cron.Cron
	spec     string
	sweepers map[string]Sweeper
}

// NewSweepScheduler runs every sweeper on spec, a standard five field cron expression
func NewSweepScheduler(spec string, sweepers map[string]Sweeper) *SweepScheduler {
	return &SweepScheduler{
		cron:     cron.New(),
		spec:     spec,
		sweepers: sweepers,
	}
}

// RunOnce sweeps everything immediately and returns the removed count per sweeper
func (s *SweepScheduler) RunOnce() map[string]int {
	removed := make(map[string]int, len(s.sweepers))
	for name, sweeper := range s.sweepers {
		removed[name] = sweeper.Sweep()
	}
	return removed
}

func (s *SweepScheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		for name, n := range s.RunOnce() {
			if n > 0 {
				logger.Info("Expired entries swept", map[string]interface{}{
					"sweeper": name,
					"removed": n,
				})
			}
		}
	})
	if err != nil {
		logger.Error("Failed to add sweep cron job", err, map[string]interface{}{
			"spec": s.spec,
		})
		return err
	}

	s.cron.Start()
	logger.Info("Sweep scheduler started", map[string]interface{}{
		"spec":     s.spec,
		"sweepers": len(s.sweepers),
	})
	return nil
}

// Stop waits for a running sweep to finish
func (s *SweepScheduler) Stop() {
	logger.Info("Stopping sweep scheduler...")
	<-s.cron.Stop().Done()
	logger.Info("Sweep scheduler stopped")
}
