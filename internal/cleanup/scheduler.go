package cleanup

import (
	"log"
	"time"

	"github.com/HelplessSneeker/noessi-immo/internal/config"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the sweep on a cron schedule
type Scheduler struct {
	cron      *cron.Cron
	service   *Service
	config    config.CleanupConfig
	isRunning bool
}

// NewScheduler creates a new cleanup scheduler
func NewScheduler(service *Service, cfg config.CleanupConfig) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		service: service,
		config:  cfg,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	if !s.config.Enabled {
		log.Println("Cleanup: scheduled sweep is disabled in configuration")
		return nil
	}

	sweepCfg := DefaultSweepConfig()
	if s.config.MinAgeHours > 0 {
		sweepCfg.MinAge = time.Duration(s.config.MinAgeHours) * time.Hour
	}

	_, err := s.cron.AddFunc(s.config.Schedule, func() {
		log.Println("Cleanup: starting scheduled sweep...")
		if _, err := s.service.Sweep(sweepCfg); err != nil {
			log.Printf("Cleanup: scheduled sweep failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.isRunning = true
	log.Printf("Cleanup: scheduler started (cron: %s)", s.config.Schedule)
	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	if s.isRunning {
		s.cron.Stop()
		s.isRunning = false
		log.Println("Cleanup: scheduler stopped")
	}
}
