package cron

import (
	"log"

	"github.com/conectaedu/conecta-api/services/storage"
	"github.com/conectaedu/conecta-api/utils/middleware"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// CronManager manages all scheduled cron jobs
type CronManager struct {
	cron         *cron.Cron
	db           *gorm.DB
	fileStore    storage.FileStore
	attemptStore middleware.AttemptStore
}

// NewCronManager creates a new cron manager
func NewCronManager(db *gorm.DB, fileStore storage.FileStore, attemptStore middleware.AttemptStore) *CronManager {
	// Create cron with seconds precision
	c := cron.New(cron.WithSeconds())

	return &CronManager{
		cron:         c,
		db:           db,
		fileStore:    fileStore,
		attemptStore: attemptStore,
	}
}

// Start registers and starts all cron jobs
func (m *CronManager) Start() error {
	log.Println("Starting cron jobs...")

	if err := m.registerJobs(); err != nil {
		return err
	}

	m.cron.Start()

	log.Println("Cron jobs started successfully")
	return nil
}

// Stop stops all cron jobs, waiting for running jobs to finish
func (m *CronManager) Stop() {
	log.Println("Stopping cron jobs...")
	ctx := m.cron.Stop()
	<-ctx.Done()
	log.Println("Cron jobs stopped")
}

func (m *CronManager) registerJobs() error {
	// Every 15 minutes: drop expired rate-limit attempt windows
	_, err := m.cron.AddFunc("0 */15 * * * *", func() {
		m.SweepRateLimitAttempts()
	})
	if err != nil {
		return err
	}

	// Every hour: purge storage records soft-deleted beyond retention
	_, err = m.cron.AddFunc("0 0 * * * *", func() {
		m.PurgeDeletedStorage()
	})
	if err != nil {
		return err
	}

	return nil
}
