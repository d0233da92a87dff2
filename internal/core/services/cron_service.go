package services

import (
	"context"
	"log"
	"time"

	"lendcheck/internal/config"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"lendcheck/internal/adapters/persistence/repositories"
)

// CronService schedules the recurring background jobs: the nightly bulk
// re-scan of pending applications and refresh token cleanup.
type CronService struct {
	cron             *cron.Cron
	cfg              *config.Config
	eligibilitySvc   *EligibilityService
	refreshTokenRepo repositories.RefreshTokenRepository
}

// NewCronService creates a cron service wired to its own repositories
func NewCronService(db *gorm.DB, cfg *config.Config, eligibilitySvc *EligibilityService) *CronService {
	return &CronService{
		cron:             cron.New(),
		cfg:              cfg,
		eligibilitySvc:   eligibilitySvc,
		refreshTokenRepo: repositories.NewRefreshTokenRepository(db),
	}
}

// Start registers the jobs and starts the scheduler
func (s *CronService) Start() error {
	if _, err := s.cron.AddFunc(s.cfg.Policy.ScanSchedule, s.runBulkScan); err != nil {
		return err
	}

	// hourly token cleanup
	if _, err := s.cron.AddFunc("0 * * * *", s.cleanupExpiredTokens); err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("✅ Cron service started (bulk scan schedule: %s)", s.cfg.Policy.ScanSchedule)
	return nil
}

// Stop stops the scheduler and waits for running jobs to finish
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 Cron service stopped")
}

func (s *CronService) runBulkScan() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	report, err := s.eligibilitySvc.ScanAll(ctx)
	if err != nil {
		log.Printf("❌ Scheduled bulk scan failed: %v", err)
		return
	}
	log.Printf("✅ Scheduled bulk scan %s: %d scanned, %d succeeded, %d failed",
		report.BatchID, report.Scanned, report.Succeeded, report.Failed)
}

func (s *CronService) cleanupExpiredTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := s.refreshTokenRepo.DeleteExpired(ctx); err != nil {
		log.Printf("❌ Expired token cleanup failed: %v", err)
	}
}
