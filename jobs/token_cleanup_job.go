package jobs

import (
	"time"

	"go.uber.org/zap"

	"servicepro-server/services"
)

// TokenCleanupJob periodically deletes password reset tokens past their expiry.
type TokenCleanupJob struct {
	auth     *services.AuthService
	logger   *zap.Logger
	interval time.Duration
	stopChan chan struct{}
}

func NewTokenCleanupJob(auth *services.AuthService, logger *zap.Logger) *TokenCleanupJob {
	return &TokenCleanupJob{
		auth:     auth,
		logger:   logger,
		interval: 15 * time.Minute,
		stopChan: make(chan struct{}),
	}
}

// Start begins the cleanup loop in a background goroutine.
func (j *TokenCleanupJob) Start() {
	go j.run()
	j.logger.Info("token cleanup job started", zap.Duration("interval", j.interval))
}

// Stop signals the loop to exit.
func (j *TokenCleanupJob) Stop() {
	close(j.stopChan)
	j.logger.Info("token cleanup job stopped")
}

func (j *TokenCleanupJob) run() {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.sweep()
		case <-j.stopChan:
			return
		}
	}
}

func (j *TokenCleanupJob) sweep() {
	removed, err := j.auth.CleanupExpiredResetTokens()
	if err != nil {
		j.logger.Error("reset token cleanup failed", zap.Error(err))
		return
	}
	if removed > 0 {
		j.logger.Info("expired reset tokens removed", zap.Int64("count", removed))
	}
}
