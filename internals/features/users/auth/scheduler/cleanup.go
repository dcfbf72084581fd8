package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	authService "copo_backend/internals/features/users/auth/service"
)

// StartBlacklistCleanup purges expired blacklist rows and refresh tokens on spec
// (a cron expression or @every). The returned func stops the scheduler.
func StartBlacklistCleanup(db *gorm.DB, spec string, log *zap.Logger) (func(), error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	_, err := c.AddFunc(spec, func() {
		n, err := authService.PurgeExpired(db, time.Now().UTC())
		if err != nil {
			log.Error("token cleanup", zap.Error(err))
			return
		}
		if n > 0 {
			log.Info("token cleanup", zap.Int64("deleted", n))
		}
	})
	if err != nil {
		return func() {}, err
	}
	c.Start()
	return func() { <-c.Stop().Done() }, nil
}
