package seeds

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"copo_backend/internals/configs"
	levels "copo_backend/internals/seeds/academics/levels"
	auth "copo_backend/internals/seeds/users/auth"
)

// RunAllSeeds is idempotent; rows already present are left alone.
func RunAllSeeds(db *gorm.DB, cfg configs.Config, log *zap.Logger) error {
	if err := levels.SeedLevels(db, levels.DefaultLevels, log); err != nil {
		return err
	}
	return auth.SeedAdmin(db, auth.AdminSeed{
		UserName: cfg.AdminUsername,
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
	}, log)
}
