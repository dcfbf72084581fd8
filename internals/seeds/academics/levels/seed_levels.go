package levels

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"copo_backend/internals/features/references"
)

var DefaultLevels = []string{"UG", "PG"}

// SeedLevels get-or-creates each level by name.
func SeedLevels(db *gorm.DB, names []string, log *zap.Logger) error {
	for _, n := range names {
		id, err := references.LevelGetOrCreate(db, n)
		if err != nil {
			return err
		}
		log.Debug("level ready", zap.String("name", n), zap.Uint("id", id))
	}
	return nil
}
