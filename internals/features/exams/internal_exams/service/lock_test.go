package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestLockSectionSelectsForUpdate(t *testing.T) {
	db, err := gorm.Open(postgres.New(postgres.Config{DSN: "host=localhost user=copo dbname=copo sslmode=disable"}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Discard,
	})
	require.NoError(t, err)

	var sql string
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("test:capture", func(d *gorm.DB) {
		sql = d.Statement.SQL.String()
	}))

	require.NoError(t, lockSection(db, 7))
	assert.Contains(t, sql, "FOR UPDATE")
	assert.Contains(t, sql, "exam_sections")

	require.NoError(t, sectionExists(db, 7))
	assert.NotContains(t, sql, "FOR UPDATE")
}
