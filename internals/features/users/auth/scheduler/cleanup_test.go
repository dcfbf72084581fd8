package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	authModel "copo_backend/internals/features/users/auth/model"
	"copo_backend/internals/testutil/testdb"
)

func TestCleanupRunsOnSchedule(t *testing.T) {
	db := testdb.New(t)
	require.NoError(t, db.Create(&authModel.TokenBlacklistModel{Token: "old", ExpiredAt: time.Now().UTC().Add(-time.Hour)}).Error)

	stop, err := StartBlacklistCleanup(db, "@every 1s", zap.NewNop())
	require.NoError(t, err)
	defer stop()

	assert.Eventually(t, func() bool {
		var n int64
		db.Model(&authModel.TokenBlacklistModel{}).Count(&n)
		return n == 0
	}, 5*time.Second, 100*time.Millisecond)
}

func TestCleanupRejectsBadSpec(t *testing.T) {
	stop, err := StartBlacklistCleanup(nil, "every now and then", zap.NewNop())
	assert.Error(t, err)
	stop()
}
