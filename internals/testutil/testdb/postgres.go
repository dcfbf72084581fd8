//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "github.com/lib/pq"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"go.uber.org/zap"
	pgDriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	database "copo_backend/internals/databases"
)

// Postgres starts a container, applies the goose migrations over lib/pq and
// hands back a gorm handle on the same database.
func Postgres(t testing.TB) *gorm.DB {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pg, err := postgres.RunContainer(ctx,
		tc.WithImage("postgres:16-alpine"),
		postgres.WithDatabase("copo"),
		postgres.WithUsername("copo"),
		postgres.WithPassword("copo"),
	)
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = pg.Terminate(ctx)
	})

	uri, err := pg.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}

	sqlDB, err := sql.Open("postgres", uri)
	if err != nil {
		t.Fatalf("sql open: %v", err)
	}
	defer sqlDB.Close()
	if err := waitReady(ctx, sqlDB); err != nil {
		t.Fatalf("postgres: %v", err)
	}
	if err := database.MigrateSQL(sqlDB, zap.NewNop()); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	db, err := gorm.Open(pgDriver.New(pgDriver.Config{DSN: uri, PreferSimpleProtocol: true}), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}
	t.Cleanup(func() { database.Close(db) })
	return db
}

func waitReady(ctx context.Context, db *sql.DB) error {
	dead := time.Now().Add(20 * time.Second)
	for time.Now().Before(dead) {
		if err := db.PingContext(ctx); err == nil {
			return nil
		}
		time.Sleep(200 * time.Millisecond)
	}
	return errors.New("db not ready")
}
