package database

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"copo_backend/internals/configs"
)

func ConnectDB(cfg configs.Config, log *zap.Logger) (*gorm.DB, error) {
	log.Info("connecting to PostgreSQL", zap.String("host", cfg.DBHost), zap.String("db", cfg.DBName))

	level := gormLogger.Warn
	if !cfg.IsProd() {
		level = gormLogger.Info
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // PgBouncer friendly
	}), &gorm.Config{
		Logger: configs.NewGormLogger(log, level),
	})
	if err != nil {
		return nil, err
	}
	log.Info("DB connected")
	return db, nil
}

func TunePool(db *gorm.DB, log *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Warn("pool tune failed", zap.Error(err))
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

func Close(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
