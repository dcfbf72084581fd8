package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"copo_backend/internals/configs"
	database "copo_backend/internals/databases"
	previewService "copo_backend/internals/features/exams/exam_preview/service"
	generationService "copo_backend/internals/features/exams/question_generation/service"
	scheduler "copo_backend/internals/features/users/auth/scheduler"
	authService "copo_backend/internals/features/users/auth/service"
	"copo_backend/internals/logging"
	"copo_backend/internals/observability"
	routes "copo_backend/internals/route"
	"copo_backend/internals/seeds"
)

func main() {
	cfg := configs.LoadEnv()

	lg, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer lg.Closer()
	zl := lg.Base

	flushSentry, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, cfg.Release)
	if err != nil {
		zl.Warn("sentry disabled", zap.Error(err))
	}
	defer flushSentry()

	// 🔌 DB connect + pool + schema
	db, err := database.ConnectDB(cfg, zl)
	if err != nil {
		zl.Fatal("db connect", zap.Error(err))
	}
	database.TunePool(db, zl)
	if err := database.Migrate(db, zl); err != nil {
		zl.Fatal("migrate", zap.Error(err))
	}
	if cfg.SeedOnStart {
		if err := seeds.RunAllSeeds(db, cfg, zl); err != nil {
			zl.Fatal("seed", zap.Error(err))
		}
	}

	// ⏱ scheduler after the DB is ready
	stopCleanup, err := scheduler.StartBlacklistCleanup(db, cfg.BlacklistCron, zl)
	if err != nil {
		zl.Fatal("cleanup scheduler", zap.Error(err))
	}
	defer stopCleanup()

	app := routes.NewApp(routes.Deps{
		DB:             db,
		Log:            zl,
		Env:            cfg.Env,
		Tokens:         authService.NewTokenIssuer(cfg.JWTSecret, cfg.JWTRefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
		Google:         authService.NewGoogleVerifier(),
		GoogleClientID: cfg.GoogleClientID,
		Renderer: previewService.LatexRenderer{
			PdflatexBin: cfg.PdflatexBin,
			PdftoppmBin: cfg.PdftoppmBin,
			WorkRoot:    cfg.RenderWorkDir,
			Timeout:     cfg.RenderTimeout,
			MaxWidth:    cfg.PreviewMaxWidth,
			Log:         zl,
		},
		Generator: generationService.NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, cfg.LLMTimeout),
	}, routes.AppOpts{
		BodyLimitMB:    cfg.UploadMaxMB,
		CorsOrigins:    cfg.CorsOrigins,
		RequestTimeout: cfg.RequestTimeout,
	})

	// 🔒 Keep-Alive & connection timeouts
	app.Server().ReadTimeout = 30 * time.Second
	app.Server().WriteTimeout = cfg.RequestTimeout + 10*time.Second
	app.Server().IdleTimeout = 90 * time.Second

	go func() {
		zl.Info("listening", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
			zl.Fatal("server error", zap.Error(err))
		}
	}()

	// graceful shutdown + close the DB pool
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zl.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)
	database.Close(db)
}
