package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"alfredoptarigan/resume-analyzer/internal/config"
	"alfredoptarigan/resume-analyzer/internal/handlers"
	"alfredoptarigan/resume-analyzer/internal/logger"
	"alfredoptarigan/resume-analyzer/internal/repositories"
	"alfredoptarigan/resume-analyzer/internal/services"
)

func main() {
	cfg := config.Load()

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}
	log.Info("config loaded", zap.String("env", cfg.Server.Env), zap.String("session_store", cfg.Session.Store))

	ctx := context.Background()

	guard, cleanup, err := newBusyGuard(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to initialize session store", zap.Error(err))
	}
	defer cleanup()

	storageService := services.NewStorageService(cfg.Extractor.TempDir)
	if err := storageService.EnsureTempDir(); err != nil {
		log.Fatal("failed to create temp directory", zap.Error(err))
	}

	extractor := services.NewExtractorService(
		services.NewPDFParserService(),
		services.NewDocxParserService(),
		services.NewDocParserService(storageService, cfg.Extractor.DocCommand),
		log,
	)

	geminiService, err := services.NewGeminiService(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatal("failed to initialize Gemini", zap.Error(err))
	}
	log.Info("gemini initialized", zap.String("model", cfg.Gemini.Model))

	analysisService := services.NewAnalysisService(
		guard,
		extractor,
		services.NewModelClient(geminiService, log),
		log,
	)

	app := handlers.NewRouter(
		handlers.RouterConfig{
			// multipart overhead on top of the file itself
			BodyLimit:   int(cfg.Server.MaxFileSize) + 1<<20,
			AccessLog:   true,
			ReadTimeout: 30 * time.Second,
		},
		handlers.NewAnalyzeHandler(analysisService, cfg.Server.MaxFileSize),
		handlers.NewSessionHandler(analysisService),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("shutting down server")
		if err := app.Shutdown(); err != nil {
			log.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Info("server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}

func newBusyGuard(ctx context.Context, cfg *config.Config, log *zap.Logger) (services.BusyGuard, func(), error) {
	switch cfg.Session.Store {
	case "redis":
		rdb, err := config.InitRedis(ctx, cfg, log)
		if err != nil {
			return nil, nil, err
		}
		return services.NewRedisBusyGuard(rdb, cfg.Session.TTL), func() { _ = rdb.Close() }, nil

	case "postgres":
		db, err := config.InitDatabase(cfg, log)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return services.NewDBBusyGuard(repositories.NewSessionRepository(db, cfg.Session.TTL)), cleanup, nil

	default:
		return services.NewMemoryBusyGuard(), func() {}, nil
	}
}
