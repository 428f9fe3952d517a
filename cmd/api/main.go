package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"alfredoptarigan/recruitment-intake/internal/config"
	"alfredoptarigan/recruitment-intake/internal/handlers"
	"alfredoptarigan/recruitment-intake/internal/logger"
	"alfredoptarigan/recruitment-intake/internal/repositories"
	"alfredoptarigan/recruitment-intake/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer log.Sync()

	log.Info("config loaded", zap.String("env", cfg.Server.Env), zap.String("store", cfg.Database.Driver))

	// Initialize repository
	repo, err := newRepository(cfg, log)
	if err != nil {
		log.Fatal("failed to initialize repository", zap.Error(err))
	}

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath, services.IntakeDirs(nil)...)
	if err := storageService.EnsureUploadDirs(); err != nil {
		log.Fatal("failed to create upload directories", zap.Error(err))
	}
	log.Info("upload directories ready", zap.String("upload_dir", storageService.Root()))

	inspector := services.NewCVInspector(services.NewPDFParserService())
	worker := services.NewWorker(repo, inspector, log, cfg.Worker.Concurrency, cfg.Worker.QueueSize)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	worker.Start(ctx)

	intakeService := services.NewIntakeService(repo, storageService, worker, nil, log)

	app := handlers.NewIntakeApp(handlers.AppOptions{
		Name:        "Recruitment Intake API",
		BodyLimit:   cfg.Storage.MaxBodySize,
		AccessLog:   true,
		ReadTimeout: cfg.Server.ReadTimeout,
	}, intakeService, storageService)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("shutting down server")
		worker.Stop()
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

func newRepository(cfg *config.Config, log *zap.Logger) (repositories.ApplicationRepository, error) {
	switch cfg.Database.Driver {
	case config.StoreMemory:
		log.Warn("using in-memory store, applications are lost on restart")
		return repositories.NewMemoryRepository(), nil
	case config.StorePostgres:
		db, err := config.InitDatabase(cfg, log)
		if err != nil {
			return nil, err
		}
		return repositories.NewApplicationRepository(db), nil
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Database.Driver)
	}
}
