package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"alfredoptarigan/recruitment-intake/internal/config"
	"alfredoptarigan/recruitment-intake/internal/handlers"
	"alfredoptarigan/recruitment-intake/internal/logger"
	"alfredoptarigan/recruitment-intake/internal/services"
)

func main() {
	cfg := config.Load()

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer log.Sync()

	storageService := services.NewStorageService(cfg.Media.UploadPath, services.MediaFolders(nil)...)
	if err := storageService.EnsureUploadDirs(); err != nil {
		log.Fatal("failed to create media directories", zap.Error(err))
	}

	mediaService := services.NewMediaService(storageService, nil, log)

	app := handlers.NewMediaApp(handlers.AppOptions{
		Name:        "Media Upload",
		BodyLimit:   cfg.Storage.MaxBodySize,
		AccessLog:   true,
		ReadTimeout: cfg.Server.ReadTimeout,
	}, mediaService)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("shutting down media server")
		if err := app.Shutdown(); err != nil {
			log.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Media.Port)
	log.Info("media server starting", zap.String("addr", addr), zap.String("upload_dir", storageService.Root()))

	if err := app.Listen(addr); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
