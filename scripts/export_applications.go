package main

import (
	"os"

	"go.uber.org/zap"

	"alfredoptarigan/recruitment-intake/internal/config"
	"alfredoptarigan/recruitment-intake/internal/logger"
	"alfredoptarigan/recruitment-intake/internal/repositories"
	"alfredoptarigan/recruitment-intake/internal/services"
)

// Writes <upload_dir>/<application_id>.json for every application stored in PostgreSQL.
func main() {
	cfg := config.Load()

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer log.Sync()

	log.Info("starting application export")

	db, err := config.InitDatabase(cfg, log)
	if err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}

	repo := repositories.NewApplicationRepository(db)

	storageService := services.NewStorageService(cfg.Storage.UploadPath, services.IntakeDirs(nil)...)
	if err := storageService.EnsureUploadDirs(); err != nil {
		log.Fatal("failed to create upload directories", zap.Error(err))
	}

	intake := services.NewIntakeService(repo, storageService, nil, nil, log)

	applicants, err := repo.ListApplicants()
	if err != nil {
		log.Fatal("failed to list applications", zap.Error(err))
	}

	successCount := 0
	failCount := 0

	for _, applicant := range applicants {
		record, err := intake.GetApplication(applicant.ID)
		if err != nil {
			log.Error("failed to export application", zap.String("application_id", applicant.ID), zap.Error(err))
			failCount++
			continue
		}

		log.Debug("application exported",
			zap.String("application_id", record.ApplicationID),
			zap.Int("files", len(record.Files)),
		)
		successCount++
	}

	log.Info("export summary", zap.Int("exported", successCount), zap.Int("failed", failCount))

	if failCount > 0 {
		os.Exit(1)
	}
}
