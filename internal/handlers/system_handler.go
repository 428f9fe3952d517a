package handlers

import (
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/recruitment-intake/internal/models"
	"alfredoptarigan/recruitment-intake/internal/services"
)

type SystemHandler struct {
	storage services.StorageService
}

func NewSystemHandler(storage services.StorageService) *SystemHandler {
	return &SystemHandler{
		storage: storage,
	}
}

// HandleHealth handles GET /health
func (h *SystemHandler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true})
}

// HandleDebugPaths handles GET /_debug/paths
func (h *SystemHandler) HandleDebugPaths(c *fiber.Ctx) error {
	baseDir, err := os.Getwd()
	if err != nil {
		baseDir = "."
	}

	uploadDir, err := filepath.Abs(h.storage.Root())
	if err != nil {
		uploadDir = h.storage.Root()
	}

	return c.JSON(fiber.Map{
		"base_dir":    baseDir,
		"upload_dir":  uploadDir,
		"cv_dir":      filepath.Join(uploadDir, services.DefaultUploadPolicies[models.CategoryCV].Dir),
		"video_dir":   filepath.Join(uploadDir, services.DefaultUploadPolicies[models.CategoryVideo].Dir),
		"answers_dir": filepath.Join(uploadDir, services.AnswersDir),
		"exists": fiber.Map{
			"upload":  h.storage.Exists(""),
			"cv":      h.storage.Exists(services.DefaultUploadPolicies[models.CategoryCV].Dir),
			"video":   h.storage.Exists(services.DefaultUploadPolicies[models.CategoryVideo].Dir),
			"answers": h.storage.Exists(services.AnswersDir),
		},
	})
}
