package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/recruitment-intake/internal/models"
	"alfredoptarigan/recruitment-intake/internal/services"
)

type UploadHandler struct {
	intake services.IntakeService
}

func NewUploadHandler(intake services.IntakeService) *UploadHandler {
	return &UploadHandler{
		intake: intake,
	}
}

// HandleUpload returns the handler for POST /upload/<category>.
func (h *UploadHandler) HandleUpload(category string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		applicationID := c.FormValue("application_id")

		file, err := c.FormFile("file")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(models.UploadResponse{
				Error: "missing_file",
			})
		}

		src, err := file.Open()
		if err != nil {
			return fmt.Errorf("failed to open uploaded file: %w", err)
		}
		defer src.Close()

		result, err := h.intake.UploadFile(applicationID, category, services.FileUpload{
			Filename: file.Filename,
			Size:     file.Size,
			Content:  src,
		})
		if err != nil {
			if status, code, ok := uploadError(err); ok {
				return c.Status(status).JSON(models.UploadResponse{
					Error: code,
				})
			}
			return err
		}

		return c.JSON(models.UploadResponse{
			OK:         true,
			StoredPath: result.StoredPath,
		})
	}
}

func uploadError(err error) (int, string, bool) {
	switch {
	case errors.Is(err, services.ErrApplicationNotFound):
		return fiber.StatusNotFound, "application_not_found", true
	case errors.Is(err, services.ErrInvalidExtension):
		return fiber.StatusBadRequest, "invalid_extension", true
	case errors.Is(err, services.ErrFileTooLarge):
		return fiber.StatusRequestEntityTooLarge, "file_too_large", true
	case errors.Is(err, services.ErrUnknownCategory):
		return fiber.StatusBadRequest, "unknown_category", true
	}
	return 0, "", false
}
