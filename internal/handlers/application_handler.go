package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/recruitment-intake/internal/models"
	"alfredoptarigan/recruitment-intake/internal/services"
)

type ApplicationHandler struct {
	intake services.IntakeService
}

func NewApplicationHandler(intake services.IntakeService) *ApplicationHandler {
	return &ApplicationHandler{
		intake: intake,
	}
}

// HandleCreate handles POST /applications
func (h *ApplicationHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateApplicationRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	id, err := h.intake.CreateApplication(req.NationalID, req.FullName)
	if err != nil {
		if errors.Is(err, services.ErrValidationFailed) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error":  "validation_error",
				"detail": err.Error(),
			})
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(models.CreateApplicationResponse{
		ApplicationID: id,
	})
}

// HandleGet handles GET /application/:id
func (h *ApplicationHandler) HandleGet(c *fiber.Ctx) error {
	record, err := h.intake.GetApplication(c.Params("id"))
	if err != nil {
		if errors.Is(err, services.ErrApplicationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"detail": "application not found",
			})
		}
		return err
	}

	return c.JSON(record)
}

// HandleSaveAnswers handles POST /answers
func (h *ApplicationHandler) HandleSaveAnswers(c *fiber.Ctx) error {
	var req models.AnswersRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	result, err := h.intake.SaveAnswers(req.ApplicationID, req.Q1, req.Q2, req.Q3)
	if err != nil {
		if errors.Is(err, services.ErrApplicationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(models.AnswersResponse{
				Error: "application_not_found",
			})
		}
		return err
	}

	return c.JSON(models.AnswersResponse{
		OK:   true,
		File: result.File,
	})
}
