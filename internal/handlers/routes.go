package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/recruitment-intake/internal/models"
	"alfredoptarigan/recruitment-intake/internal/services"
)

type AppOptions struct {
	Name        string
	BodyLimit   int64
	AccessLog   bool
	ReadTimeout time.Duration
}

func newApp(opts AppOptions) *fiber.App {
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 60 * time.Second
	}

	app := fiber.New(fiber.Config{
		AppName:      opts.Name,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(opts.BodyLimit),
		ErrorHandler: ErrorHandler,
	})

	app.Use(recover.New())
	if opts.AccessLog {
		app.Use(logger.New(logger.Config{
			Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
			TimeFormat: "2006-01-02 15:04:05",
		}))
	}

	return app
}

// NewIntakeApp builds the application intake HTTP surface.
func NewIntakeApp(opts AppOptions, intake services.IntakeService, storage services.StorageService) *fiber.App {
	app := newApp(opts)

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	applicationHandler := NewApplicationHandler(intake)
	uploadHandler := NewUploadHandler(intake)
	systemHandler := NewSystemHandler(storage)

	app.Post("/applications", applicationHandler.HandleCreate)
	app.Post("/answers", applicationHandler.HandleSaveAnswers)
	app.Post("/upload/cv", uploadHandler.HandleUpload(models.CategoryCV))
	app.Post("/upload/video", uploadHandler.HandleUpload(models.CategoryVideo))
	app.Get("/application/:id", applicationHandler.HandleGet)

	app.Get("/health", systemHandler.HandleHealth)
	app.Get("/_debug/paths", systemHandler.HandleDebugPaths)

	return app
}

// NewMediaApp builds the media upload HTTP surface.
func NewMediaApp(opts AppOptions, media services.MediaService) *fiber.App {
	app := newApp(opts)

	mediaHandler := NewMediaHandler(media)

	app.Use("/static", filesystem.New(filesystem.Config{
		Root:       http.FS(staticFS),
		PathPrefix: "static",
		MaxAge:     3600,
	}))

	app.Get("/", mediaHandler.HandleIndex)
	app.Post("/upload", mediaHandler.HandleUpload)
	app.Get("/results", mediaHandler.HandleResults)

	return app
}

// ErrorHandler renders errors that escape the handlers. Bodies rejected by
// the server body limit on an upload route keep the upload error contract.
func ErrorHandler(c *fiber.Ctx, err error) error {
	if errors.Is(err, fiber.ErrRequestEntityTooLarge) && strings.HasPrefix(c.Path(), "/upload/") {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(models.UploadResponse{
			Error: "file_too_large",
		})
	}

	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
