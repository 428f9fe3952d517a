package handlers

import (
	"embed"
	"errors"
	"html/template"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/recruitment-intake/internal/services"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

const noResultsMessage = "No results to display."

type uploadType struct {
	Value  string
	Label  string
	Accept string
}

var uploadTypes = []uploadType{
	{Value: "audio", Label: "Audio", Accept: "audio/*"},
	{Value: "video", Label: "Video", Accept: "video/*"},
	{Value: "video-audio", Label: "Video with audio", Accept: "video/*"},
}

// screenRecording is how the in-browser capture on the index page submits
// its recording.
var screenRecording = struct {
	UploadType string
	Filename   string
}{
	UploadType: "video-audio",
	Filename:   "screen-recording.webm",
}

type MediaHandler struct {
	media services.MediaService
}

func NewMediaHandler(media services.MediaService) *MediaHandler {
	return &MediaHandler{
		media: media,
	}
}

// HandleIndex handles GET /
func (h *MediaHandler) HandleIndex(c *fiber.Ctx) error {
	return render(c, "index.html", fiber.Map{
		"Types":     uploadTypes,
		"Recording": screenRecording,
	})
}

// HandleUpload handles POST /upload
func (h *MediaHandler) HandleUpload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "File not found",
		})
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	result, err := h.media.Upload(c.FormValue("upload_type"), file.Filename, src)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoFile):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "No file selected",
			})
		case errors.Is(err, services.ErrUploadRejected):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "File type not allowed or wrong upload type",
			})
		}
		return err
	}

	return c.Redirect("/results?message="+url.QueryEscape(result.Message), fiber.StatusSeeOther)
}

// HandleResults handles GET /results
func (h *MediaHandler) HandleResults(c *fiber.Ctx) error {
	message := strings.TrimSpace(c.Query("message"))
	if message == "" {
		message = noResultsMessage
	}
	return render(c, "results.html", fiber.Map{"Message": message})
}

func render(c *fiber.Ctx, name string, data interface{}) error {
	c.Type("html", "utf-8")
	return pageTemplates.ExecuteTemplate(c, name, data)
}
