package services

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"alfredoptarigan/recruitment-intake/internal/models"
)

const previewRunes = 500

type PDFParserService interface {
	ExtractTextWithMetaData(filepath string) (*PDFContent, error)
}

type PDFContent struct {
	Text      string
	PageCount int
	FilePath  string
}

type pdfParserService struct{}

func NewPDFParserService() PDFParserService {
	return &pdfParserService{}
}

// ExtractTextWithMetaData reads every page of the PDF at filePath. The pdf
// package panics on malformed objects; those panics come back as errors.
func (p *pdfParserService) ExtractTextWithMetaData(filePath string) (content *PDFContent, err error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", filePath)
	}

	defer func() {
		if r := recover(); r != nil {
			content = nil
			err = fmt.Errorf("failed to parse PDF: %v", r)
		}
	}()

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// keep going, a single unreadable page should not fail the CV
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	return &PDFContent{
		Text:      textBuilder.String(),
		PageCount: totalPage,
		FilePath:  filePath,
	}, nil
}

// CleanText drops blank lines and surrounding whitespace.
func CleanText(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	var cleanedLines []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}

// CVInspector turns a stored CV into an inspection result. It never returns
// an error; failures are reported through the result status.
type CVInspector interface {
	Inspect(path string) *models.InspectionResult
}

type cvInspector struct {
	parser PDFParserService
}

func NewCVInspector(parser PDFParserService) CVInspector {
	return &cvInspector{parser: parser}
}

func (i *cvInspector) Inspect(path string) *models.InspectionResult {
	if fileExtension(path) != "pdf" {
		return &models.InspectionResult{Status: models.InspectionSkipped}
	}

	content, err := i.parser.ExtractTextWithMetaData(path)
	if err != nil {
		return &models.InspectionResult{
			Status: models.InspectionFailed,
			Error:  err.Error(),
		}
	}

	return &models.InspectionResult{
		Status:      models.InspectionCompleted,
		PageCount:   content.PageCount,
		TextPreview: truncateRunes(CleanText(content.Text), previewRunes),
	}
}

func truncateRunes(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}
