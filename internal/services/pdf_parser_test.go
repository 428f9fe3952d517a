package services

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/recruitment-intake/internal/models"
)

type stubParser struct {
	content *PDFContent
	err     error
}

func (s *stubParser) ExtractTextWithMetaData(path string) (*PDFContent, error) {
	return s.content, s.err
}

func TestCVInspector_Inspect(t *testing.T) {
	t.Run("word documents are skipped", func(t *testing.T) {
		inspector := NewCVInspector(&stubParser{err: errors.New("should not be called")})
		result := inspector.Inspect("/tmp/1-abc-cv.docx")
		assert.Equal(t, models.InspectionSkipped, result.Status)
	})

	t.Run("parsed pdf", func(t *testing.T) {
		text := "  Juan Perez  \n\n\nBackend engineer\n" + strings.Repeat("x", 1000)
		inspector := NewCVInspector(&stubParser{content: &PDFContent{Text: text, PageCount: 3}})

		result := inspector.Inspect("/tmp/cv.PDF")
		assert.Equal(t, models.InspectionCompleted, result.Status)
		assert.Equal(t, 3, result.PageCount)
		assert.True(t, strings.HasPrefix(result.TextPreview, "Juan Perez\nBackend engineer\nxxx"))
		assert.Len(t, []rune(result.TextPreview), previewRunes)
	})

	t.Run("parser failure", func(t *testing.T) {
		inspector := NewCVInspector(&stubParser{err: errors.New("broken xref")})
		result := inspector.Inspect("/tmp/cv.pdf")
		assert.Equal(t, models.InspectionFailed, result.Status)
		assert.Equal(t, "broken xref", result.Error)
	})
}

func TestPDFParserService_RejectsInvalidFiles(t *testing.T) {
	parser := NewPDFParserService()

	_, err := parser.ExtractTextWithMetaData(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)

	junk := filepath.Join(t.TempDir(), "junk.pdf")
	require.NoError(t, os.WriteFile(junk, []byte("definitely not a pdf"), 0644))
	_, err = parser.ExtractTextWithMetaData(junk)
	assert.Error(t, err)
}

// brokenPDF has a well-formed header, xref table and trailer, but the
// object the trailer points at is not an object.
func brokenPDF() []byte {
	var b strings.Builder
	b.WriteString("%PDF-1.4\n")
	objOffset := b.Len()
	b.WriteString("garbage where the catalog should be\n")
	xrefOffset := b.Len()
	b.WriteString("xref\n0 2\n")
	b.WriteString("0000000000 65535 f \n")
	b.WriteString(fmt.Sprintf("%010d 00000 n \n", objOffset))
	b.WriteString("trailer\n<< /Size 2 /Root 1 0 R >>\n")
	b.WriteString(fmt.Sprintf("startxref\n%d\n%%%%EOF\n", xrefOffset))
	return []byte(b.String())
}

func TestPDFParserService_MalformedObjects(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv.pdf")
	require.NoError(t, os.WriteFile(path, brokenPDF(), 0644))

	parser := NewPDFParserService()

	var err error
	assert.NotPanics(t, func() {
		_, err = parser.ExtractTextWithMetaData(path)
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse PDF")

	var result *models.InspectionResult
	assert.NotPanics(t, func() {
		result = NewCVInspector(parser).Inspect(path)
	})
	assert.Equal(t, models.InspectionFailed, result.Status)
	assert.NotEmpty(t, result.Error)
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "a\nb", CleanText("\n  a  \n\n   \n b\n"))
	assert.Equal(t, "", CleanText("   "))
}
