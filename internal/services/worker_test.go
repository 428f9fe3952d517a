package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"alfredoptarigan/recruitment-intake/internal/models"
	"alfredoptarigan/recruitment-intake/internal/repositories"
)

type staticInspector struct {
	result *models.InspectionResult
}

func (s staticInspector) Inspect(path string) *models.InspectionResult {
	return s.result
}

func TestWorker_ProcessesJobs(t *testing.T) {
	repo := repositories.NewMemoryRepository()
	require.NoError(t, repo.SaveAttachment(&models.Attachment{
		ApplicationID:    "app",
		Category:         models.CategoryCV,
		StoredPath:       "/tmp/cv.pdf",
		InspectionStatus: models.InspectionPending,
	}))

	inspector := staticInspector{result: &models.InspectionResult{Status: models.InspectionCompleted, PageCount: 2}}
	w := NewWorker(repo, inspector, zap.NewNop(), 2, 4)
	w.Start(context.Background())
	defer w.Stop()

	assert.True(t, w.EnqueueJob(InspectionJob{ApplicationID: "app", Category: models.CategoryCV, Path: "/tmp/cv.pdf"}))

	assert.Eventually(t, func() bool {
		attachments, err := repo.FindAttachments("app")
		return err == nil && len(attachments) == 1 && attachments[0].InspectionStatus == models.InspectionCompleted
	}, 2*time.Second, 10*time.Millisecond)
}

type panickingInspector struct{}

func (panickingInspector) Inspect(path string) *models.InspectionResult {
	panic("unexpected keyword parsing object")
}

func TestWorker_SurvivesInspectorPanic(t *testing.T) {
	repo := repositories.NewMemoryRepository()
	require.NoError(t, repo.SaveAttachment(&models.Attachment{
		ApplicationID:    "app",
		Category:         models.CategoryCV,
		StoredPath:       "/tmp/cv.pdf",
		InspectionStatus: models.InspectionPending,
	}))

	w := NewWorker(repo, panickingInspector{}, zap.NewNop(), 1, 4)
	w.Start(context.Background())
	defer w.Stop()

	assert.True(t, w.EnqueueJob(InspectionJob{ApplicationID: "app", Category: models.CategoryCV, Path: "/tmp/cv.pdf"}))

	assert.Eventually(t, func() bool {
		attachments, err := repo.FindAttachments("app")
		return err == nil && len(attachments) == 1 && attachments[0].InspectionStatus == models.InspectionFailed
	}, 2*time.Second, 10*time.Millisecond)

	attachments, err := repo.FindAttachments("app")
	require.NoError(t, err)
	assert.Contains(t, attachments[0].InspectionError, "unexpected keyword")
}

func TestWorker_EnqueueNeverBlocks(t *testing.T) {
	repo := repositories.NewMemoryRepository()
	inspector := staticInspector{result: &models.InspectionResult{Status: models.InspectionSkipped}}

	// not started, so nothing drains the queue
	w := NewWorker(repo, inspector, zap.NewNop(), 1, 1)

	assert.True(t, w.EnqueueJob(InspectionJob{ApplicationID: "a"}))
	assert.False(t, w.EnqueueJob(InspectionJob{ApplicationID: "b"}))

	w.Stop()
	w.Stop()
	assert.False(t, w.EnqueueJob(InspectionJob{ApplicationID: "c"}))
}
