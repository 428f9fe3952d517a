package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/recruitment-intake/internal/models"
)

func TestMemoryRepository_ApplicantLifecycle(t *testing.T) {
	repo := NewMemoryRepository()

	_, err := repo.FindApplicant("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	now := time.Now()
	require.NoError(t, repo.CreateApplicant(&models.Applicant{ID: "b", NationalID: "123456785", FullName: "Second", CreatedAt: now.Add(time.Second)}))
	require.NoError(t, repo.CreateApplicant(&models.Applicant{ID: "a", NationalID: "111111111", FullName: "First", CreatedAt: now}))

	found, err := repo.FindApplicant("b")
	require.NoError(t, err)
	assert.Equal(t, "Second", found.FullName)

	// callers get a copy
	found.FullName = "changed"
	again, _ := repo.FindApplicant("b")
	assert.Equal(t, "Second", again.FullName)

	list, err := repo.ListApplicants()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].ID)
	assert.Equal(t, "b", list[1].ID)
}

func TestMemoryRepository_AnswersLastWriteWins(t *testing.T) {
	repo := NewMemoryRepository()

	_, err := repo.FindAnswers("app")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.SaveAnswers(&models.AnswerSet{ApplicationID: "app", Q1: "one"}))
	require.NoError(t, repo.SaveAnswers(&models.AnswerSet{ApplicationID: "app", Q1: "two"}))

	answers, err := repo.FindAnswers("app")
	require.NoError(t, err)
	assert.Equal(t, "two", answers.Q1)
}

func TestMemoryRepository_Attachments(t *testing.T) {
	repo := NewMemoryRepository()

	attachments, err := repo.FindAttachments("app")
	require.NoError(t, err)
	assert.Empty(t, attachments)

	require.NoError(t, repo.SaveAttachment(&models.Attachment{ApplicationID: "app", Category: models.CategoryVideo, StoredPath: "v1"}))
	require.NoError(t, repo.SaveAttachment(&models.Attachment{ApplicationID: "app", Category: models.CategoryCV, StoredPath: "cv1", InspectionStatus: models.InspectionPending}))
	require.NoError(t, repo.SaveAttachment(&models.Attachment{ApplicationID: "app", Category: models.CategoryVideo, StoredPath: "v2"}))

	attachments, err = repo.FindAttachments("app")
	require.NoError(t, err)
	require.Len(t, attachments, 2)
	assert.Equal(t, models.CategoryCV, attachments[0].Category)
	assert.Equal(t, "v2", attachments[1].StoredPath)

	err = repo.UpdateInspection("app", models.CategoryCV, &models.InspectionResult{
		Status:      models.InspectionCompleted,
		PageCount:   2,
		TextPreview: "hello",
	})
	require.NoError(t, err)

	attachments, _ = repo.FindAttachments("app")
	assert.Equal(t, models.InspectionCompleted, attachments[0].InspectionStatus)
	assert.Equal(t, 2, attachments[0].PageCount)
	assert.Equal(t, "hello", attachments[0].TextPreview)

	err = repo.UpdateInspection("other", models.CategoryCV, &models.InspectionResult{Status: models.InspectionFailed})
	assert.ErrorIs(t, err, ErrNotFound)
}
