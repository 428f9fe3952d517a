package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"alfredoptarigan/recruitment-intake/internal/models"
)

var ErrNotFound = errors.New("record not found")

type ApplicationRepository interface {
	CreateApplicant(applicant *models.Applicant) error
	FindApplicant(id string) (*models.Applicant, error)
	ListApplicants() ([]models.Applicant, error)
	SaveAnswers(answers *models.AnswerSet) error
	FindAnswers(applicationID string) (*models.AnswerSet, error)
	SaveAttachment(attachment *models.Attachment) error
	FindAttachments(applicationID string) ([]models.Attachment, error)
	UpdateInspection(applicationID, category string, result *models.InspectionResult) error
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) CreateApplicant(applicant *models.Applicant) error {
	if err := r.db.Create(applicant).Error; err != nil {
		return fmt.Errorf("failed to create applicant: %w", err)
	}
	return nil
}

func (r *applicationRepository) FindApplicant(id string) (*models.Applicant, error) {
	var applicant models.Applicant
	if err := r.db.Where("id = ?", id).First(&applicant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find applicant: %w", err)
	}
	return &applicant, nil
}

func (r *applicationRepository) ListApplicants() ([]models.Applicant, error) {
	var applicants []models.Applicant
	if err := r.db.Order("created_at ASC").Find(&applicants).Error; err != nil {
		return nil, fmt.Errorf("failed to list applicants: %w", err)
	}
	return applicants, nil
}

// SaveAnswers inserts or replaces the answer set of an application.
func (r *applicationRepository) SaveAnswers(answers *models.AnswerSet) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "application_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"q1", "q2", "q3", "saved_at"}),
	}).Create(answers).Error
	if err != nil {
		return fmt.Errorf("failed to save answers: %w", err)
	}
	return nil
}

func (r *applicationRepository) FindAnswers(applicationID string) (*models.AnswerSet, error) {
	var answers models.AnswerSet
	if err := r.db.Where("application_id = ?", applicationID).First(&answers).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find answers: %w", err)
	}
	return &answers, nil
}

// SaveAttachment inserts or replaces the attachment for (application, category).
func (r *applicationRepository) SaveAttachment(attachment *models.Attachment) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "application_id"}, {Name: "category"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"stored_path", "original_name", "size", "inspection_status",
			"page_count", "text_preview", "inspection_error", "uploaded_at",
		}),
	}).Create(attachment).Error
	if err != nil {
		return fmt.Errorf("failed to save attachment: %w", err)
	}
	return nil
}

func (r *applicationRepository) FindAttachments(applicationID string) ([]models.Attachment, error) {
	var attachments []models.Attachment
	err := r.db.
		Where("application_id = ?", applicationID).
		Order("category ASC").
		Find(&attachments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find attachments: %w", err)
	}
	return attachments, nil
}

func (r *applicationRepository) UpdateInspection(applicationID, category string, result *models.InspectionResult) error {
	res := r.db.Model(&models.Attachment{}).
		Where("application_id = ? AND category = ?", applicationID, category).
		Updates(map[string]interface{}{
			"inspection_status": result.Status,
			"page_count":        result.PageCount,
			"text_preview":      result.TextPreview,
			"inspection_error":  result.Error,
		})

	if res.Error != nil {
		return fmt.Errorf("failed to update inspection: %w", res.Error)
	}

	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
