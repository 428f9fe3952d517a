package repositories

import (
	"sort"
	"sync"

	"alfredoptarigan/recruitment-intake/internal/models"
)

// memoryRepository keeps everything in process memory. Contents are lost on restart.
type memoryRepository struct {
	mu          sync.RWMutex
	applicants  map[string]models.Applicant
	answers     map[string]models.AnswerSet
	attachments map[string]map[string]models.Attachment
}

func NewMemoryRepository() ApplicationRepository {
	return &memoryRepository{
		applicants:  make(map[string]models.Applicant),
		answers:     make(map[string]models.AnswerSet),
		attachments: make(map[string]map[string]models.Attachment),
	}
}

func (r *memoryRepository) CreateApplicant(applicant *models.Applicant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.applicants[applicant.ID] = *applicant
	return nil
}

func (r *memoryRepository) FindApplicant(id string) (*models.Applicant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	applicant, ok := r.applicants[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &applicant, nil
}

func (r *memoryRepository) ListApplicants() ([]models.Applicant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	applicants := make([]models.Applicant, 0, len(r.applicants))
	for _, a := range r.applicants {
		applicants = append(applicants, a)
	}
	sort.Slice(applicants, func(i, j int) bool {
		return applicants[i].CreatedAt.Before(applicants[j].CreatedAt)
	})
	return applicants, nil
}

func (r *memoryRepository) SaveAnswers(answers *models.AnswerSet) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.answers[answers.ApplicationID] = *answers
	return nil
}

func (r *memoryRepository) FindAnswers(applicationID string) (*models.AnswerSet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	answers, ok := r.answers[applicationID]
	if !ok {
		return nil, ErrNotFound
	}
	return &answers, nil
}

func (r *memoryRepository) SaveAttachment(attachment *models.Attachment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	byCategory, ok := r.attachments[attachment.ApplicationID]
	if !ok {
		byCategory = make(map[string]models.Attachment)
		r.attachments[attachment.ApplicationID] = byCategory
	}
	byCategory[attachment.Category] = *attachment
	return nil
}

func (r *memoryRepository) FindAttachments(applicationID string) ([]models.Attachment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	byCategory := r.attachments[applicationID]
	attachments := make([]models.Attachment, 0, len(byCategory))
	for _, a := range byCategory {
		attachments = append(attachments, a)
	}
	sort.Slice(attachments, func(i, j int) bool {
		return attachments[i].Category < attachments[j].Category
	})
	return attachments, nil
}

func (r *memoryRepository) UpdateInspection(applicationID, category string, result *models.InspectionResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	attachment, ok := r.attachments[applicationID][category]
	if !ok {
		return ErrNotFound
	}
	attachment.InspectionStatus = result.Status
	attachment.PageCount = result.PageCount
	attachment.TextPreview = result.TextPreview
	attachment.InspectionError = result.Error
	r.attachments[applicationID][category] = attachment
	return nil
}
