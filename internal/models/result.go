package models

type CreateApplicationRequest struct {
	NationalID string `json:"national_id"`
	FullName   string `json:"full_name"`
}

type CreateApplicationResponse struct {
	ApplicationID string `json:"application_id"`
}

type AnswersRequest struct {
	ApplicationID string `json:"application_id"`
	Q1            string `json:"q1"`
	Q2            string `json:"q2"`
	Q3            string `json:"q3"`
}

type AnswersResponse struct {
	OK    bool   `json:"ok"`
	File  string `json:"file,omitempty"`
	Error string `json:"error,omitempty"`
}

type UploadResponse struct {
	OK         bool   `json:"ok"`
	StoredPath string `json:"stored_path,omitempty"`
	Error      string `json:"error,omitempty"`
}

// AnswersDocument is the on-disk and API shape of an answer set.
type AnswersDocument struct {
	Q1      string `json:"q1"`
	Q2      string `json:"q2"`
	Q3      string `json:"q3"`
	SavedAt int64  `json:"saved_at"`
}

// ApplicationRecord is the assembled view of one application.
type ApplicationRecord struct {
	ApplicationID string                         `json:"application_id"`
	NationalID    string                         `json:"national_id"`
	FullName      string                         `json:"full_name"`
	CreatedAt     int64                          `json:"created_at"`
	Answers       any                            `json:"answers"` // *AnswersDocument, or {} before any answers
	Files         map[string]string              `json:"files"`
	Inspections   map[string]*InspectionDocument `json:"inspections"`
}

// InspectionDocument is the API shape of a background attachment inspection.
type InspectionDocument struct {
	Status      InspectionStatus `json:"status"`
	PageCount   int              `json:"page_count,omitempty"`
	TextPreview string           `json:"text_preview,omitempty"`
	Error       string           `json:"error,omitempty"`
}

// NewInspectionDocument returns nil for attachments that were never queued
// for inspection.
func NewInspectionDocument(a *Attachment) *InspectionDocument {
	if a == nil || a.InspectionStatus == "" {
		return nil
	}
	return &InspectionDocument{
		Status:      a.InspectionStatus,
		PageCount:   a.PageCount,
		TextPreview: a.TextPreview,
		Error:       a.InspectionError,
	}
}

func NewAnswersDocument(a *AnswerSet) *AnswersDocument {
	if a == nil {
		return nil
	}
	return &AnswersDocument{
		Q1:      a.Q1,
		Q2:      a.Q2,
		Q3:      a.Q3,
		SavedAt: a.SavedAt.Unix(),
	}
}
