package models

import (
	"time"
)

type InspectionStatus string

const (
	InspectionPending   InspectionStatus = "pending"
	InspectionCompleted InspectionStatus = "completed"
	InspectionFailed    InspectionStatus = "failed"
	InspectionSkipped   InspectionStatus = "skipped"
)

const (
	CategoryCV    = "cv"
	CategoryVideo = "video"
)

type Applicant struct {
	ID         string    `gorm:"type:varchar(32);primary_key" json:"application_id"`
	NationalID string    `gorm:"type:varchar(16);not null;index" json:"national_id"`
	FullName   string    `gorm:"type:varchar(120);not null" json:"full_name"`
	CreatedAt  time.Time `gorm:"type:timestamp" json:"created_at"`
}

func (Applicant) TableName() string {
	return "applicants"
}

// AnswerSet holds the three free-text answers of one applicant.
type AnswerSet struct {
	ApplicationID string    `gorm:"type:varchar(32);primary_key" json:"-"`
	Q1            string    `gorm:"type:text" json:"q1"`
	Q2            string    `gorm:"type:text" json:"q2"`
	Q3            string    `gorm:"type:text" json:"q3"`
	SavedAt       time.Time `gorm:"type:timestamp" json:"-"`
}

func (AnswerSet) TableName() string {
	return "answer_sets"
}

// Attachment is the latest stored file of a category for one applicant.
type Attachment struct {
	ApplicationID    string           `gorm:"type:varchar(32);primary_key" json:"application_id"`
	Category         string           `gorm:"type:varchar(16);primary_key" json:"category"`
	StoredPath       string           `gorm:"type:text;not null" json:"stored_path"`
	OriginalName     string           `gorm:"type:text" json:"original_name"`
	Size             int64            `json:"size"`
	InspectionStatus InspectionStatus `gorm:"type:varchar(16)" json:"inspection_status"`
	PageCount        int              `json:"page_count,omitempty"`
	TextPreview      string           `gorm:"type:text" json:"text_preview,omitempty"`
	InspectionError  string           `gorm:"type:text" json:"inspection_error,omitempty"`
	UploadedAt       time.Time        `gorm:"type:timestamp" json:"uploaded_at"`
}

func (Attachment) TableName() string {
	return "attachments"
}

// InspectionResult is what the CV inspection worker writes back onto an attachment.
type InspectionResult struct {
	Status      InspectionStatus
	PageCount   int
	TextPreview string
	Error       string
}
