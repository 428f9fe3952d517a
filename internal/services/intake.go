package services

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/recruitment-intake/internal/models"
	"alfredoptarigan/recruitment-intake/internal/repositories"
)

const (
	MinFullNameLength = 3
	MaxFullNameLength = 120

	AnswersDir = "answers"
)

var (
	ErrValidationFailed    = errors.New("validation failed")
	ErrInvalidNationalID   = fmt.Errorf("%w: invalid national id", ErrValidationFailed)
	ErrInvalidFullName     = fmt.Errorf("%w: full name must be between %d and %d characters", ErrValidationFailed, MinFullNameLength, MaxFullNameLength)
	ErrApplicationNotFound = errors.New("application not found")
	ErrUnknownCategory     = errors.New("unknown upload category")
	ErrInvalidExtension    = errors.New("invalid file extension")
	ErrFileTooLarge        = errors.New("file too large")
)

// UploadPolicy describes which files an attachment category accepts and where they go.
type UploadPolicy struct {
	Category   string
	Dir        string
	Extensions []string
	MaxSize    int64
}

var DefaultUploadPolicies = map[string]UploadPolicy{
	models.CategoryCV: {
		Category:   models.CategoryCV,
		Dir:        "cv",
		Extensions: []string{"pdf", "doc", "docx"},
		MaxSize:    10 << 20,
	},
	models.CategoryVideo: {
		Category:   models.CategoryVideo,
		Dir:        "video",
		Extensions: []string{"webm", "mp4"},
		MaxSize:    200 << 20,
	},
}

// FileUpload is an incoming file. Size is the length announced by the
// transport; the content is still capped while copying.
type FileUpload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

type AnswersResult struct {
	File string
}

type UploadResult struct {
	StoredPath string
}

type IntakeService interface {
	CreateApplication(nationalID, fullName string) (string, error)
	SaveAnswers(applicationID, q1, q2, q3 string) (*AnswersResult, error)
	UploadFile(applicationID, category string, upload FileUpload) (*UploadResult, error)
	GetApplication(applicationID string) (*models.ApplicationRecord, error)
}

type intakeService struct {
	repo     repositories.ApplicationRepository
	storage  StorageService
	worker   Worker
	policies map[string]UploadPolicy
	log      *zap.Logger
	now      func() time.Time
}

// NewIntakeService wires the intake operations. worker may be nil, in which
// case uploaded CVs are never inspected.
func NewIntakeService(
	repo repositories.ApplicationRepository,
	storage StorageService,
	worker Worker,
	policies map[string]UploadPolicy,
	log *zap.Logger,
) IntakeService {
	if policies == nil {
		policies = DefaultUploadPolicies
	}
	return &intakeService{
		repo:     repo,
		storage:  storage,
		worker:   worker,
		policies: policies,
		log:      log,
		now:      time.Now,
	}
}

// IntakeDirs lists the storage subdirectories the intake service writes to.
func IntakeDirs(policies map[string]UploadPolicy) []string {
	if policies == nil {
		policies = DefaultUploadPolicies
	}
	dirs := []string{AnswersDir}
	for _, p := range policies {
		dirs = append(dirs, p.Dir)
	}
	return dirs
}

func (s *intakeService) CreateApplication(nationalID, fullName string) (string, error) {
	if !ValidateRUT(nationalID) {
		return "", ErrInvalidNationalID
	}

	fullName = strings.TrimSpace(fullName)
	if n := utf8.RuneCountInString(fullName); n < MinFullNameLength || n > MaxFullNameLength {
		return "", ErrInvalidFullName
	}

	applicant := &models.Applicant{
		ID:         newApplicationID(),
		NationalID: CleanRUT(nationalID),
		FullName:   fullName,
		CreatedAt:  s.now(),
	}

	if err := s.repo.CreateApplicant(applicant); err != nil {
		return "", fmt.Errorf("failed to store application: %w", err)
	}

	s.log.Info("application created", zap.String("application_id", applicant.ID))
	return applicant.ID, nil
}

func (s *intakeService) SaveAnswers(applicationID, q1, q2, q3 string) (*AnswersResult, error) {
	applicant, err := s.findApplicant(applicationID)
	if err != nil {
		return nil, err
	}

	answers := &models.AnswerSet{
		ApplicationID: applicationID,
		Q1:            q1,
		Q2:            q2,
		Q3:            q3,
		SavedAt:       s.now(),
	}
	if err := s.repo.SaveAnswers(answers); err != nil {
		return nil, fmt.Errorf("failed to store answers: %w", err)
	}

	result := &AnswersResult{}

	// The stored answers are authoritative; the JSON copy is best-effort.
	path, err := s.storage.WriteJSON(AnswersDir, answersFilename(applicant), models.NewAnswersDocument(answers))
	if err != nil {
		s.log.Warn("failed to write answers file",
			zap.String("application_id", applicationID),
			zap.Error(err),
		)
		return result, nil
	}

	result.File = path
	return result, nil
}

func (s *intakeService) UploadFile(applicationID, category string, upload FileUpload) (*UploadResult, error) {
	if _, err := s.findApplicant(applicationID); err != nil {
		return nil, err
	}

	policy, ok := s.policies[category]
	if !ok {
		return nil, ErrUnknownCategory
	}

	if !contains(policy.Extensions, fileExtension(upload.Filename)) {
		return nil, ErrInvalidExtension
	}

	if upload.Size > policy.MaxSize {
		return nil, ErrFileTooLarge
	}

	now := s.now()
	storedName := fmt.Sprintf("%d-%s-%s", now.Unix(), applicationID, SafeFilename(upload.Filename))

	path, err := s.storage.SaveFile(policy.Dir, storedName, upload.Content, policy.MaxSize)
	if err != nil {
		if errors.Is(err, ErrSizeLimitExceeded) {
			return nil, ErrFileTooLarge
		}
		return nil, err
	}

	attachment := &models.Attachment{
		ApplicationID: applicationID,
		Category:      category,
		StoredPath:    path,
		OriginalName:  upload.Filename,
		Size:          upload.Size,
		UploadedAt:    now,
	}
	inspect := category == models.CategoryCV && s.worker != nil
	if inspect {
		attachment.InspectionStatus = models.InspectionPending
	}

	if err := s.repo.SaveAttachment(attachment); err != nil {
		s.storage.DeleteFile(path)
		return nil, fmt.Errorf("failed to record attachment: %w", err)
	}

	s.log.Info("file stored",
		zap.String("application_id", applicationID),
		zap.String("category", category),
		zap.String("path", path),
	)

	if inspect {
		s.worker.EnqueueJob(InspectionJob{
			ApplicationID: applicationID,
			Category:      category,
			Path:          path,
		})
	}

	return &UploadResult{StoredPath: path}, nil
}

func (s *intakeService) GetApplication(applicationID string) (*models.ApplicationRecord, error) {
	applicant, err := s.findApplicant(applicationID)
	if err != nil {
		return nil, err
	}

	record := &models.ApplicationRecord{
		ApplicationID: applicant.ID,
		NationalID:    applicant.NationalID,
		FullName:      applicant.FullName,
		CreatedAt:     applicant.CreatedAt.Unix(),
		Answers:       struct{}{},
		Files:         map[string]string{},
		Inspections:   map[string]*models.InspectionDocument{},
	}

	answers, err := s.repo.FindAnswers(applicationID)
	switch {
	case err == nil:
		record.Answers = models.NewAnswersDocument(answers)
	case !errors.Is(err, repositories.ErrNotFound):
		return nil, fmt.Errorf("failed to load answers: %w", err)
	}

	attachments, err := s.repo.FindAttachments(applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load attachments: %w", err)
	}
	for i := range attachments {
		a := &attachments[i]
		record.Files[a.Category] = a.StoredPath
		if inspection := models.NewInspectionDocument(a); inspection != nil {
			record.Inspections[a.Category] = inspection
		}
	}

	if _, err := s.storage.WriteJSON("", applicationID+".json", record); err != nil {
		s.log.Warn("failed to write application file",
			zap.String("application_id", applicationID),
			zap.Error(err),
		)
	}

	return record, nil
}

func (s *intakeService) findApplicant(applicationID string) (*models.Applicant, error) {
	applicant, err := s.repo.FindApplicant(applicationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return applicant, nil
}

func newApplicationID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

// answersFilename builds "<full_name>_<national_id>.json" with spaces turned into underscores.
func answersFilename(a *models.Applicant) string {
	name := SafeFilename(strings.ReplaceAll(a.FullName, " ", "_"))
	if name == "" {
		name = "unnamed"
	}
	return fmt.Sprintf("%s_%s.json", name, a.NationalID)
}
