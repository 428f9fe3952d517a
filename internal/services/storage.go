package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrSizeLimitExceeded is returned by SaveFile when the source holds more
// bytes than the given limit. The partial file is removed.
var ErrSizeLimitExceeded = errors.New("size limit exceeded")

type StorageService interface {
	EnsureUploadDirs() error
	Root() string
	Dir(subdir string) string
	SaveFile(subdir, filename string, src io.Reader, limit int64) (string, error)
	WriteJSON(subdir, filename string, v interface{}) (string, error)
	DeleteFile(path string) error
	Exists(subdir string) bool
}

type storageService struct {
	uploadPath string
	subdirs    []string
}

func NewStorageService(uploadPath string, subdirs ...string) StorageService {
	return &storageService{
		uploadPath: uploadPath,
		subdirs:    subdirs,
	}
}

func (s *storageService) EnsureUploadDirs() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}
	for _, sub := range s.subdirs {
		if err := os.MkdirAll(s.Dir(sub), 0755); err != nil {
			return fmt.Errorf("failed to create %s directory: %w", sub, err)
		}
	}
	return nil
}

func (s *storageService) Root() string {
	return s.uploadPath
}

// Dir returns the path of a subdirectory; "" is the upload root itself.
func (s *storageService) Dir(subdir string) string {
	return filepath.Join(s.uploadPath, subdir)
}

func (s *storageService) Exists(subdir string) bool {
	info, err := os.Stat(s.Dir(subdir))
	return err == nil && info.IsDir()
}

// SaveFile copies src into subdir/filename. A limit <= 0 disables the size check.
func (s *storageService) SaveFile(subdir, filename string, src io.Reader, limit int64) (string, error) {
	filePath := filepath.Join(s.Dir(subdir), filepath.Base(filename))

	dst, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}

	reader := src
	if limit > 0 {
		// one extra byte tells us the source was bigger than allowed
		reader = io.LimitReader(src, limit+1)
	}

	written, err := io.Copy(dst, reader)
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(filePath)
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	if limit > 0 && written > limit {
		os.Remove(filePath)
		return "", ErrSizeLimitExceeded
	}

	return filePath, nil
}

func (s *storageService) WriteJSON(subdir, filename string, v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", filename, err)
	}

	filePath := filepath.Join(s.Dir(subdir), filepath.Base(filename))
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filePath, nil
}

func (s *storageService) DeleteFile(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
