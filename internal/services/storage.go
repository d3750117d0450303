package services

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// StorageService hands out scratch files that never outlive the callback using them.
type StorageService interface {
	WithTempFile(data []byte, ext string, fn func(path string) error) error
	EnsureTempDir() error
}

type storageService struct {
	tempDir string
}

func NewStorageService(tempDir string) StorageService {
	return &storageService{
		tempDir: tempDir,
	}
}

func (s *storageService) EnsureTempDir() error {
	if err := os.MkdirAll(s.tempDir, 0755); err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}

	return nil
}

// WithTempFile writes data to a uniquely named file, runs fn with its path and
// removes the file afterwards whatever fn returns.
func (s *storageService) WithTempFile(data []byte, ext string, fn func(path string) error) error {
	pattern := fmt.Sprintf("resume_%s_*%s", uuid.New().String(), ext)

	dst, err := os.CreateTemp(s.tempDir, pattern)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	path := dst.Name()
	defer os.Remove(path)

	if _, err := dst.Write(data); err != nil {
		dst.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	return fn(filepath.Clean(path))
}
