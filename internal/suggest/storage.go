// Package suggest orchestrates suggestion runs: it loads an applicant's
// profile, ranks the open opportunities against it, persists the run, and
// archives the full report to blob storage.
package suggest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// StorageClient abstracts blob storage for match-run reports.
type StorageClient interface {
	PutReport(ctx context.Context, applicantID, reportID string, data []byte) error
	GetReport(ctx context.Context, applicantID, reportID string) ([]byte, error)
}

// LocalStorage implements StorageClient using the local filesystem.
// Useful for development and testing.
type LocalStorage struct {
	BaseDir string
}

// NewLocalStorage creates a LocalStorage rooted at the given directory.
func NewLocalStorage(baseDir string) *LocalStorage {
	return &LocalStorage{BaseDir: baseDir}
}

func (s *LocalStorage) path(applicantID, reportID string) string {
	return filepath.Join(s.BaseDir, applicantID, "reports", reportID+".json")
}

// PutReport stores a report blob.
func (s *LocalStorage) PutReport(ctx context.Context, applicantID, reportID string, data []byte) error {
	path := s.path(applicantID, reportID)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// GetReport retrieves a report blob.
func (s *LocalStorage) GetReport(ctx context.Context, applicantID, reportID string) ([]byte, error) {
	return os.ReadFile(s.path(applicantID, reportID))
}
