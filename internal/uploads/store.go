// Package uploads holds uploaded file bytes on disk for the duration of a
// single request. Files are written under uniquely named paths and must be
// released when handling ends, whatever the outcome.
package uploads

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/medo-health/assistant-api/internal/models"
	"github.com/medo-health/assistant-api/internal/utils"
)

// allowedMimeTypes mirrors the upload filter of the public API: images,
// PDFs, text documents, and audio recordings for the doctor endpoints.
var allowedMimeTypes = map[string]bool{
	"application/pdf":    true,
	"text/plain":         true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

type Store struct {
	dir         string
	maxFileSize int64
	logger      *utils.Logger
}

func NewStore(dir string, maxFileSize int64, logger *utils.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Store{dir: dir, maxFileSize: maxFileSize, logger: logger}, nil
}

// Save validates and writes one uploaded file to disk. Oversized or
// disallowed files are rejected before anything reaches disk; a file that
// turns out oversized mid-copy is removed immediately.
func (s *Store) Save(r io.Reader, name, mimeType string, declaredSize int64) (models.UploadedFile, error) {
	if !isAllowedMimeType(mimeType) {
		return models.UploadedFile{}, utils.NewBadRequestError(
			"Unsupported file type. Please upload images, PDFs, or text documents.")
	}
	if declaredSize > s.maxFileSize {
		return models.UploadedFile{}, utils.NewBadRequestError(
			fmt.Sprintf("File %s exceeds the %d MB size limit", name, s.maxFileSize>>20))
	}

	path := filepath.Join(s.dir, utils.GenerateID()+filepath.Ext(name))
	dst, err := os.Create(path)
	if err != nil {
		return models.UploadedFile{}, utils.NewInternalError("Failed to store uploaded file")
	}

	// Copy one byte past the limit so overruns are detectable even when the
	// declared size lied.
	written, err := io.Copy(dst, io.LimitReader(r, s.maxFileSize+1))
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return models.UploadedFile{}, utils.NewInternalError("Failed to store uploaded file")
	}
	if written > s.maxFileSize {
		os.Remove(path)
		return models.UploadedFile{}, utils.NewBadRequestError(
			fmt.Sprintf("File %s exceeds the %d MB size limit", name, s.maxFileSize>>20))
	}

	return models.UploadedFile{
		OriginalName:  name,
		MimeType:      mimeType,
		SizeBytes:     written,
		TemporaryPath: path,
	}, nil
}

// Release removes a file's temporary artifact. It is idempotent: releasing
// a file that was already removed, or never fully written, is not an error.
func (s *Store) Release(file models.UploadedFile) {
	if file.TemporaryPath == "" {
		return
	}
	if err := os.Remove(file.TemporaryPath); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("Failed to remove temporary upload",
			"path", file.TemporaryPath, "error", err)
	}
}

// ReleaseAll removes every temporary artifact of a batch.
func (s *Store) ReleaseAll(files []models.UploadedFile) {
	for _, f := range files {
		s.Release(f)
	}
}

func isAllowedMimeType(mimeType string) bool {
	if strings.HasPrefix(mimeType, "image/") || strings.HasPrefix(mimeType, "audio/") {
		return true
	}
	return allowedMimeTypes[mimeType]
}
