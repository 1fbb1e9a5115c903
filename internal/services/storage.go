package services

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type StorageService interface {
	EnsureUploadDir() error
	SaveTemp(fileName string, content []byte) (string, func(), error)
}

type storageService struct {
	uploadPath string
}

func NewStorageService(uploadPath string) StorageService {
	return &storageService{
		uploadPath: uploadPath,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

// SaveTemp writes content to <upload>/<uuid>/<uuid><ext>. The uploaded name
// only contributes its extension, so concurrent uploads never collide. The
// returned cleanup removes the whole request directory.
func (s *storageService) SaveTemp(fileName string, content []byte) (string, func(), error) {
	requestDir := filepath.Join(s.uploadPath, uuid.New().String())
	if err := os.MkdirAll(requestDir, 0700); err != nil {
		return "", nil, fmt.Errorf("failed to create request directory: %w", err)
	}

	cleanup := func() {
		if err := os.RemoveAll(requestDir); err != nil {
			log.Printf("⚠️  Failed to remove temp directory %s: %v\n", requestDir, err)
		}
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	filePath := filepath.Join(requestDir, uuid.New().String()+ext)

	if err := os.WriteFile(filePath, content, 0600); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to save file: %w", err)
	}

	return filePath, cleanup, nil
}
