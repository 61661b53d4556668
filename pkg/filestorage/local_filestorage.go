package filestorage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrOutsideBasePath = errors.New("path escapes the storage directory")

type FileStorageInterface interface {
	Save(file io.Reader, originalFileName string, prefix string) (filePath string, err error)
	Delete(filePath string) error
}

// LocalFileStorage writes under basePath as prefix/YYYY/MM/DD/<date>-<uuid><ext>.
type LocalFileStorage struct {
	basePath string
	now      func() time.Time
}

func NewLocalFileStorage(basePath string) (*LocalFileStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalFileStorage{basePath: basePath, now: time.Now}, nil
}

func (s *LocalFileStorage) Save(file io.Reader, originalFileName string, prefix string) (string, error) {
	now := s.now()
	ext := strings.ToLower(filepath.Ext(originalFileName))
	uniqueFileName := fmt.Sprintf("%s-%s%s", now.Format("2006-01-02"), uuid.NewString(), ext)

	relDir := now.Format("2006/01/02")
	if p := filepath.Base(filepath.Clean("/" + prefix)); p != string(filepath.Separator) {
		relDir = filepath.Join(p, relDir)
	}
	fullDirPath := filepath.Join(s.basePath, relDir)
	if err := os.MkdirAll(fullDirPath, 0o755); err != nil {
		return "", err
	}

	dst, err := os.Create(filepath.Join(fullDirPath, uniqueFileName))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		return "", err
	}

	return filepath.ToSlash(filepath.Join(relDir, uniqueFileName)), nil
}

// Delete accepts either the stored relative path or its "/uploads/..." URL.
// A missing file is not an error.
func (s *LocalFileStorage) Delete(fileURL string) error {
	relativePath := strings.TrimPrefix(fileURL, "/uploads/")
	fullPath := filepath.Join(s.basePath, filepath.FromSlash(relativePath))

	base, err := filepath.Abs(s.basePath)
	if err != nil {
		return err
	}
	target, err := filepath.Abs(fullPath)
	if err != nil {
		return err
	}
	if !strings.HasPrefix(target, base+string(filepath.Separator)) {
		return ErrOutsideBasePath
	}

	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
