package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/wichananm65/buytouch-backend/internal/usecase"
)

// LocalStore writes uploads below <publicDir>/uploads.
type LocalStore struct {
	publicDir string
}

var _ usecase.ImageStore = (*LocalStore)(nil)

func NewLocalStore(publicDir string) (*LocalStore, error) {
	if err := os.MkdirAll(filepath.Join(publicDir, Prefix), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{publicDir: publicDir}, nil
}

func (s *LocalStore) Store(ctx context.Context, file usecase.Upload) (string, error) {
	rel, err := objectPath(file.Filename)
	if err != nil {
		return "", err
	}
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.publicDir, filepath.FromSlash(rel)))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return rel, nil
}

// Delete removes a stored upload. Missing files and paths outside the upload
// directory are ignored.
func (s *LocalStore) Delete(ctx context.Context, path string) error {
	name, ok := ownedName(path)
	if !ok {
		return nil
	}
	err := os.Remove(filepath.Join(s.publicDir, Prefix, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// URL is the path the file is served at.
func (s *LocalStore) URL(path string) string {
	return "/" + path
}
