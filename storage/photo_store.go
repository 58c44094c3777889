package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// campPlaceDir is where uploaded place photos live under the public root.
const campPlaceDir = "images/campplaces"

// PhotoStore persists uploaded photos and hands back the public path stored
// on the entity.
type PhotoStore interface {
	Save(ctx context.Context, originalFilename string, r io.Reader) (publicPath string, err error)
	Delete(ctx context.Context, publicPath string) error
}

type LocalPhotoStore struct {
	root string
}

// NewLocalPhotoStore roots the store at the public static-asset directory.
func NewLocalPhotoStore(root string) (*LocalPhotoStore, error) {
	if err := os.MkdirAll(filepath.Join(root, campPlaceDir), 0755); err != nil {
		return nil, fmt.Errorf("failed to create photo directory: %w", err)
	}
	return &LocalPhotoStore{root: root}, nil
}

// Save writes the photo under a unique filename and returns its public path,
// e.g. /images/campplaces/3f1c..._tent.jpg.
func (s *LocalPhotoStore) Save(ctx context.Context, originalFilename string, r io.Reader) (string, error) {
	filename := uuid.NewString() + "_" + filepath.Base(originalFilename)
	filePath := filepath.Join(s.root, campPlaceDir, filename)

	f, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		if cerr := f.Close(); cerr != nil {
			log.Printf("failed to close file after write error: %v", cerr)
		}
		if rerr := os.Remove(filePath); rerr != nil {
			log.Printf("failed to remove file after write error: %v", rerr)
		}
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		if rerr := os.Remove(filePath); rerr != nil {
			log.Printf("failed to remove file after close error: %v", rerr)
		}
		return "", fmt.Errorf("failed to close file: %w", err)
	}
	return "/" + campPlaceDir + "/" + filename, nil
}

func (s *LocalPhotoStore) Delete(ctx context.Context, publicPath string) error {
	filePath, err := s.safeJoin(strings.TrimPrefix(publicPath, "/"))
	if err != nil {
		return err
	}

	if err := os.Remove(filePath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("photo not found")
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// safeJoin resolves key relative to the public root and rejects directory
// traversal.
func (s *LocalPhotoStore) safeJoin(key string) (string, error) {
	absRoot, err := filepath.Abs(s.root)
	if err != nil {
		return "", fmt.Errorf("invalid root path: %w", err)
	}

	absPath, err := filepath.Abs(filepath.Join(s.root, key))
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}

	if !strings.HasPrefix(absPath, absRoot+string(filepath.Separator)) {
		return "", fmt.Errorf("path traversal attempt")
	}
	return absPath, nil
}
