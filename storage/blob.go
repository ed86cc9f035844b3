// Package storage abstracts where product images land. The catalog only
// needs a URL back; swapping the disk store for a CDN-backed one is a
// single constructor change.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BlobStore saves an uploaded file and returns a servable URL.
type BlobStore interface {
	Save(file *multipart.FileHeader) (string, error)
}

// DiskStore writes uploads under a local directory served as static files.
type DiskStore struct {
	Dir string
}

func NewDiskStore(dir string) *DiskStore {
	return &DiskStore{Dir: dir}
}

func (s *DiskStore) Save(file *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("storage: create upload dir: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("storage: open upload: %w", err)
	}
	defer src.Close()

	name := primitive.NewObjectID().Hex() + filepath.Ext(file.Filename)
	path := filepath.Join(s.Dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("storage: create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("storage: write file: %w", err)
	}

	return "/" + filepath.ToSlash(path), nil
}
