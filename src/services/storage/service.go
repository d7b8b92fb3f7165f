package storage

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
)

// Storage is the file collaborator the engine talks to. The engine only needs
// signed read URLs, existence checks and an idempotent copy.
type Storage interface {
	SignedURL(path string) (string, error)
	Exists(path string) (bool, error)
	Copy(src, dst string) error
}

// LocalStorage keeps files under a root directory on disk and serves them
// through the app's own /files route.
type LocalStorage struct {
	Root    string
	BaseURL string
}

// NewLocalStorageFromEnv builds a LocalStorage from STORAGE_ROOT and APP_URL.
func NewLocalStorageFromEnv() *LocalStorage {
	root := os.Getenv("STORAGE_ROOT")
	if root == "" {
		root = "./storage"
	}
	base := os.Getenv("APP_URL")
	if base == "" {
		base = "http://localhost:8888"
	}
	return &LocalStorage{Root: root, BaseURL: base}
}

func (s *LocalStorage) abs(p string) string {
	return filepath.Join(s.Root, filepath.FromSlash(p))
}

// SignedURL returns a fetchable URL for a stored file.
func (s *LocalStorage) SignedURL(p string) (string, error) {
	return fmt.Sprintf("%s/files/%s", s.BaseURL, url.PathEscape(p)), nil
}

// Exists reports whether a file is present.
func (s *LocalStorage) Exists(p string) (bool, error) {
	_, err := os.Stat(s.abs(p))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// Copy duplicates src to dst, creating parent directories as needed.
func (s *LocalStorage) Copy(src, dst string) error {
	in, err := os.Open(s.abs(src))
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(s.abs(dst)), 0o755); err != nil {
		return err
	}
	out, err := os.Create(s.abs(dst))
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}

// Write stores raw bytes at a path. Used by the PDF exporter.
func (s *LocalStorage) Write(p string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.abs(p)), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.abs(p), data, 0o644)
}
