// Package storage keeps uploaded file contents.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/rpattn/filedash/internal/domain"
)

// URLPrefix is where stored blobs are served from.
const URLPrefix = "/blobs/"

// BlobStore persists uploaded file contents.
type BlobStore interface {
	// Put stores r under a fresh key derived from filename and returns the
	// key and its public URL.
	Put(ctx context.Context, filename string, r io.Reader) (key, url string, err error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

var extPattern = regexp.MustCompile(`^\.[A-Za-z0-9]{1,16}$`)

// FSStore is a BlobStore backed by an afero filesystem.
type FSStore struct {
	fs afero.Fs
}

// NewFSStore stores blobs in fs.
func NewFSStore(fs afero.Fs) *FSStore {
	return &FSStore{fs: fs}
}

// NewDiskStore stores blobs below root on the local disk.
func NewDiskStore(root string) (*FSStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}
	return NewFSStore(afero.NewBasePathFs(afero.NewOsFs(), root)), nil
}

// Key builds a collision-free storage key that keeps a safe extension.
func Key(filename string) string {
	ext := strings.ToLower(filepath.Ext(path.Base(filepath.ToSlash(filename))))
	if !extPattern.MatchString(ext) {
		ext = ""
	}
	return uuid.NewString() + ext
}

func validKey(key string) bool {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, ".") {
		return false
	}
	return true
}

func (s *FSStore) Put(ctx context.Context, filename string, r io.Reader) (string, string, error) {
	key := Key(filename)
	f, err := s.fs.Create(key)
	if err != nil {
		return "", "", fmt.Errorf("failed to create blob: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = s.fs.Remove(key)
		return "", "", fmt.Errorf("failed to write blob: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = s.fs.Remove(key)
		return "", "", fmt.Errorf("failed to close blob: %w", err)
	}
	return key, URLPrefix + key, nil
}

func (s *FSStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if !validKey(key) {
		return nil, domain.ErrNotFound
	}
	f, err := s.fs.Open(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to open blob: %w", err)
	}
	return f, nil
}

func (s *FSStore) Delete(ctx context.Context, key string) error {
	if !validKey(key) {
		return domain.ErrNotFound
	}
	if err := s.fs.Remove(key); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	return nil
}
