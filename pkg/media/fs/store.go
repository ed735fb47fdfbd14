// Package fs provides a filesystem-backed media store implementation.
package fs

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/signcast/signcast/pkg/media"
)

// Store is a filesystem-backed implementation of media.Store.
// Objects are stored as files with the key as the path.
type Store struct {
	mu       sync.RWMutex
	basePath string
	closed   bool
}

// Config holds configuration for the filesystem media store.
type Config struct {
	// BasePath is the root directory for media storage.
	// Keys are stored as paths relative to this directory.
	BasePath string

	// CreateDir creates the base directory if it doesn't exist.
	// Default: true
	CreateDir bool

	// DirMode is the permission mode for created directories.
	// Default: 0755
	DirMode os.FileMode

	// FileMode is the permission mode for created files.
	// Default: 0644
	FileMode os.FileMode
}

// DefaultConfig returns the default configuration.
func DefaultConfig(basePath string) Config {
	return Config{
		BasePath:  basePath,
		CreateDir: true,
		DirMode:   0755,
		FileMode:  0644,
	}
}

// New creates a new filesystem media store with the given configuration.
func New(cfg Config) (*Store, error) {
	if cfg.BasePath == "" {
		return nil, errors.New("base path is required")
	}

	if cfg.DirMode == 0 {
		cfg.DirMode = 0755
	}
	if cfg.FileMode == 0 {
		cfg.FileMode = 0644
	}

	if cfg.CreateDir {
		if err := os.MkdirAll(cfg.BasePath, cfg.DirMode); err != nil {
			return nil, err
		}
	}

	info, err := os.Stat(cfg.BasePath)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, errors.New("base path is not a directory")
	}

	return &Store{
		basePath: cfg.BasePath,
	}, nil
}

// NewWithPath creates a new filesystem media store with default configuration.
func NewWithPath(basePath string) (*Store, error) {
	return New(DefaultConfig(basePath))
}

// objectPath returns the full filesystem path for a key.
// Keys use forward slashes as separators.
func (s *Store) objectPath(key string) string {
	return filepath.Join(s.basePath, filepath.FromSlash(key))
}

// Put writes an object to the filesystem. The stream is written to a
// temporary file first and renamed into place, so readers never observe
// a partially written object.
func (s *Store) Put(ctx context.Context, key string, r io.Reader) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, media.ErrStoreClosed
	}

	path := s.objectPath(key)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, err
	}

	tmpPath := path + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return 0, err
	}

	written, err := io.Copy(f, r)
	if err != nil {
		f.Close()
		os.Remove(tmpPath)
		return 0, err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return 0, err
	}

	// Atomic rename
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return 0, err
	}

	return written, nil
}

// Get opens an object for reading.
func (s *Store) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, media.ErrStoreClosed
	}

	f, err := os.Open(s.objectPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, media.ErrMediaNotFound
		}
		return nil, err
	}

	return f, nil
}

// Delete removes a single object from the filesystem.
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return media.ErrStoreClosed
	}

	path := s.objectPath(key)
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	// Try to clean up empty parent directories
	s.cleanEmptyDirs(filepath.Dir(path))

	return nil
}

// cleanEmptyDirs removes empty directories up to the base path.
func (s *Store) cleanEmptyDirs(dir string) {
	for dir != s.basePath && strings.HasPrefix(dir, s.basePath) {
		err := os.Remove(dir)
		if err != nil {
			// Directory not empty or other error, stop
			break
		}
		dir = filepath.Dir(dir)
	}
}

// DeleteByPrefix removes all objects with a given prefix.
func (s *Store) DeleteByPrefix(ctx context.Context, prefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return media.ErrStoreClosed
	}

	prefixPath := s.objectPath(prefix)

	info, err := os.Stat(prefixPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // Nothing to delete
		}
		return err
	}

	if info.IsDir() {
		if err := os.RemoveAll(prefixPath); err != nil {
			return err
		}
		s.cleanEmptyDirs(filepath.Dir(prefixPath))
		return nil
	}

	if err := os.Remove(prefixPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	s.cleanEmptyDirs(filepath.Dir(prefixPath))

	return nil
}

// HealthCheck verifies the store is accessible and operational.
func (s *Store) HealthCheck(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return media.ErrStoreClosed
	}

	_, err := os.Stat(s.basePath)
	return err
}

// Close marks the store as closed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

// BasePath returns the base path of the store (for testing).
func (s *Store) BasePath() string {
	return s.basePath
}

// Ensure Store implements media.Store.
var _ media.Store = (*Store)(nil)
