// Package storage persists document file content on the filesystem.
// Files live under a property-scoped directory with a generated unique
// name so uploads never collide; the database keeps only the relative
// path.
package storage

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HelplessSneeker/noessi-immo/internal/apperr"

	"github.com/google/uuid"
)

// allowedExtensions is the upload allow-list. Anything else is rejected
// before any bytes touch the disk.
var allowedExtensions = map[string]struct{}{
	".pdf":  {},
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".doc":  {},
	".docx": {},
	".xls":  {},
	".xlsx": {},
	".txt":  {},
}

// Storage writes and reads document files below a single upload root.
type Storage struct {
	root     string
	maxBytes int64
}

// New creates a Storage rooted at dir. The directory is created on first
// use, not here, so a misconfigured path fails at upload time with a
// storage error rather than at boot.
func New(root string, maxBytes int64) *Storage {
	return &Storage{root: root, maxBytes: maxBytes}
}

// Root returns the upload root directory.
func (s *Storage) Root() string {
	return s.root
}

// ValidateUpload checks filename extension and size against the
// allow-list and the configured cap. It never touches the disk.
func (s *Storage) ValidateUpload(filename string, size int64) error {
	if filename == "" {
		return apperr.Validation("no_file_selected", nil)
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedExtensions[ext]; !ok {
		allowed := make([]string, 0, len(allowedExtensions))
		for e := range allowedExtensions {
			allowed = append(allowed, e)
		}
		return apperr.Validation("file_type_not_allowed", map[string]any{
			"extension":     ext,
			"allowed_types": allowed,
		})
	}
	if size > s.maxBytes {
		return apperr.Validation("file_too_large", map[string]any{
			"max_size_bytes": s.maxBytes,
			"file_size":      size,
		})
	}
	return nil
}

// Save writes data under <root>/<propertyID>/<uuid><ext> and returns the
// path relative to the root. The original filename only contributes its
// extension.
func (s *Storage) Save(propertyID uuid.UUID, originalName string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	relPath := filepath.Join(propertyID.String(), uuid.New().String()+ext)
	absPath := filepath.Join(s.root, relPath)

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return "", apperr.Storage("create upload dir", err)
	}
	if err := os.WriteFile(absPath, data, 0o644); err != nil {
		return "", apperr.Storage("write file", err)
	}
	return relPath, nil
}

// Open opens a stored file for reading. A missing file surfaces as a
// not-found error so the download endpoint reports it as such.
func (s *Storage) Open(relPath string) (*os.File, error) {
	f, err := os.Open(filepath.Join(s.root, relPath))
	if os.IsNotExist(err) {
		return nil, apperr.NotFound("file", relPath)
	}
	if err != nil {
		return nil, apperr.Storage("open file", err)
	}
	return f, nil
}

// Remove deletes a stored file. Removing a file that is already gone is
// not an error.
func (s *Storage) Remove(relPath string) error {
	err := os.Remove(filepath.Join(s.root, relPath))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", relPath, err)
	}
	return nil
}

// StoredFile describes one file below the upload root.
type StoredFile struct {
	RelPath string
	ModTime time.Time
	Size    int64
}

// ListFiles walks the upload root and returns every regular file with its
// root-relative path. Used by the cleanup janitor to find orphans.
func (s *Storage) ListFiles() ([]StoredFile, error) {
	var files []StoredFile
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		files = append(files, StoredFile{RelPath: rel, ModTime: info.ModTime(), Size: info.Size()})
		return nil
	})
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("walk upload root: %w", err)
	}
	return files, nil
}
