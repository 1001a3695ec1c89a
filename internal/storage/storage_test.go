package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/HelplessSneeker/noessi-immo/internal/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	return New(t.TempDir(), 50*1024*1024)
}

func TestValidateUpload(t *testing.T) {
	s := newTestStorage(t)

	tests := []struct {
		name     string
		filename string
		size     int64
		wantKey  string
	}{
		{"pdf ok", "rechnung.pdf", 1024, ""},
		{"uppercase extension ok", "SCAN.PDF", 1024, ""},
		{"docx ok", "vertrag.docx", 1024, ""},
		{"exe rejected", "virus.exe", 10, "file_type_not_allowed"},
		{"no extension rejected", "README", 10, "file_type_not_allowed"},
		{"empty filename", "", 0, "no_file_selected"},
		{"oversized pdf rejected", "big.pdf", 60 * 1024 * 1024, "file_too_large"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.ValidateUpload(tt.filename, tt.size)
			if tt.wantKey == "" {
				assert.NoError(t, err)
				return
			}
			var appErr *apperr.Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperr.KindValidation, appErr.Kind)
			assert.Equal(t, tt.wantKey, appErr.MessageKey)
		})
	}
}

func TestSaveOpenRemove(t *testing.T) {
	s := newTestStorage(t)
	propertyID := uuid.New()

	relPath, err := s.Save(propertyID, "Mietvertrag.pdf", []byte("content"))
	require.NoError(t, err)

	// property-scoped directory, generated name, original extension kept
	assert.True(t, strings.HasPrefix(relPath, propertyID.String()+string(filepath.Separator)))
	assert.True(t, strings.HasSuffix(relPath, ".pdf"))
	assert.NotContains(t, relPath, "Mietvertrag")

	f, err := s.Open(relPath)
	require.NoError(t, err)
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.Equal(t, "content", string(data))

	require.NoError(t, s.Remove(relPath))
	_, err = os.Stat(filepath.Join(s.Root(), relPath))
	assert.True(t, os.IsNotExist(err))

	// removing twice is fine
	assert.NoError(t, s.Remove(relPath))
}

func TestSaveNamesNeverCollide(t *testing.T) {
	s := newTestStorage(t)
	propertyID := uuid.New()

	a, err := s.Save(propertyID, "scan.jpg", []byte("a"))
	require.NoError(t, err)
	b, err := s.Save(propertyID, "scan.jpg", []byte("b"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestOpenMissingIsNotFound(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.Open("nope/missing.pdf")
	var appErr *apperr.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperr.KindNotFound, appErr.Kind)
}

func TestListFiles(t *testing.T) {
	s := newTestStorage(t)
	propertyID := uuid.New()

	rel1, err := s.Save(propertyID, "a.pdf", []byte("1"))
	require.NoError(t, err)
	rel2, err := s.Save(uuid.New(), "b.txt", []byte("22"))
	require.NoError(t, err)

	files, err := s.ListFiles()
	require.NoError(t, err)
	require.Len(t, files, 2)

	paths := []string{files[0].RelPath, files[1].RelPath}
	assert.Contains(t, paths, rel1)
	assert.Contains(t, paths, rel2)
}

func TestListFilesMissingRoot(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "does-not-exist"), 1024)
	files, err := s.ListFiles()
	require.NoError(t, err)
	assert.Empty(t, files)
}
