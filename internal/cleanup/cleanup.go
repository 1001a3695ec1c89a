// Package cleanup reclaims upload files that lost their metadata row.
// File writes and row inserts are not transactionally linked, so a crash
// between the two, or a failed best-effort removal on document delete,
// can leave orphaned bytes on disk. The janitor finds and removes them.
package cleanup

import (
	"fmt"
	"log"
	"time"

	"github.com/HelplessSneeker/noessi-immo/internal/models"
	"github.com/HelplessSneeker/noessi-immo/internal/storage"

	"gorm.io/gorm"
)

// Service sweeps the upload root for orphaned files
type Service struct {
	db    *gorm.DB
	files *storage.Storage
}

// NewService creates a new cleanup service
func NewService(db *gorm.DB, files *storage.Storage) *Service {
	return &Service{db: db, files: files}
}

// SweepConfig holds configuration for a sweep run
type SweepConfig struct {
	MinAge           time.Duration // skip files younger than this (in-flight uploads)
	MaxDeletionCount int           // safety limit per run
	DryRun           bool          // only log what would be deleted
}

// DefaultSweepConfig returns default configuration
func DefaultSweepConfig() SweepConfig {
	return SweepConfig{
		MinAge:           24 * time.Hour,
		MaxDeletionCount: 1000,
		DryRun:           false,
	}
}

// SweepResult holds the result of a sweep run
type SweepResult struct {
	ScannedCount int       `json:"scanned_count"`
	OrphanCount  int       `json:"orphan_count"`
	DeletedCount int       `json:"deleted_count"`
	SkippedCount int       `json:"skipped_count"`
	ErrorCount   int       `json:"error_count"`
	DryRun       bool      `json:"dry_run"`
	ExecutedAt   time.Time `json:"executed_at"`
	DeletedFiles []string  `json:"deleted_files,omitempty"`
	Errors       []string  `json:"errors,omitempty"`
}

// Sweep scans the upload root and removes files no document row points
// at. Files younger than MinAge are skipped so an upload racing the
// sweep is never deleted between its file write and row insert.
func (s *Service) Sweep(config SweepConfig) (*SweepResult, error) {
	result := &SweepResult{
		DryRun:     config.DryRun,
		ExecutedAt: time.Now(),
	}

	var paths []string
	if err := s.db.Model(&models.Document{}).Pluck("filepath", &paths).Error; err != nil {
		return nil, fmt.Errorf("failed to load document paths: %w", err)
	}
	known := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		known[p] = struct{}{}
	}

	files, err := s.files.ListFiles()
	if err != nil {
		return nil, err
	}
	result.ScannedCount = len(files)

	cutoff := time.Now().Add(-config.MinAge)
	for _, f := range files {
		if _, ok := known[f.RelPath]; ok {
			continue
		}
		result.OrphanCount++

		if f.ModTime.After(cutoff) {
			result.SkippedCount++
			continue
		}
		if config.MaxDeletionCount > 0 && result.DeletedCount >= config.MaxDeletionCount {
			result.SkippedCount++
			continue
		}

		if config.DryRun {
			log.Printf("Cleanup: [dry-run] would remove orphan %s (%d bytes)", f.RelPath, f.Size)
			result.DeletedCount++
			result.DeletedFiles = append(result.DeletedFiles, f.RelPath)
			continue
		}

		if err := s.files.Remove(f.RelPath); err != nil {
			result.ErrorCount++
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		log.Printf("Cleanup: removed orphan %s (%d bytes)", f.RelPath, f.Size)
		result.DeletedCount++
		result.DeletedFiles = append(result.DeletedFiles, f.RelPath)
	}

	log.Printf("Cleanup: sweep finished, scanned=%d orphans=%d deleted=%d skipped=%d errors=%d (dry_run=%v)",
		result.ScannedCount, result.OrphanCount, result.DeletedCount,
		result.SkippedCount, result.ErrorCount, result.DryRun)

	return result, nil
}
