package store

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/HelplessSneeker/noessi-immo/internal/apperr"
	"github.com/HelplessSneeker/noessi-immo/internal/models"
	"github.com/HelplessSneeker/noessi-immo/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DocumentArchive owns uploaded file metadata. File content lives in the
// storage layer; the metadata row only persists the relative path.
type DocumentArchive struct {
	db    *gorm.DB
	files *storage.Storage
}

// NewDocumentArchive creates a new document archive
func NewDocumentArchive(db *gorm.DB, files *storage.Storage) *DocumentArchive {
	return &DocumentArchive{db: db, files: files}
}

// DocumentUpload carries a new document with its content.
type DocumentUpload struct {
	PropertyID    uuid.UUID
	TransactionID *uuid.UUID
	CreditID      *uuid.UUID
	Filename      string
	Category      models.DocumentCategory
	DocumentDate  *time.Time
	Description   string
	Data          []byte
}

// DocumentPatch carries a partial metadata update; nil fields stay
// unchanged. File content is immutable after upload.
type DocumentPatch struct {
	TransactionID *uuid.UUID
	CreditID      *uuid.UUID
	Category      *models.DocumentCategory
	DocumentDate  *time.Time
	Description   *string
}

// DocumentFilter narrows List results.
type DocumentFilter struct {
	PropertyID    *uuid.UUID
	TransactionID *uuid.UUID
	CreditID      *uuid.UUID
	Category      models.DocumentCategory
	Offset        int
	Limit         int
}

// validateLinks checks mutual exclusivity and that any linked transaction
// or credit exists and belongs to the document's property.
func (s *DocumentArchive) validateLinks(propertyID uuid.UUID, transactionID, creditID *uuid.UUID) error {
	if transactionID != nil && creditID != nil {
		return apperr.Validation("document_link_exclusive", nil)
	}
	if transactionID != nil {
		var transaction models.Transaction
		err := s.db.First(&transaction, "id = ?", *transactionID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("transaction", transactionID.String())
		}
		if err != nil {
			return apperr.Storage("get transaction", err)
		}
		if transaction.PropertyID != propertyID {
			return apperr.Validation("transaction_wrong_property", map[string]any{
				"transaction_id": transactionID.String(),
				"property_id":    propertyID.String(),
			})
		}
	}
	if creditID != nil {
		var credit models.Credit
		err := s.db.First(&credit, "id = ?", *creditID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("credit", creditID.String())
		}
		if err != nil {
			return apperr.Storage("get credit", err)
		}
		if credit.PropertyID != propertyID {
			return apperr.Validation("credit_wrong_property", map[string]any{
				"credit_id":   creditID.String(),
				"property_id": propertyID.String(),
			})
		}
	}
	return nil
}

// Upload validates, writes the file, then persists the metadata row. The
// file is written first; if the row insert fails the file is removed
// again so no row ever points at nothing.
func (s *DocumentArchive) Upload(in DocumentUpload) (*models.Document, error) {
	if err := s.files.ValidateUpload(in.Filename, int64(len(in.Data))); err != nil {
		return nil, err
	}
	if !in.Category.IsValid() {
		return nil, apperr.Validation("invalid_category", map[string]any{"category": string(in.Category)})
	}
	if err := s.db.First(&models.Property{}, "id = ?", in.PropertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("property", in.PropertyID.String())
		}
		return nil, apperr.Storage("get property", err)
	}
	if err := s.validateLinks(in.PropertyID, in.TransactionID, in.CreditID); err != nil {
		return nil, err
	}

	relPath, err := s.files.Save(in.PropertyID, in.Filename, in.Data)
	if err != nil {
		return nil, err
	}

	document := &models.Document{
		PropertyID:    in.PropertyID,
		TransactionID: in.TransactionID,
		CreditID:      in.CreditID,
		Filename:      in.Filename,
		Filepath:      relPath,
		DocumentDate:  in.DocumentDate,
		Category:      in.Category,
		Description:   in.Description,
	}
	if err := s.db.Create(document).Error; err != nil {
		if rmErr := s.files.Remove(relPath); rmErr != nil {
			log.Printf("Archive: failed to clean up %s after insert failure: %v", relPath, rmErr)
		}
		return nil, apperr.Storage("create document", err)
	}
	return document, nil
}

// List returns documents matching the filter, newest upload first.
func (s *DocumentArchive) List(filter DocumentFilter) ([]models.Document, error) {
	q := s.db.Order("upload_date DESC")
	if filter.PropertyID != nil {
		q = q.Where("property_id = ?", *filter.PropertyID)
	}
	if filter.TransactionID != nil {
		q = q.Where("transaction_id = ?", *filter.TransactionID)
	}
	if filter.CreditID != nil {
		q = q.Where("credit_id = ?", *filter.CreditID)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}
	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	q = q.Limit(limit)

	var documents []models.Document
	if err := q.Find(&documents).Error; err != nil {
		return nil, apperr.Storage("list documents", err)
	}
	return documents, nil
}

// Get returns one document's metadata.
func (s *DocumentArchive) Get(id uuid.UUID) (*models.Document, error) {
	var document models.Document
	err := s.db.First(&document, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("document", id.String())
	}
	if err != nil {
		return nil, apperr.Storage("get document", err)
	}
	return &document, nil
}

// Download returns the metadata row together with an open handle on the
// underlying file. The caller closes the file.
func (s *DocumentArchive) Download(id uuid.UUID) (*models.Document, *os.File, error) {
	document, err := s.Get(id)
	if err != nil {
		return nil, nil, err
	}
	f, err := s.files.Open(document.Filepath)
	if err != nil {
		return nil, nil, err
	}
	return document, f, nil
}

// Update applies a partial metadata update. Link changes are checked for
// mutual exclusivity against the merged state.
func (s *DocumentArchive) Update(id uuid.UUID, patch DocumentPatch) (*models.Document, error) {
	document, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if patch.TransactionID != nil {
		document.TransactionID = patch.TransactionID
	}
	if patch.CreditID != nil {
		document.CreditID = patch.CreditID
	}
	if patch.Category != nil {
		if !patch.Category.IsValid() {
			return nil, apperr.Validation("invalid_category", map[string]any{"category": string(*patch.Category)})
		}
		document.Category = *patch.Category
	}
	if patch.DocumentDate != nil {
		document.DocumentDate = patch.DocumentDate
	}
	if patch.Description != nil {
		document.Description = *patch.Description
	}

	if err := s.validateLinks(document.PropertyID, document.TransactionID, document.CreditID); err != nil {
		return nil, err
	}
	if err := s.db.Save(document).Error; err != nil {
		return nil, apperr.Storage("update document", err)
	}
	return document, nil
}

// Delete removes the metadata row, then removes the file best-effort. A
// failed file removal is logged but does not undo the row deletion; the
// cleanup janitor reclaims such leftovers.
func (s *DocumentArchive) Delete(id uuid.UUID) error {
	document, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(document).Error; err != nil {
		return apperr.Storage("delete document", err)
	}
	if err := s.files.Remove(document.Filepath); err != nil {
		log.Printf("Archive: failed to remove file for document %s: %v", document.ID, err)
	}
	return nil
}
