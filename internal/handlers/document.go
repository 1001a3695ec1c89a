package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/HelplessSneeker/noessi-immo/internal/apperr"
	"github.com/HelplessSneeker/noessi-immo/internal/models"
	"github.com/HelplessSneeker/noessi-immo/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DocumentHandler handles document upload, download and metadata CRUD
type DocumentHandler struct {
	archive *store.DocumentArchive
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(archive *store.DocumentArchive) *DocumentHandler {
	return &DocumentHandler{archive: archive}
}

// List returns document metadata matching the query filters
func (h *DocumentHandler) List(c *gin.Context) {
	filter := store.DocumentFilter{
		Category: models.DocumentCategory(c.Query("category")),
	}

	var err error
	if filter.PropertyID, err = queryUUID(c, "property_id"); err != nil {
		fail(c, err)
		return
	}
	if filter.TransactionID, err = queryUUID(c, "transaction_id"); err != nil {
		fail(c, err)
		return
	}
	if filter.CreditID, err = queryUUID(c, "credit_id"); err != nil {
		fail(c, err)
		return
	}
	filter.Offset, _ = strconv.Atoi(c.DefaultQuery("skip", "0"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "100"))

	documents, err := h.archive.List(filter)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, documents)
}

// Get returns one document's metadata
func (h *DocumentHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	document, err := h.archive.Get(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, document)
}

// Upload accepts a multipart form with the file and its metadata
func (h *DocumentHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		fail(c, apperr.Validation("no_file_selected", nil))
		return
	}

	propertyID, err := uuid.Parse(c.PostForm("property_id"))
	if err != nil {
		fail(c, apperr.Validation("invalid_id", map[string]any{"property_id": c.PostForm("property_id")}))
		return
	}

	in := store.DocumentUpload{
		PropertyID:  propertyID,
		Filename:    fileHeader.Filename,
		Category:    models.DocumentCategory(c.PostForm("category")),
		Description: c.PostForm("description"),
	}

	if v := c.PostForm("transaction_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			fail(c, apperr.Validation("invalid_id", map[string]any{"transaction_id": v}))
			return
		}
		in.TransactionID = &id
	}
	if v := c.PostForm("credit_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			fail(c, apperr.Validation("invalid_id", map[string]any{"credit_id": v}))
			return
		}
		in.CreditID = &id
	}
	if in.DocumentDate, err = parseOptionalDate(c.PostForm("document_date")); err != nil {
		fail(c, err)
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		fail(c, apperr.Storage("read upload", err))
		return
	}
	defer f.Close()
	in.Data, err = io.ReadAll(f)
	if err != nil {
		fail(c, apperr.Storage("read upload", err))
		return
	}

	document, err := h.archive.Upload(in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, document)
}

// Download streams the file content with its original filename
func (h *DocumentHandler) Download(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	document, f, err := h.archive.Download(id)
	if err != nil {
		fail(c, err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		fail(c, apperr.Storage("stat file", err))
		return
	}
	c.DataFromReader(http.StatusOK, info.Size(), "application/octet-stream", f, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", document.Filename),
	})
}

type documentPatchRequest struct {
	TransactionID *uuid.UUID               `json:"transaction_id"`
	CreditID      *uuid.UUID               `json:"credit_id"`
	Category      *models.DocumentCategory `json:"category"`
	DocumentDate  *string                  `json:"document_date"`
	Description   *string                  `json:"description"`
}

// Update applies a partial metadata update
func (h *DocumentHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req documentPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperr.Validation("invalid_json", nil))
		return
	}

	patch := store.DocumentPatch{
		TransactionID: req.TransactionID,
		CreditID:      req.CreditID,
		Category:      req.Category,
		Description:   req.Description,
	}
	if req.DocumentDate != nil {
		date, err := parseOptionalDate(*req.DocumentDate)
		if err != nil {
			fail(c, err)
			return
		}
		patch.DocumentDate = date
	}

	document, err := h.archive.Update(id, patch)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, document)
}

// Delete removes the metadata row and best-effort the file
func (h *DocumentHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.archive.Delete(id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
